package advisor

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/mohammad-safakhou/finadvisor/internal/telemetry"
)

const defaultMinUsefulChars = 10

// Orchestrator runs the ordered fallback chain: local model, hosted API,
// rule-based. Generate never returns an error; every internal failure advances
// the chain and the terminal rule-based strategy cannot fail.
type Orchestrator struct {
	local          TextGenerator
	hosted         TextGenerator
	minUsefulChars int
	logger         *log.Logger
	telemetry      *telemetry.Telemetry
}

// NewOrchestrator wires the two optional generators. Either may be nil, which
// is treated the same as unavailable.
func NewOrchestrator(local, hosted TextGenerator, minUsefulChars int, logger *log.Logger, tele *telemetry.Telemetry) *Orchestrator {
	if logger == nil {
		logger = log.New(log.Writer(), "[ORCH] ", log.LstdFlags)
	}
	if minUsefulChars <= 0 {
		minUsefulChars = defaultMinUsefulChars
	}
	return &Orchestrator{
		local:          local,
		hosted:         hosted,
		minUsefulChars: minUsefulChars,
		logger:         logger,
		telemetry:      tele,
	}
}

// Generate produces a response for the request. Strategies are attempted
// sequentially, one attempt each, no retries.
func (o *Orchestrator) Generate(ctx context.Context, req ChatRequest) ChatResult {
	mode := req.Mode.Normalize()
	prompt := BuildPrompt(req.Question, mode, req.ScenarioContext)

	attempts := []struct {
		gen      TextGenerator
		provider Provider
	}{
		{o.local, ProviderLocalModel},
		{o.hosted, ProviderHostedAPI},
	}

	for _, a := range attempts {
		if a.gen == nil || !a.gen.Available() {
			continue
		}
		start := time.Now()
		text, err := a.gen.Generate(ctx, prompt)
		elapsed := time.Since(start)
		if err != nil {
			o.logger.Printf("%s attempt failed: %v", a.provider, err)
			o.telemetry.ObserveAttempt(string(a.provider), "error", elapsed)
			continue
		}
		text = strings.TrimSpace(text)
		if len(text) < o.minUsefulChars {
			o.logger.Printf("%s produced %d chars, below usefulness threshold", a.provider, len(text))
			o.telemetry.ObserveAttempt(string(a.provider), "short", elapsed)
			continue
		}
		o.telemetry.ObserveAttempt(string(a.provider), "ok", elapsed)
		result := ChatResult{
			Text:         text,
			Provider:     a.provider,
			UsedFallback: a.provider != ProviderLocalModel,
		}
		o.telemetry.ChatServed(string(result.Provider), result.UsedFallback)
		return result
	}

	result := ChatResult{
		Text:         RuleBasedAdvice(req.Question, mode),
		Provider:     ProviderRuleBased,
		UsedFallback: true,
	}
	o.telemetry.ChatServed(string(result.Provider), result.UsedFallback)
	return result
}
