package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/mohammad-safakhou/finadvisor/config"
)

// LocalRuntime generates text against a local Ollama-compatible model server.
// Availability is resolved lazily exactly once per process: the first caller
// probes the runtime and every later call reuses that result, success or
// failure. Concurrent first calls share the in-flight probe via sync.Once.
type LocalRuntime struct {
	cfg    config.LocalLLMConfig
	client *http.Client
	logger *log.Logger

	once      sync.Once
	available bool
}

// NewLocalRuntime creates a local model provider from configuration.
func NewLocalRuntime(cfg config.LocalLLMConfig, logger *log.Logger) *LocalRuntime {
	if logger == nil {
		logger = log.New(log.Writer(), "[LOCAL] ", log.LstdFlags)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &LocalRuntime{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Available probes the runtime once and memoizes the outcome for the rest of
// the process lifetime.
func (l *LocalRuntime) Available() bool {
	l.once.Do(func() {
		if !l.cfg.Enabled || l.cfg.BaseURL == "" {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.BaseURL+"/api/tags", nil)
		if err != nil {
			return
		}
		resp, err := l.client.Do(req)
		if err != nil {
			l.logger.Printf("local model runtime unreachable: %v", err)
			return
		}
		defer resp.Body.Close()
		l.available = resp.StatusCode == http.StatusOK
		if !l.available {
			l.logger.Printf("local model runtime probe returned status %d", resp.StatusCode)
		}
	})
	return l.available
}

// Generate runs one bounded completion against the local runtime.
func (l *LocalRuntime) Generate(ctx context.Context, prompt string) (string, error) {
	type genOptions struct {
		Temperature float64 `json:"temperature"`
		TopP        float64 `json:"top_p,omitempty"`
		NumPredict  int     `json:"num_predict,omitempty"`
	}
	type genRequest struct {
		Model   string     `json:"model"`
		Prompt  string     `json:"prompt"`
		Stream  bool       `json:"stream"`
		Options genOptions `json:"options"`
	}

	body, err := json.Marshal(genRequest{
		Model:  l.cfg.Model,
		Prompt: prompt,
		Stream: false,
		Options: genOptions{
			Temperature: l.cfg.Temperature,
			TopP:        l.cfg.TopP,
			NumPredict:  l.cfg.MaxNewTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.cfg.BaseURL+"/api/generate", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("local runtime status %d", resp.StatusCode)
	}

	var out struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return out.Response, nil
}
