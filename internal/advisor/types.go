package advisor

// Mode selects the persona the assistant answers with.
type Mode string

const (
	ModeStudent      Mode = "student"
	ModeProfessional Mode = "professional"
)

// Normalize maps unknown modes to the professional default.
func (m Mode) Normalize() Mode {
	if m == ModeStudent {
		return ModeStudent
	}
	return ModeProfessional
}

// Provider identifies which strategy produced a chat response.
type Provider string

const (
	ProviderLocalModel Provider = "local_model"
	ProviderHostedAPI  Provider = "hosted_api"
	ProviderRuleBased  Provider = "rule_based"
)

// ChatRequest is the immutable input to one orchestration call.
type ChatRequest struct {
	Question        string
	Mode            Mode
	ScenarioContext string
}

// ChatResult carries the advice text plus metadata about how it was produced.
// UsedFallback is true whenever the provider is not the first strategy in
// priority order, i.e. whenever Provider != ProviderLocalModel.
type ChatResult struct {
	Text         string
	Provider     Provider
	UsedFallback bool
}
