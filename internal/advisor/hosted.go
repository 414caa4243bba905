package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mohammad-safakhou/finadvisor/config"
)

// HostedAPI generates text through the Gemini generateContent endpoint.
type HostedAPI struct {
	cfg    config.HostedLLMConfig
	client *http.Client
}

// NewHostedAPI creates a hosted provider from configuration.
func NewHostedAPI(cfg config.HostedLLMConfig) *HostedAPI {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HostedAPI{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Available reports whether a credential is configured. An absent key is an
// expected skip, not an error.
func (h *HostedAPI) Available() bool {
	return h.cfg.APIKey != ""
}

// Generate sends the prompt to the hosted endpoint and extracts the first
// candidate's text.
func (h *HostedAPI) Generate(ctx context.Context, prompt string) (string, error) {
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Parts []part `json:"parts"`
	}
	type genRequest struct {
		Contents []content `json:"contents"`
	}

	body, err := json.Marshal(genRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		h.cfg.BaseURL, h.cfg.Model, url.QueryEscape(h.cfg.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("hosted API status %d", resp.StatusCode)
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
