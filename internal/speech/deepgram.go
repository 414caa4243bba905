package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mohammad-safakhou/finadvisor/config"
)

// Transcriber converts recorded audio into text through the Deepgram API.
type Transcriber struct {
	cfg    config.DeepgramConfig
	client *http.Client
}

// NewTranscriber creates a Deepgram client from configuration.
func NewTranscriber(cfg config.DeepgramConfig) *Transcriber {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Transcriber{cfg: cfg, client: &http.Client{Timeout: timeout}}
}

// Configured reports whether a vendor credential is present.
func (t *Transcriber) Configured() bool { return t.cfg.APIKey != "" }

// Transcribe sends raw audio bytes and returns the first transcript. An
// unparseable-but-successful response yields an empty transcript, not an
// error.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.cfg.BaseURL+"/v1/listen?punctuate=true", bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+t.cfg.APIKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepgram status %d", resp.StatusCode)
	}

	var out struct {
		Results struct {
			Channels []struct {
				Alternatives []struct {
					Transcript string `json:"transcript"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(out.Results.Channels) == 0 || len(out.Results.Channels[0].Alternatives) == 0 {
		return "", nil
	}
	return out.Results.Channels[0].Alternatives[0].Transcript, nil
}
