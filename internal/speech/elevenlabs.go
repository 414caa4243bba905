package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mohammad-safakhou/finadvisor/config"
)

// Synthesizer turns text into spoken audio through the ElevenLabs API.
type Synthesizer struct {
	cfg    config.ElevenLabsConfig
	client *http.Client
}

// NewSynthesizer creates an ElevenLabs client from configuration.
func NewSynthesizer(cfg config.ElevenLabsConfig) *Synthesizer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Synthesizer{cfg: cfg, client: &http.Client{Timeout: timeout}}
}

// Configured reports whether a vendor credential is present.
func (s *Synthesizer) Configured() bool { return s.cfg.APIKey != "" }

// Synthesize returns MP3 bytes for the given text.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{
		"text":     text,
		"model_id": s.cfg.ModelID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v1/text-to-speech/%s", s.cfg.BaseURL, s.cfg.VoiceID), bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("xi-api-key", s.cfg.APIKey)
	req.Header.Set("accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("elevenlabs status %d", resp.StatusCode)
	}
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return audio, nil
}
