package server

import (
	"context"
	"encoding/base64"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Configured() bool
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}

// Synthesizer converts text into spoken audio.
type Synthesizer interface {
	Configured() bool
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// SpeechHandler proxies the speech vendors. Vendor failures and missing
// credentials degrade to empty results instead of errors, matching the
// best-effort nature of the voice UI.
type SpeechHandler struct {
	Transcriber Transcriber
	Synthesizer Synthesizer
	Logger      *log.Logger
}

func (h *SpeechHandler) Register(g *echo.Group) {
	g.POST("/transcribe", h.transcribe)
	g.POST("/tts", h.tts)
}

func (h *SpeechHandler) transcribe(c echo.Context) error {
	if !h.Transcriber.Configured() {
		return c.JSON(http.StatusOK, map[string]string{"text": ""})
	}
	audio, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	text, err := h.Transcriber.Transcribe(c.Request().Context(), audio, c.Request().Header.Get("Content-Type"))
	if err != nil {
		if h.Logger != nil {
			h.Logger.Printf("transcribe error: %v", err)
		}
		text = ""
	}
	return c.JSON(http.StatusOK, map[string]string{"text": text})
}

func (h *SpeechHandler) tts(c echo.Context) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !h.Synthesizer.Configured() || req.Text == "" {
		return c.JSON(http.StatusOK, map[string]string{"audio_base64": ""})
	}
	audio, err := h.Synthesizer.Synthesize(c.Request().Context(), req.Text)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Printf("tts error: %v", err)
		}
		audio = nil
	}
	return c.JSON(http.StatusOK, map[string]string{"audio_base64": base64.StdEncoding.EncodeToString(audio)})
}
