package server

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mohammad-safakhou/finadvisor/internal/advisor"
)

// loadingFallbackText is returned when the advice pipeline itself blows up,
// which historically happens while the local model is still warming up.
const loadingFallbackText = "I'm currently loading the AI model. This may take a few minutes on the first request. Please try again shortly, or I can provide some general financial advice in the meantime."

// ResponseGenerator produces advice for one chat request. The orchestrator
// satisfies it; tests substitute stubs.
type ResponseGenerator interface {
	Generate(ctx context.Context, req advisor.ChatRequest) advisor.ChatResult
}

type ChatHandler struct {
	Generator ResponseGenerator
	Logger    *log.Logger
}

func (h *ChatHandler) Register(g *echo.Group) {
	g.POST("/chat", h.chat)
}

type chatRequest struct {
	UserInput       string `json:"user_input"`
	ScenarioContext string `json:"scenario_context"`
	UserMode        string `json:"user_mode"`
}

type chatResponse struct {
	Response     string `json:"response"`
	Provider     string `json:"provider"`
	UsedFallback bool   `json:"used_fallback"`
}

func (h *ChatHandler) chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.UserInput) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_input required")
	}
	resp := h.generate(c.Request().Context(), advisor.ChatRequest{
		Question:        req.UserInput,
		Mode:            advisor.Mode(req.UserMode),
		ScenarioContext: req.ScenarioContext,
	})
	return c.JSON(http.StatusOK, resp)
}

// generate shields the HTTP boundary from pipeline panics: the endpoint always
// answers 200 with an apologetic fallback rather than a 5xx.
func (h *ChatHandler) generate(ctx context.Context, req advisor.ChatRequest) (out chatResponse) {
	defer func() {
		if r := recover(); r != nil {
			if h.Logger != nil {
				h.Logger.Printf("chat pipeline panic: %v", r)
			}
			out = chatResponse{Response: loadingFallbackText, Provider: "fallback", UsedFallback: true}
		}
	}()
	res := h.Generator.Generate(ctx, req)
	return chatResponse{
		Response:     res.Text,
		Provider:     string(res.Provider),
		UsedFallback: res.UsedFallback,
	}
}
