package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mohammad-safakhou/finadvisor/internal/fraud"
)

// FraudScanner runs scam analysis over text. The Groq detector satisfies it;
// tests substitute stubs.
type FraudScanner interface {
	Configured() bool
	Detect(ctx context.Context, text string) (fraud.Result, error)
	AnalyzeFinancial(ctx context.Context, content string) (fraud.Result, error)
}

// FraudHandler exposes the scam scanner. Missing credentials and vendor
// failures never surface as HTTP errors; the response carries
// provider "fallback" with success false instead.
type FraudHandler struct {
	Detector FraudScanner
}

func (h *FraudHandler) Register(g *echo.Group) {
	g.POST("/detect", h.detect)
	g.POST("/analyze-financial", h.analyzeFinancial)
}

type fraudRequest struct {
	Content      string `json:"content"`
	AnalysisType string `json:"analysis_type"`
}

func (h *FraudHandler) detect(c echo.Context) error {
	var req fraudRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.AnalysisType == "financial" {
		return c.JSON(http.StatusOK, h.financial(c.Request().Context(), req.Content))
	}
	if !h.Detector.Configured() {
		return c.JSON(http.StatusOK, fraud.Result{
			DetectedContent:  "Service unavailable",
			AwarenessMessage: "Fraud detection service requires GROQ_API_KEY environment variable. Please set it to enable AI-powered fraud detection.",
			Provider:         "fallback",
			Model:            "none",
		})
	}
	res, err := h.Detector.Detect(c.Request().Context(), req.Content)
	if err != nil {
		return c.JSON(http.StatusOK, fraud.Result{
			DetectedContent:  "Error",
			AwarenessMessage: fmt.Sprintf("Fraud detection service temporarily unavailable: %v", err),
			Provider:         "fallback",
			Model:            "none",
		})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *FraudHandler) analyzeFinancial(c echo.Context) error {
	var req fraudRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.financial(c.Request().Context(), req.Content))
}

func (h *FraudHandler) financial(ctx context.Context, content string) fraud.Result {
	if !h.Detector.Configured() {
		return fraud.Result{
			DetectedContent:  "Service unavailable",
			AwarenessMessage: "Financial fraud detection requires GROQ_API_KEY environment variable. Please set it to enable AI-powered analysis.",
			Provider:         "fallback",
			Model:            "none",
			AnalysisType:     "financial",
		}
	}
	res, err := h.Detector.AnalyzeFinancial(ctx, content)
	if err != nil {
		return fraud.Result{
			DetectedContent:  "Error",
			AwarenessMessage: fmt.Sprintf("Financial fraud detection temporarily unavailable: %v", err),
			Provider:         "fallback",
			Model:            "none",
			AnalysisType:     "financial",
		}
	}
	return res
}
