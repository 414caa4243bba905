package server

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mohammad-safakhou/finadvisor/internal/fraud"
)

type scannerStub struct {
	configured    bool
	result        fraud.Result
	err           error
	detectCalls   int
	financialCall int
}

func (s *scannerStub) Configured() bool { return s.configured }
func (s *scannerStub) Detect(ctx context.Context, text string) (fraud.Result, error) {
	s.detectCalls++
	return s.result, s.err
}
func (s *scannerStub) AnalyzeFinancial(ctx context.Context, content string) (fraud.Result, error) {
	s.financialCall++
	return s.result, s.err
}

func TestFraudDetectPassthrough(t *testing.T) {
	stub := &scannerStub{configured: true, result: fraud.Result{
		DetectedContent:  "Prize scam",
		AwarenessMessage: "Never pay to claim a prize.",
		Provider:         "groq",
		Model:            "llama3-8b-8192",
		Success:          true,
	}}
	h := &FraudHandler{Detector: stub}
	e := echo.New()

	ctx, rec := postJSON(t, e, "/api/fraud/detect", `{"content":"You won! Send fees."}`)
	if err := h.detect(ctx); err != nil {
		t.Fatalf("detect: %v", err)
	}
	var got fraud.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != stub.result {
		t.Fatalf("result = %+v", got)
	}
	if stub.detectCalls != 1 || stub.financialCall != 0 {
		t.Fatalf("wrong scan invoked: detect=%d financial=%d", stub.detectCalls, stub.financialCall)
	}
}

func TestFraudDetectRoutesFinancialAnalysisType(t *testing.T) {
	stub := &scannerStub{configured: true, result: fraud.Result{Success: true, AnalysisType: "financial"}}
	h := &FraudHandler{Detector: stub}
	e := echo.New()

	ctx, _ := postJSON(t, e, "/api/fraud/detect", `{"content":"crypto doubling","analysis_type":"financial"}`)
	if err := h.detect(ctx); err != nil {
		t.Fatalf("detect: %v", err)
	}
	if stub.financialCall != 1 || stub.detectCalls != 0 {
		t.Fatalf("wrong scan invoked: detect=%d financial=%d", stub.detectCalls, stub.financialCall)
	}
}

func TestFraudDetectUnconfigured(t *testing.T) {
	h := &FraudHandler{Detector: &scannerStub{configured: false}}
	e := echo.New()

	ctx, rec := postJSON(t, e, "/api/fraud/detect", `{"content":"text"}`)
	if err := h.detect(ctx); err != nil {
		t.Fatalf("detect: %v", err)
	}
	var got fraud.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Success || got.Provider != "fallback" || got.Model != "none" {
		t.Fatalf("unconfigured result = %+v", got)
	}
	if got.DetectedContent != "Service unavailable" {
		t.Fatalf("detected_content = %q", got.DetectedContent)
	}
}

func TestFraudDetectVendorErrorDegrades(t *testing.T) {
	h := &FraudHandler{Detector: &scannerStub{configured: true, err: errors.New("groq status 503")}}
	e := echo.New()

	ctx, rec := postJSON(t, e, "/api/fraud/detect", `{"content":"text"}`)
	if err := h.detect(ctx); err != nil {
		t.Fatalf("detect: %v", err)
	}
	var got fraud.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Success || got.DetectedContent != "Error" {
		t.Fatalf("degraded result = %+v", got)
	}
	if !strings.Contains(got.AwarenessMessage, "groq status 503") {
		t.Fatalf("error not carried in message: %q", got.AwarenessMessage)
	}
}

func TestFraudAnalyzeFinancialEndpoint(t *testing.T) {
	stub := &scannerStub{configured: false}
	h := &FraudHandler{Detector: stub}
	e := echo.New()

	ctx, rec := postJSON(t, e, "/api/fraud/analyze-financial", `{"content":"invest now"}`)
	if err := h.analyzeFinancial(ctx); err != nil {
		t.Fatalf("analyzeFinancial: %v", err)
	}
	var got fraud.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.AnalysisType != "financial" || got.Provider != "fallback" {
		t.Fatalf("result = %+v", got)
	}
}
