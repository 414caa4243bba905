package server

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mohammad-safakhou/finadvisor/internal/finance"
)

func TestBudgetAnalyzeEndpoint(t *testing.T) {
	h := &FinanceHandler{}
	e := echo.New()

	body := `{"monthly_income":3000,"rent":1200,"utilities":150,"insurance":100,"food":300,"transportation":200,"entertainment":150,"other":300}`
	ctx, rec := postJSON(t, e, "/api/budget/analyze", body)
	if err := h.budgetAnalyze(ctx); err != nil {
		t.Fatalf("budgetAnalyze: %v", err)
	}
	var got finance.BudgetAnalysis
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TotalExpenses != 2400 || got.Remaining != 600 {
		t.Fatalf("totals = %+v", got)
	}
	if needs := got.Rule503020["Needs"]; needs.Actual != 1750 {
		t.Fatalf("needs actual = %v", needs.Actual)
	}
}

func TestSavingsProjectEndpointInfiniteGoal(t *testing.T) {
	h := &FinanceHandler{}
	e := echo.New()

	ctx, rec := postJSON(t, e, "/api/savings/project",
		`{"target_amount":5000,"current_amount":500,"monthly_contribution":0}`)
	if err := h.savingsProject(ctx); err != nil {
		t.Fatalf("savingsProject: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"months_to_goal":null`) {
		t.Fatalf("infinite goal not encoded as null: %s", rec.Body.String())
	}
}

func TestInvestCalcEndpoint(t *testing.T) {
	h := &FinanceHandler{}
	e := echo.New()

	ctx, rec := postJSON(t, e, "/api/invest/calc",
		`{"initial_investment":1000,"monthly_investment":300,"annual_return_pct":7,"years":20}`)
	if err := h.investCalc(ctx); err != nil {
		t.Fatalf("investCalc: %v", err)
	}
	var got finance.InvestOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TotalInvested != 73000 {
		t.Fatalf("total invested = %v", got.TotalInvested)
	}
	if got.TotalFutureValue <= got.TotalInvested {
		t.Fatalf("future value %v not above invested %v", got.TotalFutureValue, got.TotalInvested)
	}
}
