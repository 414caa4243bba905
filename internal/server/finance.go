package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mohammad-safakhou/finadvisor/internal/finance"
)

// FinanceHandler exposes the stateless calculators.
type FinanceHandler struct{}

func (h *FinanceHandler) Register(g *echo.Group) {
	g.POST("/budget/analyze", h.budgetAnalyze)
	g.POST("/savings/project", h.savingsProject)
	g.POST("/invest/calc", h.investCalc)
}

func (h *FinanceHandler) budgetAnalyze(c echo.Context) error {
	var in finance.BudgetInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, finance.AnalyzeBudget(in))
}

func (h *FinanceHandler) savingsProject(c echo.Context) error {
	var in finance.SavingsInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, finance.ProjectSavings(in))
}

func (h *FinanceHandler) investCalc(c echo.Context) error {
	var in finance.InvestInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, finance.InvestmentGrowth(in))
}
