package finance

import (
	"encoding/json"
	"math"
)

// BudgetInput is a month of income and the seven tracked expense categories.
type BudgetInput struct {
	MonthlyIncome  float64 `json:"monthly_income"`
	Rent           float64 `json:"rent"`
	Utilities      float64 `json:"utilities"`
	Insurance      float64 `json:"insurance"`
	Food           float64 `json:"food"`
	Transportation float64 `json:"transportation"`
	Entertainment  float64 `json:"entertainment"`
	Other          float64 `json:"other"`
}

// TargetActual pairs a 50/30/20 target against the actual spend.
type TargetActual struct {
	Target float64 `json:"target"`
	Actual float64 `json:"actual"`
}

// BudgetAnalysis is the result of AnalyzeBudget.
type BudgetAnalysis struct {
	TotalExpenses float64                 `json:"total_expenses"`
	Remaining     float64                 `json:"remaining"`
	Breakdown     map[string]float64      `json:"breakdown"`
	Rule503020    map[string]TargetActual `json:"rule_50_30_20"`
}

// AnalyzeBudget computes totals, the per-category breakdown and the 50/30/20
// comparison. Needs are rent+utilities+insurance+food, wants are
// transportation+entertainment+other, actual savings never go negative.
func AnalyzeBudget(in BudgetInput) BudgetAnalysis {
	totalExpenses := in.Rent + in.Utilities + in.Insurance + in.Food + in.Transportation + in.Entertainment + in.Other
	remaining := in.MonthlyIncome - totalExpenses
	return BudgetAnalysis{
		TotalExpenses: totalExpenses,
		Remaining:     remaining,
		Breakdown: map[string]float64{
			"Rent/Mortgage":  in.Rent,
			"Utilities":      in.Utilities,
			"Insurance":      in.Insurance,
			"Food":           in.Food,
			"Transportation": in.Transportation,
			"Entertainment":  in.Entertainment,
			"Other":          in.Other,
		},
		Rule503020: map[string]TargetActual{
			"Needs":   {Target: in.MonthlyIncome * 0.5, Actual: in.Rent + in.Utilities + in.Insurance + in.Food},
			"Wants":   {Target: in.MonthlyIncome * 0.3, Actual: in.Transportation + in.Entertainment + in.Other},
			"Savings": {Target: in.MonthlyIncome * 0.2, Actual: math.Max(remaining, 0)},
		},
	}
}

// SavingsInput describes a savings goal and the pace toward it.
type SavingsInput struct {
	TargetAmount        float64 `json:"target_amount"`
	CurrentAmount       float64 `json:"current_amount"`
	MonthlyContribution float64 `json:"monthly_contribution"`
}

// SavingsProjection is the result of ProjectSavings. MonthsToGoal is +Inf when
// the monthly contribution is zero.
type SavingsProjection struct {
	ProgressPct    float64   `json:"progress_pct"`
	Remaining      float64   `json:"remaining"`
	MonthsToGoal   float64   `json:"months_to_goal"`
	Projection12Mo []float64 `json:"projection_12mo"`
}

// MarshalJSON encodes an infinite months_to_goal as null, since JSON has no
// representation for +Inf.
func (p SavingsProjection) MarshalJSON() ([]byte, error) {
	type alias SavingsProjection
	if math.IsInf(p.MonthsToGoal, 0) || math.IsNaN(p.MonthsToGoal) {
		return json.Marshal(struct {
			alias
			MonthsToGoal interface{} `json:"months_to_goal"`
		}{alias: alias(p), MonthsToGoal: nil})
	}
	return json.Marshal(alias(p))
}

// ProjectSavings reports progress toward the target and a 12-month projection
// capped at the target.
func ProjectSavings(in SavingsInput) SavingsProjection {
	progressPct := 0.0
	if in.TargetAmount > 0 {
		progressPct = in.CurrentAmount / in.TargetAmount * 100
	}
	remaining := in.TargetAmount - in.CurrentAmount
	monthsToGoal := math.Inf(1)
	if in.MonthlyContribution > 0 {
		monthsToGoal = remaining / in.MonthlyContribution
	}
	projection := make([]float64, 0, 12)
	current := in.CurrentAmount
	for i := 0; i < 12; i++ {
		current = math.Min(current+in.MonthlyContribution, in.TargetAmount)
		projection = append(projection, current)
	}
	return SavingsProjection{
		ProgressPct:    progressPct,
		Remaining:      remaining,
		MonthsToGoal:   monthsToGoal,
		Projection12Mo: projection,
	}
}

// InvestInput describes a recurring investment plan.
type InvestInput struct {
	InitialInvestment float64 `json:"initial_investment"`
	MonthlyInvestment float64 `json:"monthly_investment"`
	AnnualReturnPct   float64 `json:"annual_return_pct"`
	Years             int     `json:"years"`
}

// InvestOutput is the result of InvestmentGrowth.
type InvestOutput struct {
	TotalFutureValue float64 `json:"total_future_value"`
	TotalInvested    float64 `json:"total_invested"`
	TotalGains       float64 `json:"total_gains"`
}

// InvestmentGrowth combines compound growth of the initial amount with the
// future value of the monthly annuity. A zero monthly rate degenerates the
// annuity term to contribution * months, avoiding division by zero.
func InvestmentGrowth(in InvestInput) InvestOutput {
	monthlyRate := in.AnnualReturnPct / 100 / 12
	months := in.Years * 12
	fvInitial := in.InitialInvestment * math.Pow(1+in.AnnualReturnPct/100, float64(in.Years))
	fvMonthly := in.MonthlyInvestment * float64(months)
	if monthlyRate > 0 {
		fvMonthly = in.MonthlyInvestment * ((math.Pow(1+monthlyRate, float64(months)) - 1) / monthlyRate)
	}
	totalFutureValue := fvInitial + fvMonthly
	totalInvested := in.InitialInvestment + in.MonthlyInvestment*float64(months)
	return InvestOutput{
		TotalFutureValue: totalFutureValue,
		TotalInvested:    totalInvested,
		TotalGains:       totalFutureValue - totalInvested,
	}
}
