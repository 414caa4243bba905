package advisor

import "strings"

// topicRule is one scored category of the rule-based advisor: a keyword set
// plus one canned template per mode.
type topicRule struct {
	name         string
	keywords     []string
	student      string
	professional string
}

// Declaration order breaks score ties, so more specific topics come first.
var topicRules = []topicRule{
	{
		name:     "budgeting",
		keywords: []string{"budget", "budgeting", "spending", "expenses"},
		student: `🎓 **Student Budgeting Guide**

1. **Track Your Income & Expenses**: Use apps like Mint or YNAB to monitor where your money goes
2. **Follow the 50/30/20 Rule**: 50% needs, 30% wants, 20% savings
3. **Student-Specific Tips**:
   • Cook meals instead of eating out
   • Buy used textbooks or rent them
   • Take advantage of student discounts

💡 **Pro Tip**: Start with a simple spreadsheet to track expenses for one month.`,
		professional: `💼 **Professional Budgeting Strategy**

1. **Zero-Based Budgeting**: Assign every dollar a purpose before the month begins
2. **Automate Your Finances**: Set up automatic transfers to savings and investments
3. **Advanced Strategies**:
   • Use multiple savings accounts for different goals
   • Review and adjust quarterly
   • Consider tax-advantaged accounts

📊 **Recommendation**: Aim to save 20-25% of gross income for optimal financial health.`,
	},
	{
		name:     "investing",
		keywords: []string{"invest", "investment", "stocks", "portfolio"},
		student: `🎓 **Student Investment Basics**

1. **Start Small**: Begin with $25-50/month in a low-cost index fund
2. **Use Student-Friendly Platforms**: Consider Acorns, Stash, or Robinhood
3. **Focus on Learning**:
   • Read "The Bogleheads' Guide to Investing"
   • Understand compound interest
   • Learn about diversification

⚠️ **Important**: Only invest money you won't need for 5+ years.`,
		professional: `💼 **Professional Investment Strategy**

1. **Asset Allocation**: Diversify across stocks, bonds, and real estate
2. **Tax-Advantaged Accounts**: Max out 401(k) match, then Roth IRA
3. **Advanced Strategies**:
   • Dollar-cost averaging into index funds
   • Consider target-date funds for simplicity
   • Rebalance annually

📈 **Target**: Aim for 10-15% total savings rate including employer match.`,
	},
	{
		name:     "emergency_fund",
		keywords: []string{"emergency", "fund", "savings"},
		student: `🎓 **Student Emergency Fund Starter**

1. **Target Amount**: Even $500 can prevent debt during emergencies
2. **Where to Keep It**: A no-fee student savings account, separate from spending money
3. **Building Strategy**:
   • Automate $10-25 weekly transfers from checking to savings
   • Save windfalls (tax refunds, gifts, side-gig income)
   • True emergencies: car repairs, medical bills, unexpected school costs

💰 **Quick Start**: Set up an automatic transfer of $10/week to savings.`,
		professional: `💼 **Emergency Fund Essentials**

1. **Target Amount**: 3-6 months of essential expenses
2. **Where to Keep It**: High-yield savings account (2-5% APY)
3. **Building Strategy**:
   • Start with $500-1000 mini emergency fund
   • Save $25-100 per week consistently
   • Use windfalls (tax refunds, bonuses)

💰 **Quick Start**: Set up automatic transfer of $50/week to savings.`,
	},
	{
		name:     "debt",
		keywords: []string{"debt", "credit card", "loan", "pay off"},
		student: `🎓 **Student Debt Game Plan**

1. **Know Your Loans**: List every balance, rate, and servicer - federal before private
2. **While in School**:
   • Make interest-only payments to prevent capitalization
   • Set up autopay for the 0.25% federal rate reduction
3. **Credit Cards**:
   • Pay the statement balance in full every month
   • Avoid carrying a balance for "credit building" - it only costs interest

🎯 **Priority**: Knock out any credit card balance before extra loan payments.`,
		professional: `💳 **Debt Elimination Strategy**

1. **List All Debts**: Amount, minimum payment, interest rate
2. **Choose Your Method**:
   • **Debt Avalanche**: Pay minimums, extra to highest interest rate
   • **Debt Snowball**: Pay minimums, extra to smallest balance
3. **Accelerate Payoff**:
   • Use windfalls for extra payments
   • Consider balance transfers for high-interest debt
   • Avoid taking on new debt

🎯 **Priority**: Pay off credit cards first (typically 18-25% interest).`,
	},
}

var defaultRule = topicRule{
	name: "default",
	student: `🎓 **Student Financial Guidance**

1. **Emergency Fund**: Build a $500 starter fund for peace of mind
2. **Budgeting**: Track income and expenses - semesters change everything
3. **Student Loans**: Understand your federal aid and repayment options
4. **Credit Building**: Use one card, pay it in full, keep utilization low
5. **Student Resources**: Hunt down discounts, free tools, and campus services

📚 **Recommended Reading**: "I Will Teach You to Be Rich" by Ramit Sethi

💡 **Next Step**: Choose one area to focus on this month and take action!`,
	professional: `💰 **Personal Finance Fundamentals**

1. **Emergency Fund**: Save 3-6 months of expenses
2. **Debt Management**: Pay off high-interest debt first
3. **Budgeting**: Track income and expenses monthly
4. **Investing**: Start with low-cost index funds
5. **Insurance**: Protect against major financial risks

📚 **Recommended Reading**: "The Total Money Makeover" by Dave Ramsey

💡 **Next Step**: Choose one area to focus on this month and take action!`,
}

// RuleBasedAdvice classifies the question into a fixed topic set and returns
// the canned template for that topic and mode. Total over any input: when no
// keyword matches, the default template is returned.
func RuleBasedAdvice(question string, mode Mode) string {
	lower := strings.ToLower(question)

	best := -1
	bestScore := 0
	for i, rule := range topicRules {
		score := 0
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		// Strictly-greater keeps the first declared topic on ties.
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	rule := defaultRule
	if best >= 0 {
		rule = topicRules[best]
	}
	if mode.Normalize() == ModeStudent {
		return rule.student
	}
	return rule.professional
}
