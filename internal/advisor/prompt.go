package advisor

import "strings"

const studentPreamble = "You are a financial advisor specializing in student financial wellness. " +
	"Your advice is practical, budget-conscious, and focused on building strong financial foundations.\n\n"

const professionalPreamble = "You are a senior financial advisor for working professionals. " +
	"Your advice is sophisticated, comprehensive, and focused on wealth optimization.\n\n"

const studentFormat = "Provide practical, budget-friendly advice with:\n" +
	"1. One key financial principle for students\n" +
	"2. 2-3 actionable steps within a student budget\n" +
	"3. One money-saving tip or resource for students\n"

const professionalFormat = "Provide comprehensive professional advice with:\n" +
	"1. One strategic financial insight\n" +
	"2. 2-3 specific action steps with numbers/percentages\n" +
	"3. One advanced tip or optimization strategy\n"

// BuildPrompt assembles the instruction string sent to the text-generation
// providers. Pure and deterministic: identical inputs always yield a
// byte-identical prompt.
func BuildPrompt(question string, mode Mode, scenarioContext string) string {
	var b strings.Builder
	if mode.Normalize() == ModeStudent {
		b.WriteString(studentPreamble)
	} else {
		b.WriteString(professionalPreamble)
	}
	if scenarioContext != "" {
		b.WriteString(scenarioContext)
		b.WriteString("\n\n")
	}
	b.WriteString("User Question: ")
	b.WriteString(question)
	b.WriteString("\n")
	if mode.Normalize() == ModeStudent {
		b.WriteString(studentFormat)
	} else {
		b.WriteString(professionalFormat)
	}
	b.WriteString("\nResponse:")
	return b.String()
}
