/**
* Name: 			prompt.go
* Description: 		Builds model prompts from profile data and chat history
* Workflow: 		Format profile fields, frame instructions, cap length
 */

package advisor

import (
	"fmt"
	"regexp"
	"strings"

	"FinanceAdvisor/internal/models"

	"github.com/shopspring/decimal"
)

// Prompts are capped to keep requests bounded; the model endpoint has its
// own context window anyway.
const maxPromptRunes = 8000

const notSpecified = "Not specified"

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// FormatCurrency renders an amount in Indian notation (lakh/crore).
func FormatCurrency(value decimal.Decimal) string {
	crore := decimal.NewFromInt(10000000)
	lakh := decimal.NewFromInt(100000)

	switch {
	case value.GreaterThanOrEqual(crore):
		return fmt.Sprintf("₹%s crore", value.Div(crore).StringFixed(2))
	case value.GreaterThanOrEqual(lakh):
		return fmt.Sprintf("₹%s lakh", value.Div(lakh).StringFixed(2))
	default:
		return fmt.Sprintf("₹%s", value.StringFixed(2))
	}
}

// BuildAdvicePrompt frames the full profile as an instruction prompt for a
// fresh advice generation.
func BuildAdvicePrompt(p *models.FinancialProfile, adviceCount int) string {
	focusArea := FocusAreaFor(p.InvestmentGoal, adviceCount)

	var b strings.Builder
	b.WriteString("As an expert financial advisor, provide personalized investment advice based on the following client profile:\n\n")

	b.WriteString("Personal Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orPlaceholder(p.Name))
	fmt.Fprintf(&b, "- Age: %d\n", p.Age)
	fmt.Fprintf(&b, "- Occupation: %s\n", orPlaceholder(p.Occupation))
	fmt.Fprintf(&b, "- Family Size: %d\n\n", p.FamilySize)

	b.WriteString("Financial Situation:\n")
	fmt.Fprintf(&b, "- Monthly Income: %s\n", FormatCurrency(p.MonthlyIncome))
	fmt.Fprintf(&b, "- Monthly Expenses: %s\n", FormatCurrency(p.MonthlyExpenses))
	fmt.Fprintf(&b, "- Monthly Savings: %s\n", FormatCurrency(p.MonthlySavings))
	fmt.Fprintf(&b, "- Annual Income: %s\n", FormatCurrency(p.AnnualIncome))
	fmt.Fprintf(&b, "- Savings: %s\n", FormatCurrency(p.Savings))
	fmt.Fprintf(&b, "- Current Debts: %s (Interest Rate: %s%%)\n\n", FormatCurrency(p.CurrentDebts), p.DebtInterestRate.StringFixed(2))

	b.WriteString("Investment Profile:\n")
	fmt.Fprintf(&b, "- Risk Tolerance: %s\n", p.RiskToleranceLabel())
	fmt.Fprintf(&b, "- Investment Goal: %s\n", p.InvestmentGoalLabel())
	fmt.Fprintf(&b, "- Investment Knowledge: %s\n", p.InvestmentKnowledgeLabel())
	fmt.Fprintf(&b, "- Previous Investment Experience: %s\n", yesNo(p.HasInvestmentExperience))
	fmt.Fprintf(&b, "- Previous Investments: %s\n\n", orPlaceholder(p.PreviousInvestments))

	b.WriteString("Financial Goals:\n")
	fmt.Fprintf(&b, "Short-term (1-3 years): %s (Required Amount: %s)\n", orPlaceholder(p.ShortTermGoals), FormatCurrency(p.ShortTermGoalAmount))
	fmt.Fprintf(&b, "Medium-term (5-10 years): %s (Required Amount: %s)\n", orPlaceholder(p.MediumTermGoals), FormatCurrency(p.MediumTermGoalAmount))
	fmt.Fprintf(&b, "Long-term (10+ years): %s (Required Amount: %s)\n\n", orPlaceholder(p.LongTermGoals), FormatCurrency(p.LongTermGoalAmount))

	b.WriteString("Additional Information:\n")
	fmt.Fprintf(&b, "- Other Assets: %s\n", orPlaceholder(p.OtherAssets))
	fmt.Fprintf(&b, "- Retirement Plans: %s\n\n", orPlaceholder(p.RetirementPlans))

	fmt.Fprintf(&b, "Focus Area: %s\n", focusArea)
	if adviceCount == 0 {
		b.WriteString("Advice Count: First advice\n\n")
	} else {
		fmt.Fprintf(&b, "Advice Count: Advice #%d\n\n", adviceCount+1)
	}

	b.WriteString("Please provide:\n")
	fmt.Fprintf(&b, "1. A personalized investment strategy with specific focus on %s\n", focusArea)
	b.WriteString("2. Specific investment recommendations for each time horizon\n")
	b.WriteString("3. Asset allocation suggestions\n")
	b.WriteString("4. Risk management strategies\n")
	b.WriteString("5. Regular review and rebalancing recommendations\n\n")
	b.WriteString("Format the response in a clear, structured manner with sections and bullet points where appropriate.")

	return truncatePrompt(b.String())
}

// BuildChatPrompt embeds profile context and the recent conversation around
// the user's question.
func BuildChatPrompt(p *models.FinancialProfile, history []models.ChatMessage, question string) string {
	var b strings.Builder

	b.WriteString("Context: This user has submitted a financial profile with the following details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orPlaceholder(p.Name))
	fmt.Fprintf(&b, "- Age: %d\n", p.Age)
	fmt.Fprintf(&b, "- Occupation: %s\n", orPlaceholder(p.Occupation))
	fmt.Fprintf(&b, "- Annual Income: %s\n", FormatCurrency(p.AnnualIncome))
	fmt.Fprintf(&b, "- Savings: %s\n", FormatCurrency(p.Savings))
	fmt.Fprintf(&b, "- Risk Tolerance: %s\n", p.RiskToleranceLabel())
	fmt.Fprintf(&b, "- Investment Goal: %s\n\n", p.InvestmentGoalLabel())

	if len(history) > 0 {
		b.WriteString("Recent conversation history:\n")
		for _, msg := range history {
			// advisor turns are stored as HTML, strip tags for context
			content := strings.TrimSpace(htmlTagPattern.ReplaceAllString(msg.Content, ""))
			role := "USER"
			if msg.Role == models.RoleAdvisor {
				role = "ASSISTANT"
			}
			fmt.Fprintf(&b, "%s: %s\n", role, content)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "User asks: %s\n\n", question)
	b.WriteString("Provide a helpful, accurate, and personalized response addressing their question about finances or investments. ")
	b.WriteString("Keep the response concise yet informative. Use clear formatting with bullet points or numbered lists if applicable.")

	return truncatePrompt(b.String())
}

// AdviceTitle names a generated record after its focus area.
func AdviceTitle(p *models.FinancialProfile, adviceCount int) string {
	return fmt.Sprintf("Investment Advice: %s for %s", titleCase(FocusAreaFor(p.InvestmentGoal, adviceCount)), p.Name)
}

func truncatePrompt(s string) string {
	runes := []rune(s)
	if len(runes) <= maxPromptRunes {
		return s
	}
	return string(runes[:maxPromptRunes])
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
