package advisor

import (
	"strings"
	"testing"
	"unicode/utf8"

	"FinanceAdvisor/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testProfile() *models.FinancialProfile {
	return &models.FinancialProfile{
		Name:                "Priya",
		Age:                 34,
		Occupation:          "software engineer",
		FamilySize:          3,
		MonthlyIncome:       decimal.NewFromInt(200000),
		AnnualIncome:        decimal.NewFromInt(2400000),
		MonthlyExpenses:     decimal.NewFromInt(120000),
		MonthlySavings:      decimal.NewFromInt(50000),
		Savings:             decimal.NewFromInt(600000),
		CurrentDebts:        decimal.NewFromInt(300000),
		DebtInterestRate:    decimal.NewFromFloat(9.5),
		RiskTolerance:       "2",
		InvestmentGoal:      "retirement",
		InvestmentKnowledge: "3",
		ShortTermGoals:      "emergency fund",
		LongTermGoals:       "retire at 55",
	}
}

func TestBuildAdvicePromptContainsProvidedFields(t *testing.T) {
	p := testProfile()
	prompt := BuildAdvicePrompt(p, 0)

	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "Priya")
	assert.Contains(t, prompt, "34")
	assert.Contains(t, prompt, "software engineer")
	assert.Contains(t, prompt, "Retirement Planning")
	assert.Contains(t, prompt, "Conservative")
	assert.Contains(t, prompt, "emergency fund")
	assert.Contains(t, prompt, "retire at 55")
	assert.Contains(t, prompt, "9.50")
}

func TestBuildAdvicePromptSubstitutesPlaceholders(t *testing.T) {
	p := testProfile()
	p.PreviousInvestments = ""
	p.OtherAssets = "   "
	p.RetirementPlans = ""

	prompt := BuildAdvicePrompt(p, 0)

	assert.Contains(t, prompt, "Not specified")
	assert.NotEmpty(t, prompt)
}

func TestBuildAdvicePromptIsCapped(t *testing.T) {
	p := testProfile()
	p.PreviousInvestments = strings.Repeat("gold bonds and more ", 1000)

	prompt := BuildAdvicePrompt(p, 0)

	assert.LessOrEqual(t, utf8.RuneCountInString(prompt), maxPromptRunes)
}

func TestBuildChatPrompt(t *testing.T) {
	p := testProfile()
	history := []models.ChatMessage{
		{Role: models.RoleUser, Content: "What about gold?"},
		{Role: models.RoleAdvisor, Content: "<p>Gold is a <strong>hedge</strong>.</p>"},
	}

	prompt := BuildChatPrompt(p, history, "Should I buy index funds?")

	assert.Contains(t, prompt, "User asks: Should I buy index funds?")
	assert.Contains(t, prompt, "USER: What about gold?")
	assert.Contains(t, prompt, "ASSISTANT: Gold is a hedge.")
	// stored advisor HTML must not leak markup into the model context
	assert.NotContains(t, prompt, "<strong>")
	assert.Contains(t, prompt, "Priya")
}

func TestBuildChatPromptWithoutHistory(t *testing.T) {
	prompt := BuildChatPrompt(testProfile(), nil, "hello")

	assert.NotContains(t, prompt, "Recent conversation history")
	assert.Contains(t, prompt, "User asks: hello")
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		want  string
	}{
		{"plain", 2500, "₹2500.00"},
		{"lakh", 250000, "₹2.50 lakh"},
		{"crore", 25000000, "₹2.50 crore"},
		{"zero", 0, "₹0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.NewFromInt(tt.value)))
		})
	}
}

func TestFocusAreaRotation(t *testing.T) {
	first := FocusAreaFor("retirement", 0)
	second := FocusAreaFor("retirement", 1)

	assert.Equal(t, "long-term wealth building", first)
	assert.NotEqual(t, first, second)
	// wraps around
	assert.Equal(t, first, FocusAreaFor("retirement", 3))
}

func TestFocusAreaUnknownGoalFallsBack(t *testing.T) {
	assert.Equal(t, FocusAreaFor("other", 0), FocusAreaFor("something_else", 0))
}

func TestAdviceTitle(t *testing.T) {
	p := testProfile()
	title := AdviceTitle(p, 0)

	assert.Equal(t, "Investment Advice: Long-term Wealth Building for Priya", title)
}
