/**
* Name: 			profile.go
* Description: 		Financial profile of a user with investment preferences and goals
* Workflow: 		Filled in by the profile form, read by the prompt builder
 */

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Risk tolerance codes (form values "1".."5")
var riskToleranceLabels = map[string]string{
	"1": "Very Conservative",
	"2": "Conservative",
	"3": "Neutral",
	"4": "Aggressive",
	"5": "Extremely Aggressive",
}

// Investment goal codes
var investmentGoalLabels = map[string]string{
	"retirement": "Retirement Planning",
	"wealth":     "Wealth Building",
	"education":  "Education Funding",
	"home":       "Home Purchase",
	"other":      "Other Goals",
}

// Investment knowledge codes (form values "1".."5")
var investmentKnowledgeLabels = map[string]string{
	"1": "Beginner",
	"2": "Intermediate",
	"3": "Advanced",
	"4": "Expert",
	"5": "Extremely Expert",
}

type FinancialProfile struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`

	// Personal information
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Occupation string `json:"occupation"`
	FamilySize int    `json:"family_size"`

	// Financial information
	MonthlyIncome    decimal.Decimal `json:"monthly_income"`
	AnnualIncome     decimal.Decimal `json:"annual_income"`
	MonthlyExpenses  decimal.Decimal `json:"monthly_expenses"`
	MonthlySavings   decimal.Decimal `json:"monthly_savings"`
	Savings          decimal.Decimal `json:"savings"`
	CurrentDebts     decimal.Decimal `json:"current_debts"`
	DebtInterestRate decimal.Decimal `json:"debt_interest_rate"`

	// Investment preferences
	RiskTolerance           string `json:"risk_tolerance"`
	InvestmentGoal          string `json:"investment_goal"`
	InvestmentKnowledge     string `json:"investment_knowledge"`
	HasInvestmentExperience bool   `json:"has_investment_experience"`
	PreviousInvestments     string `json:"previous_investments"`

	// Goals per horizon
	ShortTermGoals       string          `json:"short_term_goals"`
	ShortTermGoalAmount  decimal.Decimal `json:"short_term_goal_amount"`
	MediumTermGoals      string          `json:"medium_term_goals"`
	MediumTermGoalAmount decimal.Decimal `json:"medium_term_goal_amount"`
	LongTermGoals        string          `json:"long_term_goals"`
	LongTermGoalAmount   decimal.Decimal `json:"long_term_goal_amount"`

	// Additional assets
	OtherAssets     string `json:"other_assets"`
	RetirementPlans string `json:"retirement_plans"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *FinancialProfile) RiskToleranceLabel() string {
	if label, ok := riskToleranceLabels[p.RiskTolerance]; ok {
		return label
	}
	return "Neutral"
}

func (p *FinancialProfile) InvestmentGoalLabel() string {
	if label, ok := investmentGoalLabels[p.InvestmentGoal]; ok {
		return label
	}
	return "Other Goals"
}

func (p *FinancialProfile) InvestmentKnowledgeLabel() string {
	if label, ok := investmentKnowledgeLabels[p.InvestmentKnowledge]; ok {
		return label
	}
	return "Advanced"
}

// FillDerived computes annual income and savings from the monthly values
// when they were not supplied by the form.
func (p *FinancialProfile) FillDerived() {
	twelve := decimal.NewFromInt(12)
	if p.AnnualIncome.IsZero() && !p.MonthlyIncome.IsZero() {
		p.AnnualIncome = p.MonthlyIncome.Mul(twelve)
	}
	if p.MonthlyIncome.IsZero() && !p.AnnualIncome.IsZero() {
		p.MonthlyIncome = p.AnnualIncome.Div(twelve)
	}
	if p.Savings.IsZero() && !p.MonthlySavings.IsZero() {
		p.Savings = p.MonthlySavings.Mul(twelve)
	}
}

// Validate returns field-level error messages, empty when the profile is valid.
func (p *FinancialProfile) Validate() map[string]string {
	fields := make(map[string]string)

	if p.Name == "" {
		fields["name"] = "Name is required"
	}
	if p.Age < 18 {
		fields["age"] = "You must be at least 18 years old"
	} else if p.Age > 100 {
		fields["age"] = "Please enter a valid age"
	}
	if p.Occupation == "" {
		fields["occupation"] = "Occupation is required"
	}
	if p.FamilySize < 1 {
		fields["family_size"] = "Family size must be at least 1"
	}

	if p.MonthlyIncome.IsNegative() {
		fields["monthly_income"] = "Monthly income cannot be negative"
	}
	if p.MonthlyExpenses.IsNegative() {
		fields["monthly_expenses"] = "Monthly expenses cannot be negative"
	}
	if p.MonthlySavings.IsNegative() {
		fields["monthly_savings"] = "Monthly savings cannot be negative"
	}
	if p.CurrentDebts.IsNegative() {
		fields["current_debts"] = "Current debts cannot be negative"
	}
	if p.DebtInterestRate.IsNegative() || p.DebtInterestRate.GreaterThan(decimal.NewFromInt(100)) {
		fields["debt_interest_rate"] = "Debt interest rate must be between 0 and 100"
	}

	if _, ok := fields["monthly_income"]; !ok {
		if _, ok := fields["monthly_expenses"]; !ok {
			if p.MonthlyExpenses.GreaterThan(p.MonthlyIncome) {
				fields["monthly_expenses"] = "Monthly expenses cannot be greater than monthly income"
			} else if p.MonthlySavings.GreaterThan(p.MonthlyIncome.Sub(p.MonthlyExpenses)) {
				fields["monthly_savings"] = "Monthly savings cannot be greater than (income - expenses)"
			}
		}
	}

	if p.ShortTermGoalAmount.IsNegative() {
		fields["short_term_goal_amount"] = "Goal amount cannot be negative"
	}
	if p.MediumTermGoalAmount.IsNegative() {
		fields["medium_term_goal_amount"] = "Goal amount cannot be negative"
	}
	if p.LongTermGoalAmount.IsNegative() {
		fields["long_term_goal_amount"] = "Goal amount cannot be negative"
	}

	if _, ok := riskToleranceLabels[p.RiskTolerance]; !ok {
		fields["risk_tolerance"] = "Risk tolerance must be a value from 1 to 5"
	}
	if _, ok := investmentGoalLabels[p.InvestmentGoal]; !ok {
		fields["investment_goal"] = "Invalid investment goal"
	}
	if _, ok := investmentKnowledgeLabels[p.InvestmentKnowledge]; !ok {
		fields["investment_knowledge"] = "Investment knowledge must be a value from 1 to 5"
	}

	return fields
}
