package storage

import (
	"database/sql"
	"errors"

	"FinanceAdvisor/internal/models"

	"github.com/shopspring/decimal"
	"modernc.org/sqlite"
)

var (
	ErrProfileExists   = errors.New("financial profile already exists")
	ErrProfileNotFound = errors.New("financial profile not found")
)

const profileColumns = `id, user_id, name, age, occupation, family_size,
	monthly_income, annual_income, monthly_expenses, monthly_savings, savings,
	current_debts, debt_interest_rate, risk_tolerance, investment_goal,
	investment_knowledge, has_investment_experience, previous_investments,
	short_term_goals, short_term_goal_amount, medium_term_goals,
	medium_term_goal_amount, long_term_goals, long_term_goal_amount,
	other_assets, retirement_plans, created_at, updated_at`

func CreateProfile(profile *models.FinancialProfile) error {
	stmt, err := db.Prepare(`INSERT INTO financial_profiles(
		user_id, name, age, occupation, family_size,
		monthly_income, annual_income, monthly_expenses, monthly_savings, savings,
		current_debts, debt_interest_rate, risk_tolerance, investment_goal,
		investment_knowledge, has_investment_experience, previous_investments,
		short_term_goals, short_term_goal_amount, medium_term_goals,
		medium_term_goal_amount, long_term_goals, long_term_goal_amount,
		other_assets, retirement_plans, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	created := now()
	result, err := stmt.Exec(
		profile.UserID, profile.Name, profile.Age, profile.Occupation, profile.FamilySize,
		profile.MonthlyIncome.String(), profile.AnnualIncome.String(),
		profile.MonthlyExpenses.String(), profile.MonthlySavings.String(), profile.Savings.String(),
		profile.CurrentDebts.String(), profile.DebtInterestRate.String(),
		profile.RiskTolerance, profile.InvestmentGoal, profile.InvestmentKnowledge,
		boolToInt(profile.HasInvestmentExperience), profile.PreviousInvestments,
		profile.ShortTermGoals, profile.ShortTermGoalAmount.String(),
		profile.MediumTermGoals, profile.MediumTermGoalAmount.String(),
		profile.LongTermGoals, profile.LongTermGoalAmount.String(),
		profile.OtherAssets, profile.RetirementPlans, created, created,
	)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqliteUniqueViolation {
			return ErrProfileExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	profile.ID = int(id)
	profile.CreatedAt = parseTime(created)
	profile.UpdatedAt = profile.CreatedAt
	return nil
}

func GetProfileByUserID(userID int) (models.FinancialProfile, error) {
	row := db.QueryRow("SELECT "+profileColumns+" FROM financial_profiles WHERE user_id = ?", userID)
	profile, err := scanProfile(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return profile, ErrProfileNotFound
		}
		return profile, err
	}
	return profile, nil
}

func UpdateProfile(profile *models.FinancialProfile) error {
	stmt, err := db.Prepare(`UPDATE financial_profiles SET
		name = ?, age = ?, occupation = ?, family_size = ?,
		monthly_income = ?, annual_income = ?, monthly_expenses = ?,
		monthly_savings = ?, savings = ?, current_debts = ?, debt_interest_rate = ?,
		risk_tolerance = ?, investment_goal = ?, investment_knowledge = ?,
		has_investment_experience = ?, previous_investments = ?,
		short_term_goals = ?, short_term_goal_amount = ?,
		medium_term_goals = ?, medium_term_goal_amount = ?,
		long_term_goals = ?, long_term_goal_amount = ?,
		other_assets = ?, retirement_plans = ?, updated_at = ?
		WHERE user_id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	updated := now()
	result, err := stmt.Exec(
		profile.Name, profile.Age, profile.Occupation, profile.FamilySize,
		profile.MonthlyIncome.String(), profile.AnnualIncome.String(),
		profile.MonthlyExpenses.String(), profile.MonthlySavings.String(), profile.Savings.String(),
		profile.CurrentDebts.String(), profile.DebtInterestRate.String(),
		profile.RiskTolerance, profile.InvestmentGoal, profile.InvestmentKnowledge,
		boolToInt(profile.HasInvestmentExperience), profile.PreviousInvestments,
		profile.ShortTermGoals, profile.ShortTermGoalAmount.String(),
		profile.MediumTermGoals, profile.MediumTermGoalAmount.String(),
		profile.LongTermGoals, profile.LongTermGoalAmount.String(),
		profile.OtherAssets, profile.RetirementPlans, updated,
		profile.UserID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProfileNotFound
	}
	profile.UpdatedAt = parseTime(updated)
	return nil
}

func scanProfile(row *sql.Row) (models.FinancialProfile, error) {
	var p models.FinancialProfile
	var monthlyIncome, annualIncome, monthlyExpenses, monthlySavings, savings string
	var currentDebts, debtInterestRate string
	var shortAmount, mediumAmount, longAmount string
	var hasExperience int
	var createdStr, updatedStr string

	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Age, &p.Occupation, &p.FamilySize,
		&monthlyIncome, &annualIncome, &monthlyExpenses, &monthlySavings, &savings,
		&currentDebts, &debtInterestRate, &p.RiskTolerance, &p.InvestmentGoal,
		&p.InvestmentKnowledge, &hasExperience, &p.PreviousInvestments,
		&p.ShortTermGoals, &shortAmount, &p.MediumTermGoals, &mediumAmount,
		&p.LongTermGoals, &longAmount, &p.OtherAssets, &p.RetirementPlans,
		&createdStr, &updatedStr,
	)
	if err != nil {
		return p, err
	}

	p.MonthlyIncome = parseDecimal(monthlyIncome)
	p.AnnualIncome = parseDecimal(annualIncome)
	p.MonthlyExpenses = parseDecimal(monthlyExpenses)
	p.MonthlySavings = parseDecimal(monthlySavings)
	p.Savings = parseDecimal(savings)
	p.CurrentDebts = parseDecimal(currentDebts)
	p.DebtInterestRate = parseDecimal(debtInterestRate)
	p.ShortTermGoalAmount = parseDecimal(shortAmount)
	p.MediumTermGoalAmount = parseDecimal(mediumAmount)
	p.LongTermGoalAmount = parseDecimal(longAmount)
	p.HasInvestmentExperience = hasExperience != 0
	p.CreatedAt = parseTime(createdStr)
	p.UpdatedAt = parseTime(updatedStr)
	return p, nil
}

// Stored amounts are written by decimal.String, a parse failure means zero.
func parseDecimal(s string) decimal.Decimal {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return value
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
