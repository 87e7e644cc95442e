// Package finance implements the projection formulas and the multi-month
// budget simulator. Everything here is a pure function: no I/O, no shared
// state, all inputs passed explicitly.
//
// Intermediate computation uses full float64 precision; only the final
// presented values are rounded to the nearest integer currency unit.
package finance

import "math"

// CompoundResult holds the outcome of a recurring-contribution projection.
type CompoundResult struct {
	Total              int64 `json:"total"`
	TotalContributions int64 `json:"totalContributions"`
	InterestEarned     int64 `json:"interestEarned"`
}

// CompoundInterest projects the growth of an initial principal with a fixed
// monthly contribution, compounding month by month.
//
// The computation is deliberately iterative rather than closed-form: the
// balance is advanced exactly years*12 times with
//
//	total = total*(1+monthlyRate) + monthlyContribution
//
// which matches how the historical clients computed it, bit for bit on the
// rounded outputs.
func CompoundInterest(principal, monthlyContribution, annualRate float64, years int) CompoundResult {
	monthlyRate := annualRate / 100 / 12
	months := years * 12

	total := principal
	for i := 0; i < months; i++ {
		total = total*(1+monthlyRate) + monthlyContribution
	}

	contributions := principal + monthlyContribution*float64(months)
	return CompoundResult{
		Total:              roundUnit(total),
		TotalContributions: roundUnit(contributions),
		InterestEarned:     roundUnit(total - contributions),
	}
}

// LoanResult holds the amortization outcome for a fixed-rate loan.
type LoanResult struct {
	MonthlyPayment int64 `json:"monthlyPayment"`
	TotalPayment   int64 `json:"totalPayment"`
	TotalInterest  int64 `json:"totalInterest"`
}

// LoanPayment computes the fixed annuity payment that fully amortizes a
// loan over its term, using the standard formula
//
//	payment = P * (r*(1+r)^n) / ((1+r)^n - 1)
//
// A zero rate degenerates the formula to 0/0, so it is special-cased to a
// plain principal/months split. A zero term returns all zeros.
func LoanPayment(amount, annualRate float64, years int) LoanResult {
	months := years * 12
	if months <= 0 {
		return LoanResult{}
	}

	monthlyRate := annualRate / 100 / 12
	var payment float64
	if monthlyRate == 0 {
		payment = amount / float64(months)
	} else {
		factor := math.Pow(1+monthlyRate, float64(months))
		payment = amount * (monthlyRate * factor) / (factor - 1)
	}

	totalPayment := payment * float64(months)
	return LoanResult{
		MonthlyPayment: roundUnit(payment),
		TotalPayment:   roundUnit(totalPayment),
		TotalInterest:  roundUnit(totalPayment - amount),
	}
}

// FutureValue returns the value of a lump sum after compounding annually.
func FutureValue(presentValue, annualRate float64, years int) float64 {
	return presentValue * math.Pow(1+annualRate/100, float64(years))
}

// DebtToIncome returns monthly debt payments as a percentage of monthly
// income. Zero income yields 0 rather than a division error.
func DebtToIncome(monthlyDebtPayments, monthlyIncome float64) float64 {
	if monthlyIncome == 0 {
		return 0
	}
	return monthlyDebtPayments / monthlyIncome * 100
}

// SavingsRate returns the fraction of income not consumed by expenses,
// expressed as a percentage. Zero income yields 0.
func SavingsRate(income, expenses float64) float64 {
	if income == 0 {
		return 0
	}
	return (income - expenses) / income * 100
}

// RuleOf72 estimates the number of years required to double an investment
// at the given annual rate. Zero rate yields 0.
func RuleOf72(annualRate float64) float64 {
	if annualRate == 0 {
		return 0
	}
	return 72 / annualRate
}

// retirementRealRate is the real (post-inflation) discount rate assumed for
// the retirement capital projection.
const retirementRealRate = 0.03

// RetirementNeeds returns the capital required to draw the desired monthly
// income over the retirement horizon, discounted as an annuity present
// value at a fixed 3% real rate.
//
// The inflationRate argument is accepted for interface compatibility but
// is currently not used: the fixed real rate already nets out inflation.
func RetirementNeeds(desiredMonthlyIncome float64, yearsInRetirement int, inflationRate float64) int64 {
	_ = inflationRate
	annualIncome := desiredMonthlyIncome * 12
	presentValue := annualIncome * ((1 - math.Pow(1+retirementRealRate, float64(-yearsInRetirement))) / retirementRealRate)
	return roundUnit(presentValue)
}

// BudgetRuleResult is the outcome of the 50/30/20 analysis.
type BudgetRuleResult struct {
	IsBalanced        bool     `json:"isBalanced"`
	NeedsPercentage   float64  `json:"needsPercentage"`
	WantsPercentage   float64  `json:"wantsPercentage"`
	SavingsPercentage float64  `json:"savingsPercentage"`
	Recommendations   []string `json:"recommendations"`
}

// AnalyzeBudgetRule checks spending against the 50/30/20 rule: at most 50%
// of income on needs, at most 30% on wants, at least 20% saved. Each
// threshold is evaluated independently, so several recommendations can
// fire at once. Zero income yields zero percentages.
func AnalyzeBudgetRule(income, needs, wants, savings float64) BudgetRuleResult {
	var needsPct, wantsPct, savingsPct float64
	if income != 0 {
		needsPct = needs / income * 100
		wantsPct = wants / income * 100
		savingsPct = savings / income * 100
	}

	recommendations := []string{}
	if needsPct > 50 {
		recommendations = append(recommendations, "Сократите обязательные расходы")
	}
	if wantsPct > 30 {
		recommendations = append(recommendations, "Уменьшите произвольные траты")
	}
	if savingsPct < 20 {
		recommendations = append(recommendations, "Увеличьте норму сбережений")
	}

	return BudgetRuleResult{
		IsBalanced:        needsPct <= 50 && wantsPct <= 30 && savingsPct >= 20,
		NeedsPercentage:   needsPct,
		WantsPercentage:   wantsPct,
		SavingsPercentage: savingsPct,
		Recommendations:   recommendations,
	}
}

func roundUnit(v float64) int64 {
	return int64(math.Round(v))
}
