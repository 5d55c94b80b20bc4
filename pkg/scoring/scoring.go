package scoring

import (
	"math"
	"time"

	"loan-marketplace-be/internal/entity"
)

// UserScore is the weighted 0-100 creditworthiness breakdown. Component
// ceilings: income 25, EMI 25, savings 20, credit 20, documents 10.
type UserScore struct {
	UserId           string    `json:"userId"`
	IncomeStability  float64   `json:"incomeStability"`
	EmiBurden        float64   `json:"emiBurden"`
	SavingsRatio     float64   `json:"savingsRatio"`
	CreditScore      float64   `json:"creditScore"`
	DocumentAccuracy float64   `json:"documentAccuracy"`
	TotalScore       int       `json:"totalScore"`
	CalculatedAt     time.Time `json:"calculatedAt"`
}

// Calculate combines the extracted document evidence with the bureau score.
// Each component degrades to a documented default when its evidence is
// missing rather than failing the whole calculation.
func Calculate(userId string, extracted []entity.ExtractedData, creditScore int, documentTypes []string) UserScore {
	income := incomeStability(extracted)
	emi := emiBurden(extracted)
	savings := savingsRatio(extracted)
	credit := creditPoints(creditScore)
	docs := documentAccuracy(documentTypes)

	return UserScore{
		UserId:           userId,
		IncomeStability:  income,
		EmiBurden:        emi,
		SavingsRatio:     savings,
		CreditScore:      credit,
		DocumentAccuracy: docs,
		TotalScore:       int(math.Round(income + emi + savings + credit + docs)),
		CalculatedAt:     time.Now(),
	}
}

func incomeStability(extracted []entity.ExtractedData) float64 {
	var monthlyIncome float64
	found := false
	for _, d := range extracted {
		if d.IncomeSummary != nil {
			monthlyIncome = d.IncomeSummary.MonthlyIncome
			found = true
			break
		}
	}
	if !found {
		return 0
	}

	switch {
	case monthlyIncome >= 100000:
		return 25
	case monthlyIncome >= 50000:
		return 20
	case monthlyIncome >= 30000:
		return 15
	case monthlyIncome >= 20000:
		return 10
	default:
		return 5
	}
}

func emiBurden(extracted []entity.ExtractedData) float64 {
	for _, d := range extracted {
		if d.EmiObligations == nil || d.IncomeSummary == nil {
			continue
		}
		ratio := d.EmiObligations.TotalEMI / d.IncomeSummary.MonthlyIncome
		switch {
		case ratio < 0.2:
			return 25
		case ratio < 0.3:
			return 20
		case ratio < 0.4:
			return 15
		case ratio < 0.5:
			return 10
		default:
			return 5
		}
	}
	// Neutral default when no bank evidence was submitted.
	return 15
}

func savingsRatio(extracted []entity.ExtractedData) float64 {
	for _, d := range extracted {
		if d.Savings <= 0 || d.IncomeSummary == nil {
			continue
		}
		// Savings figures come in as annual totals.
		ratio := (d.Savings / 12) / d.IncomeSummary.MonthlyIncome
		switch {
		case ratio >= 0.3:
			return 20
		case ratio >= 0.2:
			return 15
		case ratio >= 0.1:
			return 10
		default:
			return 5
		}
	}
	return 5
}

// creditPoints maps the bureau range 300-900 linearly onto 0-20.
func creditPoints(creditScore int) float64 {
	points := (float64(creditScore) - 300) / 600 * 20
	return math.Max(0, math.Min(20, points))
}

var accuracyDocs = []string{"aadhar", "pan", "bank_statement", "income_proof"}

func documentAccuracy(documentTypes []string) float64 {
	if len(documentTypes) == 0 {
		return 0
	}
	present := map[string]bool{}
	for _, t := range documentTypes {
		present[t] = true
	}
	matched := 0
	for _, required := range accuracyDocs {
		if present[required] {
			matched++
		}
	}
	return math.Round(float64(matched) / float64(len(accuracyDocs)) * 10)
}

// Eligibility converts a total score into the lender-facing verdict.
func Eligibility(totalScore int) entity.LoanEligibility {
	eligible := totalScore >= 50

	var maxAmount float64
	var tenure int
	switch {
	case totalScore >= 80:
		maxAmount, tenure = 5000000, 60
	case totalScore >= 60:
		maxAmount, tenure = 3000000, 48
	default:
		maxAmount, tenure = 1000000, 36
	}

	risk := entity.RiskLevelHigh
	switch {
	case totalScore >= 70:
		risk = entity.RiskLevelLow
	case totalScore >= 50:
		risk = entity.RiskLevelMedium
	}

	return entity.LoanEligibility{
		Eligible:          eligible,
		MaxLoanAmount:     maxAmount,
		RecommendedTenure: tenure,
		RiskLevel:         risk,
	}
}

// EMI computes the equated monthly installment with the standard
// amortization formula, rounded to the nearest rupee.
func EMI(principal, annualRate float64, tenureMonths int) float64 {
	if principal <= 0 || tenureMonths <= 0 {
		return 0
	}
	if annualRate <= 0 {
		return math.Round(principal / float64(tenureMonths))
	}

	monthlyRate := annualRate / 12 / 100
	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	return math.Round(principal * monthlyRate * factor / (factor - 1))
}
