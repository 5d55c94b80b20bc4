package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loan-marketplace-be/internal/entity"
)

func docWithIncome(monthly float64) entity.ExtractedData {
	return entity.ExtractedData{
		IncomeSummary: &entity.IncomeSummary{MonthlyIncome: monthly},
	}
}

func TestIncomeStabilityTiers(t *testing.T) {
	tests := []struct {
		income   float64
		expected float64
	}{
		{100000, 25},
		{99999, 20},
		{50000, 20},
		{30000, 15},
		{20000, 10},
		{19999, 5},
	}

	for _, tt := range tests {
		got := incomeStability([]entity.ExtractedData{docWithIncome(tt.income)})
		assert.Equal(t, tt.expected, got, "income %v", tt.income)
	}
}

func TestIncomeStabilityZeroWithoutEvidence(t *testing.T) {
	assert.Equal(t, 0.0, incomeStability(nil))
	assert.Equal(t, 0.0, incomeStability([]entity.ExtractedData{{}}))
}

func TestEmiBurdenTiers(t *testing.T) {
	tests := []struct {
		emi      float64
		expected float64
	}{
		{9999, 25},  // ratio just under 0.2
		{20000, 20}, // 0.2
		{30000, 15}, // 0.3
		{40000, 10}, // 0.4
		{50000, 5},  // 0.5
	}

	for _, tt := range tests {
		doc := entity.ExtractedData{
			IncomeSummary:  &entity.IncomeSummary{MonthlyIncome: 100000},
			EmiObligations: &entity.EmiObligations{TotalEMI: tt.emi},
		}
		assert.Equal(t, tt.expected, emiBurden([]entity.ExtractedData{doc}), "emi %v", tt.emi)
	}
}

func TestEmiBurdenNeutralDefault(t *testing.T) {
	assert.Equal(t, 15.0, emiBurden(nil))
	assert.Equal(t, 15.0, emiBurden([]entity.ExtractedData{docWithIncome(50000)}))
}

func TestSavingsRatioTreatsFiguresAsAnnual(t *testing.T) {
	// 360000 annual savings / 12 = 30000 monthly against 100000 income: 0.3.
	doc := entity.ExtractedData{
		IncomeSummary: &entity.IncomeSummary{MonthlyIncome: 100000},
		Savings:       360000,
	}
	assert.Equal(t, 20.0, savingsRatio([]entity.ExtractedData{doc}))

	doc.Savings = 240000 // ratio 0.2
	assert.Equal(t, 15.0, savingsRatio([]entity.ExtractedData{doc}))

	doc.Savings = 120000 // ratio 0.1
	assert.Equal(t, 10.0, savingsRatio([]entity.ExtractedData{doc}))

	doc.Savings = 60000 // ratio 0.05
	assert.Equal(t, 5.0, savingsRatio([]entity.ExtractedData{doc}))
}

func TestSavingsRatioDefault(t *testing.T) {
	assert.Equal(t, 5.0, savingsRatio(nil))
}

func TestCreditPointsClampedToRange(t *testing.T) {
	assert.Equal(t, 0.0, creditPoints(300))
	assert.Equal(t, 20.0, creditPoints(900))
	assert.Equal(t, 0.0, creditPoints(250))
	assert.Equal(t, 20.0, creditPoints(950))
	assert.InDelta(t, 10.0, creditPoints(600), 0.001)
}

func TestDocumentAccuracy(t *testing.T) {
	assert.Equal(t, 0.0, documentAccuracy(nil))
	assert.Equal(t, 10.0, documentAccuracy([]string{"aadhar", "pan", "bank_statement", "income_proof"}))
	assert.Equal(t, 5.0, documentAccuracy([]string{"aadhar", "pan"}))
	// Extra checklist documents do not affect the accuracy component.
	assert.Equal(t, 3.0, documentAccuracy([]string{"aadhar", "passbook", "signature"}))
}

func TestEligibilityBoundaries(t *testing.T) {
	assert.True(t, Eligibility(50).Eligible)
	assert.False(t, Eligibility(49).Eligible)

	high := Eligibility(80)
	assert.Equal(t, 5000000.0, high.MaxLoanAmount)
	assert.Equal(t, 60, high.RecommendedTenure)
	assert.Equal(t, entity.RiskLevelLow, high.RiskLevel)

	mid := Eligibility(60)
	assert.Equal(t, 3000000.0, mid.MaxLoanAmount)
	assert.Equal(t, 48, mid.RecommendedTenure)
	assert.Equal(t, entity.RiskLevelMedium, mid.RiskLevel)

	low := Eligibility(40)
	assert.Equal(t, 1000000.0, low.MaxLoanAmount)
	assert.Equal(t, 36, low.RecommendedTenure)
	assert.Equal(t, entity.RiskLevelHigh, low.RiskLevel)

	assert.Equal(t, entity.RiskLevelLow, Eligibility(70).RiskLevel)
	assert.Equal(t, entity.RiskLevelMedium, Eligibility(69).RiskLevel)
}

func TestCalculateSumsComponents(t *testing.T) {
	docs := []entity.ExtractedData{
		{
			IncomeSummary:  &entity.IncomeSummary{MonthlyIncome: 100000},
			EmiObligations: &entity.EmiObligations{TotalEMI: 15000},
			Savings:        360000,
		},
	}
	score := Calculate("u1", docs, 900, []string{"aadhar", "pan", "bank_statement", "income_proof"})

	assert.Equal(t, 25.0, score.IncomeStability)
	assert.Equal(t, 25.0, score.EmiBurden)
	assert.Equal(t, 20.0, score.SavingsRatio)
	assert.Equal(t, 20.0, score.CreditScore)
	assert.Equal(t, 10.0, score.DocumentAccuracy)
	assert.Equal(t, 100, score.TotalScore)
	assert.Equal(t, "u1", score.UserId)
}

func TestEMI(t *testing.T) {
	// 5,00,000 at 10.5% over 36 months.
	assert.Equal(t, 16251.0, EMI(500000, 10.5, 36))

	// Zero rate degenerates to straight division.
	assert.Equal(t, 10000.0, EMI(360000, 0, 36))

	assert.Equal(t, 0.0, EMI(0, 10, 36))
	assert.Equal(t, 0.0, EMI(100000, 10, 0))
}
