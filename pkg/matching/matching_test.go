package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-marketplace-be/internal/entity"
)

func TestMatchFiltersByTypeAndScore(t *testing.T) {
	offers := MatchBuiltin(entity.LoanTypePersonal, 70)

	require.Len(t, offers, 3)
	for _, offer := range offers {
		assert.Equal(t, entity.LoanTypePersonal, offer.LoanType)
		assert.LessOrEqual(t, offer.EligibilityScore, 70)
	}
}

func TestMatchSortsByRateAscending(t *testing.T) {
	offers := MatchBuiltin(entity.LoanTypePersonal, 70)

	require.Len(t, offers, 3)
	assert.Equal(t, "HDFC Bank", offers[0].LenderName)
	assert.Equal(t, "Axis Bank", offers[1].LenderName)
	assert.Equal(t, "ICICI Bank", offers[2].LenderName)
}

func TestMatchExcludesOffersAboveScoreBar(t *testing.T) {
	// At 58, only ICICI's bar of 55 is cleared.
	offers := MatchBuiltin(entity.LoanTypePersonal, 58)

	require.Len(t, offers, 1)
	assert.Equal(t, "ICICI Bank", offers[0].LenderName)
}

func TestMatchBoundaryScoreIsInclusive(t *testing.T) {
	// SBI's Home bar is exactly 70.
	offers := MatchBuiltin(entity.LoanTypeHome, 70)
	require.Len(t, offers, 1)
	assert.Equal(t, "SBI", offers[0].LenderName)

	assert.Empty(t, MatchBuiltin(entity.LoanTypeHome, 69))
}

func TestMatchEmptyResultIsValid(t *testing.T) {
	offers := MatchBuiltin(entity.LoanTypeGold, 100)
	assert.NotNil(t, offers)
	assert.Empty(t, offers)
}

func TestMatchDiscountBreaksRateTies(t *testing.T) {
	offers := []entity.LoanOffer{
		{LenderId: "a", LoanType: entity.LoanTypePersonal, InterestRate: 10.0, PlatformDiscount: 0.25, EligibilityScore: 50},
		{LenderId: "b", LoanType: entity.LoanTypePersonal, InterestRate: 10.0, PlatformDiscount: 0.75, EligibilityScore: 50},
	}

	matched := Match(offers, entity.LoanTypePersonal, 60)
	require.Len(t, matched, 2)
	assert.Equal(t, "b", matched[0].LenderId)
}

func TestGetLoanTypeInfoCoversEveryType(t *testing.T) {
	for _, lt := range entity.AllLoanTypes {
		info, ok := GetLoanTypeInfo(lt)
		require.True(t, ok, "missing info for %s", lt)
		assert.NotEmpty(t, info.Description)
		assert.NotEmpty(t, info.Benefits)
	}

	_, ok := GetLoanTypeInfo(entity.LoanType("Yacht"))
	assert.False(t, ok)
}
