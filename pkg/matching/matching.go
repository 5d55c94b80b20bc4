package matching

import (
	"sort"

	"loan-marketplace-be/internal/entity"
)

// BuiltinOffers is the fallback catalog served when no registered lender
// covers the requested loan type.
var BuiltinOffers = []entity.LoanOffer{
	{
		LenderId:         "lender1",
		LenderName:       "HDFC Bank",
		LoanType:         entity.LoanTypePersonal,
		InterestRate:     10.5,
		TenureOptions:    []int{12, 24, 36, 48, 60},
		MaxAmount:        5000000,
		PlatformDiscount: 0.5,
		SpecialOffers:    []string{"Zero processing fee", "Instant approval"},
		EligibilityScore: 60,
	},
	{
		LenderId:         "lender2",
		LenderName:       "ICICI Bank",
		LoanType:         entity.LoanTypePersonal,
		InterestRate:     11.0,
		TenureOptions:    []int{12, 24, 36, 48},
		MaxAmount:        3000000,
		PlatformDiscount: 0.25,
		SpecialOffers:    []string{"Quick disbursal"},
		EligibilityScore: 55,
	},
	{
		LenderId:         "lender3",
		LenderName:       "Axis Bank",
		LoanType:         entity.LoanTypePersonal,
		InterestRate:     10.75,
		TenureOptions:    []int{12, 24, 36, 48, 60, 72},
		MaxAmount:        4000000,
		PlatformDiscount: 0.75,
		SpecialOffers:    []string{"Flexible repayment", "Top-up available"},
		EligibilityScore: 65,
	},
	{
		LenderId:         "lender4",
		LenderName:       "SBI",
		LoanType:         entity.LoanTypeHome,
		InterestRate:     8.5,
		TenureOptions:    []int{60, 120, 180, 240, 300},
		MaxAmount:        10000000,
		PlatformDiscount: 0.5,
		SpecialOffers:    []string{"Lowest interest rates"},
		EligibilityScore: 70,
	},
	{
		LenderId:         "lender5",
		LenderName:       "Bajaj Finserv",
		LoanType:         entity.LoanTypeVehicle,
		InterestRate:     9.5,
		TenureOptions:    []int{12, 24, 36, 48, 60},
		MaxAmount:        2000000,
		PlatformDiscount: 1.0,
		SpecialOffers:    []string{"Fast approval", "Online process"},
		EligibilityScore: 50,
	},
}

// Match keeps offers of the requested type whose eligibility bar the user
// clears, cheapest rate first, bigger platform discount breaking ties. An
// empty result is a valid answer, never an error.
func Match(offers []entity.LoanOffer, loanType entity.LoanType, userScore int) []entity.LoanOffer {
	matched := make([]entity.LoanOffer, 0, len(offers))
	for _, offer := range offers {
		if offer.LoanType == loanType && offer.EligibilityScore <= userScore {
			matched = append(matched, offer)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].InterestRate != matched[j].InterestRate {
			return matched[i].InterestRate < matched[j].InterestRate
		}
		return matched[i].PlatformDiscount > matched[j].PlatformDiscount
	})

	return matched
}

// MatchBuiltin runs Match against the fallback catalog.
func MatchBuiltin(loanType entity.LoanType, userScore int) []entity.LoanOffer {
	return Match(BuiltinOffers, loanType, userScore)
}

// LoanTypeInfo is the marketing blurb shown while the borrower picks a type.
type LoanTypeInfo struct {
	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
}

var loanTypeInfo = map[entity.LoanType]LoanTypeInfo{
	entity.LoanTypePersonal: {
		Description: "Personal loans for your immediate financial needs without collateral.",
		Benefits: []string{
			"Quick approval and disbursal",
			"No collateral required",
			"Flexible repayment options",
			"Competitive interest rates",
		},
	},
	entity.LoanTypeBusiness: {
		Description: "Business loans to grow and expand your enterprise.",
		Benefits: []string{
			"High loan amounts",
			"Business-friendly terms",
			"Working capital support",
			"Tax benefits",
		},
	},
	entity.LoanTypeHome: {
		Description: "Home loans to make your dream home a reality.",
		Benefits: []string{
			"Long repayment tenure",
			"Low interest rates",
			"Tax deductions available",
			"Flexible EMI options",
		},
	},
	entity.LoanTypeVehicle: {
		Description: "Vehicle loans for cars, bikes, and commercial vehicles.",
		Benefits: []string{
			"Fast processing",
			"Competitive rates",
			"Minimal documentation",
			"Quick disbursal",
		},
	},
	entity.LoanTypeEducation: {
		Description: "Education loans to support your academic aspirations.",
		Benefits: []string{
			"Moratorium period available",
			"Tax benefits",
			"No collateral for smaller amounts",
			"Flexible repayment",
		},
	},
	entity.LoanTypeGold: {
		Description: "Gold loans secured against your gold assets.",
		Benefits: []string{
			"Low interest rates",
			"Quick approval",
			"Flexible tenure",
			"Minimal documentation",
		},
	},
}

func GetLoanTypeInfo(loanType entity.LoanType) (LoanTypeInfo, bool) {
	info, ok := loanTypeInfo[loanType]
	return info, ok
}
