package entity

// LoanType is the closed set of products the marketplace brokers.
type LoanType string

const (
	LoanTypePersonal  LoanType = "Personal"
	LoanTypeBusiness  LoanType = "Business"
	LoanTypeHome      LoanType = "Home"
	LoanTypeVehicle   LoanType = "Vehicle"
	LoanTypeEducation LoanType = "Education"
	LoanTypeGold      LoanType = "Gold"
)

// AllLoanTypes lists every valid loan type in display order.
var AllLoanTypes = []LoanType{
	LoanTypePersonal,
	LoanTypeBusiness,
	LoanTypeHome,
	LoanTypeVehicle,
	LoanTypeEducation,
	LoanTypeGold,
}

// ParseLoanType returns the matching loan type and whether the input was valid.
func ParseLoanType(s string) (LoanType, bool) {
	for _, lt := range AllLoanTypes {
		if string(lt) == s {
			return lt, true
		}
	}
	return "", false
}

// LoanOffer is one lender's offer for a loan type. Offers are immutable
// once built; matching only filters and sorts them.
type LoanOffer struct {
	LenderId         string   `json:"lenderId"`
	LenderName       string   `json:"lenderName"`
	LoanType         LoanType `json:"loanType"`
	InterestRate     float64  `json:"interestRate"`
	TenureOptions    []int    `json:"tenureOptions"` // months
	MaxAmount        float64  `json:"maxAmount"`
	PlatformDiscount float64  `json:"platformDiscount"` // percentage
	SpecialOffers    []string `json:"specialOffers"`
	EligibilityScore int      `json:"eligibilityScore"` // minimum composite score
}
