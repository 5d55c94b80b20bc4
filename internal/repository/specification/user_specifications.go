package specification

import "gorm.io/gorm"

// ByPhoneOrPan matches the borrower identity key. Empty strings never match
// anything so a missing identifier cannot collide with NULL columns.
type ByPhoneOrPan struct {
	Phone string
	Pan   string
}

func (s ByPhoneOrPan) Apply(db *gorm.DB) *gorm.DB {
	switch {
	case s.Phone != "" && s.Pan != "":
		return db.Where("phone = ? OR pan = ?", s.Phone, s.Pan)
	case s.Phone != "":
		return db.Where("phone = ?", s.Phone)
	case s.Pan != "":
		return db.Where("pan = ?", s.Pan)
	default:
		return db.Where("1 = 0")
	}
}

// ByEmail filters lenders by login email
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ActiveOnly keeps active lender accounts
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// OffersLoanType matches lenders whose loan_types JSON array contains the
// given type.
type OffersLoanType struct {
	LoanType string
}

func (s OffersLoanType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("loan_types @> ?", `["`+s.LoanType+`"]`)
}

// ByStatus filters applications by status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByDocumentType filters KYC documents by type
type ByDocumentType struct {
	Type string
}

func (s ByDocumentType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

// ConversationBetween scopes messages to one (lender, user) pair
type ConversationBetween struct {
	LenderId string
	UserId   string
}

func (s ConversationBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lender_id = ? AND user_id = ?", s.LenderId, s.UserId)
}
