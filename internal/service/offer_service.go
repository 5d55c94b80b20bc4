package service

import (
	"context"
	"math"
	"math/rand"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/pkg/logger"
	"loan-marketplace-be/internal/repository/specification"
	"loan-marketplace-be/internal/repository/unitofwork"
	"loan-marketplace-be/pkg/matching"
)

type IOfferService interface {
	// MatchingOffers shortlists offers for a loan type, cheapest first. It
	// never fails the caller: registry problems fall back to the builtin
	// catalog.
	MatchingOffers(ctx context.Context, loanType entity.LoanType, userScore int) ([]entity.LoanOffer, error)
}

type offerService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewOfferService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IOfferService {
	return &offerService{
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *offerService) MatchingOffers(ctx context.Context, loanType entity.LoanType, userScore int) ([]entity.LoanOffer, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	lenders, err := uow.LenderRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OffersLoanType{LoanType: string(loanType)},
	)
	if err != nil {
		s.log.Warn("OfferService", "lender query failed, serving builtin catalog", map[string]interface{}{
			"error": err.Error(),
		})
		return matching.MatchBuiltin(loanType, userScore), nil
	}

	if len(lenders) == 0 {
		return matching.MatchBuiltin(loanType, userScore), nil
	}

	offers := make([]entity.LoanOffer, 0, len(lenders))
	for _, lender := range lenders {
		offers = append(offers, buildOffer(lender, loanType))
	}

	matched := matching.Match(offers, loanType, userScore)
	if len(matched) == 0 {
		return matching.MatchBuiltin(loanType, userScore), nil
	}
	return matched, nil
}

// buildOffer synthesizes a quote for a registered lender. Real pricing would
// come from a loan products table; the demo randomizes within market range.
func buildOffer(lender *entity.Lender, loanType entity.LoanType) entity.LoanOffer {
	baseRate := 10.0 + rand.Float64()*3
	discount := rand.Float64() * 1.5

	name := lender.CompanyName
	if name == "" {
		name = lender.Name
	}

	return entity.LoanOffer{
		LenderId:         lender.Id.String(),
		LenderName:       name,
		LoanType:         loanType,
		InterestRate:     math.Round(baseRate*100) / 100,
		TenureOptions:    []int{12, 24, 36, 48, 60},
		MaxAmount:        5000000,
		PlatformDiscount: math.Round(discount*100) / 100,
		SpecialOffers:    []string{"Competitive rates", "Fast processing"},
		EligibilityScore: 50,
	}
}
