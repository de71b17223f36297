package usecase

import (
	"context"
	"errors"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/repository"
	"go-portfolio-backend/pkg/apperror"
)

type portfolioUsecase struct {
	repo *repository.Singleton[domain.Portfolio]
}

// NewPortfolioUsecase serves single portfolio items from the portfolio document
func NewPortfolioUsecase(store repository.Store) domain.PortfolioUsecase {
	info, _ := domain.LookupSection(string(domain.SectionPortfolio))
	return &portfolioUsecase{
		repo: repository.NewSingleton[domain.Portfolio](store, info.Collection, info.DocID, info.Merge),
	}
}

// GetItem reads only stored content; placeholder items are never served here.
func (uc *portfolioUsecase) GetItem(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	portfolio, err := uc.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Portfolio data not found")
		}
		return nil, apperror.Internal(err)
	}

	item, ok := portfolio.FindItem(id)
	if !ok {
		return nil, apperror.NotFound("Portfolio item not found")
	}
	return item, nil
}
