package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/repository"
	"go-portfolio-backend/internal/repository/memory"
	"go-portfolio-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPortfolioGetItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return 404 when the portfolio was never saved", func(t *testing.T) {
		uc := usecase.NewPortfolioUsecase(memory.NewStore())
		_, err := uc.GetItem(ctx, "1")
		requireAppError(t, err, http.StatusNotFound)
	})

	store := memory.NewStore()
	repo := repository.NewSingleton[domain.Portfolio](store, "portfolio", domain.SectionDocID, false)
	require.NoError(t, repo.Save(ctx, domain.DefaultPortfolio()))
	uc := usecase.NewPortfolioUsecase(store)

	t.Run("Should return the matching item", func(t *testing.T) {
		item, err := uc.GetItem(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, "Web 3", item.Title)
	})

	t.Run("Should return 404 for an unknown id", func(t *testing.T) {
		_, err := uc.GetItem(ctx, "does-not-exist")
		appErr := requireAppError(t, err, http.StatusNotFound)
		assert.Equal(t, "Portfolio item not found", appErr.Message)
	})

	t.Run("Should return 500 when the store fails", func(t *testing.T) {
		failing := new(MockStore)
		failing.On("Get", mock.Anything, "portfolio", domain.SectionDocID).Return(nil, errBoom)
		_, err := usecase.NewPortfolioUsecase(failing).GetItem(ctx, "1")
		requireAppError(t, err, http.StatusInternalServerError)
	})
}
