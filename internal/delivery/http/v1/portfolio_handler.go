package v1

import (
	"net/http"

	"go-portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	portfolioUC domain.PortfolioUsecase
}

// NewPortfolioHandler registers the portfolio detail API.
func NewPortfolioHandler(public *gin.RouterGroup, portfolioUC domain.PortfolioUsecase) {
	handler := &PortfolioHandler{portfolioUC: portfolioUC}

	public.GET("/portfolio/:id", handler.GetItem)
}

// GetItem godoc
// @Summary      Get portfolio item
// @Description  Returns the portfolio item with the given id as a bare JSON object.
// @Tags         portfolio
// @Produce      json
// @Param        id   path      string  true  "Portfolio item id"
// @Success      200  {object}  domain.PortfolioItem
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/portfolio/{id} [get]
func (h *PortfolioHandler) GetItem(c *gin.Context) {
	item, err := h.portfolioUC.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}
