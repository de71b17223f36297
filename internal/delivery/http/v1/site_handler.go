package v1

import (
	"net/http"
	"time"

	"go-portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type SiteHandler struct {
	contentUC   domain.ContentUsecase
	portfolioUC domain.PortfolioUsecase
}

// NewSiteHandler registers the server-rendered public pages.
func NewSiteHandler(r gin.IRoutes, contentUC domain.ContentUsecase, portfolioUC domain.PortfolioUsecase) {
	handler := &SiteHandler{contentUC: contentUC, portfolioUC: portfolioUC}

	r.GET("/", handler.Home)
	r.GET("/portfolio/:id", handler.PortfolioDetail)
}

// Home renders the one-page site. Sections that cannot be read fall back to
// their placeholder content inside the usecase, so this only fails when the
// usecase itself does.
func (h *SiteHandler) Home(c *gin.Context) {
	site, err := h.contentUC.SiteContent(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.HTML(http.StatusOK, "site.html", gin.H{
		"Site":                 site,
		"Categories":           site.Portfolio.Categories(),
		"PortfolioPlaceholder": site.Placeholder[domain.SectionPortfolio],
		"Year":                 time.Now().Year(),
	})
}

// PortfolioDetail renders one portfolio item with its image slider.
func (h *SiteHandler) PortfolioDetail(c *gin.Context) {
	item, err := h.portfolioUC.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		if code, msg := statusOf(err); code == http.StatusNotFound {
			renderNotFound(c, msg)
			return
		}
		c.Error(err)
		return
	}

	images := item.Images
	if len(images) == 0 && item.ImageURL != "" {
		images = []string{item.ImageURL}
	}
	c.HTML(http.StatusOK, "portfolio_detail.html", gin.H{
		"Item":   item,
		"Images": images,
	})
}

func renderNotFound(c *gin.Context, message string) {
	c.HTML(http.StatusNotFound, "not_found.html", gin.H{"Message": message})
}
