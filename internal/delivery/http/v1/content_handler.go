package v1

import (
	"net/http"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentUC domain.ContentUsecase
}

// NewContentHandler registers the public, read-only section routes
func NewContentHandler(public *gin.RouterGroup, contentUC domain.ContentUsecase) {
	handler := &ContentHandler{contentUC: contentUC}

	sections := public.Group("/sections")
	{
		sections.GET("/:section", handler.GetSection)
		sections.GET("/:section/stream", handler.StreamSection)
	}
}

// GetSection godoc
// @Summary      Get section content
// @Description  Current content of a section. Sections that were never saved return their placeholder content with placeholder=true.
// @Tags         content
// @Produce      json
// @Param        section  path      string  true  "Section name"  Enums(profile, facts, skills, services, testimonials, portfolio, education, experience, certificates)
// @Success      200      {object}  response.Response{data=domain.Snapshot}
// @Failure      404      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/sections/{section} [get]
func (h *ContentHandler) GetSection(c *gin.Context) {
	snap, err := h.contentUC.Get(c.Request.Context(), domain.Section(c.Param("section")))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Section retrieved", snap)
}

// StreamSection godoc
// @Summary      Stream section changes
// @Description  Server-sent events: the current content first, then a new event after every change.
// @Tags         content
// @Produce      text/event-stream
// @Param        section  path  string  true  "Section name"
// @Success      200
// @Failure      404  {object}  response.Response
// @Router       /api/sections/{section}/stream [get]
func (h *ContentHandler) StreamSection(c *gin.Context) {
	updates, err := h.contentUC.Subscribe(c.Request.Context(), domain.Section(c.Param("section")))
	if err != nil {
		c.Error(err)
		return
	}
	streamSnapshots(c, updates)
}
