package v1

import (
	"net/http"
	"time"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AdminKeyHeader carries a key minted for the current window, so the
// dashboard keeps working after the key it was opened with expires.
const AdminKeyHeader = "X-Admin-Key"

// KeyMinter returns an admin access key that is valid at now.
type KeyMinter func(now time.Time) (string, error)

type AdminHandler struct {
	contentUC domain.ContentUsecase
	mint      KeyMinter
	prefix    string
}

// NewAdminHandler registers the dashboard and editor routes on a group that
// is already behind the admin gate.
func NewAdminHandler(admin *gin.RouterGroup, contentUC domain.ContentUsecase, mint KeyMinter, prefix string) {
	handler := &AdminHandler{contentUC: contentUC, mint: mint, prefix: prefix}

	admin.Use(handler.renewKey)
	admin.GET("", handler.Dashboard)

	api := admin.Group("/api/sections")
	{
		api.GET("", handler.ListSections)
		api.GET("/:section", handler.GetSection)
		api.PUT("/:section", handler.SaveSection)
		api.GET("/:section/stream", handler.StreamSection)
	}
}

func (h *AdminHandler) freshKey() string {
	if h.mint == nil {
		return ""
	}
	key, err := h.mint(time.Now())
	if err != nil {
		logger.Log.Warn("failed to mint admin key", "error", err)
		return ""
	}
	return key
}

func (h *AdminHandler) renewKey(c *gin.Context) {
	if key := h.freshKey(); key != "" {
		c.Header(AdminKeyHeader, key)
	}
	c.Next()
}

// Dashboard renders the editor shell.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Prefix":   h.prefix,
		"Sections": domain.Sections,
		"Key":      h.freshKey(),
	})
}

// ListSections godoc
// @Summary      List editable sections
// @Tags         admin
// @Produce      json
// @Param        key  query     string  false  "Admin access key"
// @Success      200  {object}  response.Response{data=[]domain.SectionInfo}
// @Failure      307  "Redirect to / when the access key is missing or expired"
// @Router       /admin/api/sections [get]
func (h *AdminHandler) ListSections(c *gin.Context) {
	response.Success(c, http.StatusOK, "Sections retrieved", domain.Sections)
}

// GetSection godoc
// @Summary      Get editable section content
// @Tags         admin
// @Produce      json
// @Param        section  path      string  true   "Section name"
// @Param        key      query     string  false  "Admin access key"
// @Success      200      {object}  response.Response{data=domain.Snapshot}
// @Failure      404      {object}  response.Response
// @Router       /admin/api/sections/{section} [get]
func (h *AdminHandler) GetSection(c *gin.Context) {
	snap, err := h.contentUC.Get(c.Request.Context(), domain.Section(c.Param("section")))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Section retrieved", snap)
}

// SaveSection godoc
// @Summary      Save section content
// @Description  Validates and stores a section. The profile is merged; other singletons are overwritten; education, experience and certificates take {"<section>": [...]} and replace the whole collection.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        section       path      string  true   "Section name"
// @Param        key           query     string  false  "Admin access key"
// @Param        X-CSRF-Token  header    string  true   "Value of the csrf_token cookie"
// @Param        content       body      object  true   "Section content"
// @Success      200           {object}  response.Response{data=domain.Snapshot}
// @Failure      400           {object}  response.Response
// @Failure      403           {object}  response.Response
// @Failure      422           {object}  response.Response
// @Failure      500           {object}  response.Response
// @Failure      503           {object}  response.Response
// @Router       /admin/api/sections/{section} [put]
func (h *AdminHandler) SaveSection(c *gin.Context) {
	section := domain.Section(c.Param("section"))
	payload, err := c.GetRawData()
	if err != nil || len(payload) == 0 {
		c.Error(apperror.BadRequest("Request body is required"))
		return
	}

	snap, err := h.contentUC.Save(c.Request.Context(), section, payload)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Changes saved successfully", snap)
}

// StreamSection godoc
// @Summary      Stream editable section content
// @Tags         admin
// @Produce      text/event-stream
// @Param        section  path  string  true   "Section name"
// @Param        key      query string  false  "Admin access key"
// @Success      200
// @Router       /admin/api/sections/{section}/stream [get]
func (h *AdminHandler) StreamSection(c *gin.Context) {
	updates, err := h.contentUC.Subscribe(c.Request.Context(), domain.Section(c.Param("section")))
	if err != nil {
		c.Error(err)
		return
	}
	streamSnapshots(c, updates)
}
