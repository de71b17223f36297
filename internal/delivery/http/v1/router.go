package v1

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"go-portfolio-backend/config"
	"go-portfolio-backend/internal/delivery/http/middleware"
	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/delivery/http/web"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/accesskey"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/security"
	"go-portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContentUC   domain.ContentUsecase
	PortfolioUC domain.PortfolioUsecase
	ContactUC   domain.ContactUsecase
	HealthUC    usecase.HealthUsecase
	Gate        *accesskey.Gate
	MintKey     KeyMinter
	AccessLog   *security.AccessLogger
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.SetHTMLTemplate(template.Must(web.Templates()))

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins, deps.Gate.Prefix)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Gate.Prefix))
	r.Use(middleware.AdminGate(deps.Gate, deps.AccessLog))
	r.Use(middleware.ErrorHandler())

	r.GET("/health", func(c *gin.Context) {
		status, ok := deps.HealthUC.Check(c.Request.Context())
		if !ok {
			response.Success(c, http.StatusOK, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public pages and API
	NewSiteHandler(r, deps.ContentUC, deps.PortfolioUC)
	api := r.Group("/api")
	{
		NewContentHandler(api, deps.ContentUC)
		NewPortfolioHandler(api, deps.PortfolioUC)
		NewContactHandler(api, deps.ContactUC, deps.AccessLog)
	}

	// Admin area, already behind the gate
	admin := r.Group(deps.Gate.Prefix)
	admin.Use(middleware.CSRFMiddleware(deps.Config.GinMode == gin.ReleaseMode))
	NewAdminHandler(admin, deps.ContentUC, deps.MintKey, deps.Gate.Prefix)

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			response.Error(c, http.StatusNotFound, "Resource not found", nil)
			return
		}
		renderNotFound(c, "Page not found")
	})

	return r
}

// useJSONFieldNames makes gin's binding report errors by JSON field name.
func useJSONFieldNames() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(validation.JSONFieldName)
		validation.RegisterValidators(v)
	}
}

// statusOf returns the HTTP status and client message carried by err.
func statusOf(err error) (int, string) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Message
	}
	return http.StatusInternalServerError, "Internal Server Error"
}
