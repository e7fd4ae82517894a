// Package web serves the server-rendered marketing page and its contact form.
package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"taxpro-backend/internal/delivery/http/middleware"
	"taxpro-backend/internal/domain"
	"taxpro-backend/internal/form"
	"taxpro-backend/pkg/security"
	"taxpro-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates for gin's HTML renderer
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

type PageHandler struct {
	contactUC domain.ContactUsecase
	validator *validation.Validator
	audit     *security.SecurityLogger
}

type pageData struct {
	Services  []domain.Service
	Form      *form.ContactForm
	CSRFToken string
}

// NewPageHandler registers GET / and POST /contact. The group must carry the
// CSRF middleware.
func NewPageHandler(group *gin.RouterGroup, contactUC domain.ContactUsecase, validator *validation.Validator, audit *security.SecurityLogger, limiter gin.HandlerFunc) {
	handler := &PageHandler{
		contactUC: contactUC,
		validator: validator,
		audit:     audit,
	}

	group.GET("/", handler.Index)
	group.POST("/contact", limiter, handler.Submit)
}

func (h *PageHandler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, form.NewContactForm(h.contactUC, h.validator))
}

// Submit runs one form submission and re-renders the page with its outcome
func (h *PageHandler) Submit(c *gin.Context) {
	input := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		input[field] = c.PostForm(field)
	}

	f := form.NewContactForm(h.contactUC, h.validator)
	err := f.Submit(c.Request.Context(), input)

	var vErr *domain.ValidationError
	var dErr *domain.DeliveryError
	status := http.StatusOK
	switch {
	case err == nil:
	case errors.As(err, &vErr):
		h.audit.LogValidationFailed(c.Request.Context(), c.ClientIP(), c.GetString(middleware.RequestIDKey), vErr.Fields.Fields())
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrDeliveryUnavailable):
		status = http.StatusServiceUnavailable
	case errors.As(err, &dErr):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	h.render(c, status, f)
}

func (h *PageHandler) render(c *gin.Context, status int, f *form.ContactForm) {
	c.HTML(status, "contact.html", pageData{
		Services:  h.contactUC.Services(),
		Form:      f,
		CSRFToken: c.GetString(middleware.CSRFContextKey),
	})
}
