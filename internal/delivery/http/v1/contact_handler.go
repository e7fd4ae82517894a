package v1

import (
	"errors"
	"net/http"

	"taxpro-backend/internal/delivery/http/middleware"
	"taxpro-backend/internal/delivery/http/response"
	"taxpro-backend/internal/domain"
	"taxpro-backend/pkg/apperror"
	"taxpro-backend/pkg/security"
	"taxpro-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
	validator *validation.Validator
	audit     *security.SecurityLogger
}

// ContactResponse is returned after both notifications were delivered
type ContactResponse struct {
	Title   string `json:"title"`
	Service string `json:"service"`
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, validator *validation.Validator, audit *security.SecurityLogger, limiter gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
		validator: validator,
		audit:     audit,
	}

	public.GET("/services", handler.ListServices)
	public.POST("/contact", limiter, handler.SubmitContact)
}

// ListServices godoc
// @Summary      List Services
// @Description  Service catalog used to populate the contact form's service select.
// @Tags         contact
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Service}
// @Router       /services [get]
func (h *ContactHandler) ListServices(c *gin.Context) {
	response.Success(c, http.StatusOK, "Services retrieved", h.contactUC.Services())
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validate an inquiry and email the owner notification and the user acknowledgement. This is a public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactInquiry  true  "Contact Form Data"
// @Success      200      {object}  response.Response{data=ContactResponse}
// @Failure      400      {object}  response.Response{error=domain.FieldErrors}
// @Failure      429      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	inq, err := h.validator.Validate(raw)
	if err != nil {
		h.validationFailed(c, err)
		return
	}

	result, err := h.contactUC.SubmitInquiry(c.Request.Context(), inq)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.validationFailed(c, err)
		case errors.Is(err, domain.ErrDeliveryUnavailable):
			c.Error(apperror.ServiceUnavailable("Contact service temporarily unavailable", err))
		default:
			c.Error(apperror.BadGateway(domain.FailureNotice.Description, err))
		}
		return
	}

	response.Success(c, http.StatusOK, result.Notice.Description, ContactResponse{
		Title:   result.Notice.Title,
		Service: result.ServiceLabel,
	})
}

func (h *ContactHandler) validationFailed(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		c.Error(apperror.Internal(err))
		return
	}
	h.audit.LogValidationFailed(c.Request.Context(), c.ClientIP(), c.GetString(middleware.RequestIDKey), vErr.Fields.Fields())
	c.Error(apperror.BadRequest("Validation failed").WithDetails(vErr.Fields))
}
