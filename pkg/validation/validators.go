package validation

import (
	"fmt"
	"reflect"
	"strings"

	"taxpro-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// inquiryFields lists the JSON keys of a contact inquiry in form order
var inquiryFields = []string{"firstName", "lastName", "email", "phone", "serviceType", "message"}

// Validator checks contact inquiries against their schema.
// It keeps no state between runs.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports errors under JSON field names
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonTagName)
	return &Validator{validate: v}
}

func jsonTagName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// DecodeInquiry maps an untyped key-value record onto a ContactInquiry.
// Missing or null keys become empty strings, unknown keys are ignored and
// surrounding whitespace is trimmed.
func DecodeInquiry(raw map[string]any) (*domain.ContactInquiry, domain.FieldErrors) {
	values := make(map[string]string, len(inquiryFields))
	errs := domain.FieldErrors{}

	for _, field := range inquiryFields {
		switch v := raw[field].(type) {
		case nil:
			values[field] = ""
		case string:
			values[field] = strings.TrimSpace(v)
		default:
			errs[field] = fmt.Sprintf("%s must be text.", getFieldLabel(field))
		}
	}

	return &domain.ContactInquiry{
		FirstName:   values["firstName"],
		LastName:    values["lastName"],
		Email:       values["email"],
		Phone:       values["phone"],
		ServiceType: values["serviceType"],
		Message:     values["message"],
	}, errs
}

// Validate decodes and validates a raw record. On failure the error is a
// *domain.ValidationError carrying one message per failing field.
func (v *Validator) Validate(raw map[string]any) (*domain.ContactInquiry, error) {
	inq, decodeErrs := DecodeInquiry(raw)

	fields := domain.FieldErrors{}
	if err := v.validate.Struct(inq); err != nil {
		fields = FormatValidationErrors(err)
	}
	// type errors take precedence over rule errors for the same field
	for f, msg := range decodeErrs {
		fields[f] = msg
	}

	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	return inq, nil
}

// ValidateInquiry validates an already typed inquiry after trimming its fields in place
func (v *Validator) ValidateInquiry(inq *domain.ContactInquiry) error {
	if inq == nil {
		return &domain.ValidationError{Fields: domain.FieldErrors{"_": "Inquiry is required."}}
	}
	inq.FirstName = strings.TrimSpace(inq.FirstName)
	inq.LastName = strings.TrimSpace(inq.LastName)
	inq.Email = strings.TrimSpace(inq.Email)
	inq.Phone = strings.TrimSpace(inq.Phone)
	inq.ServiceType = strings.TrimSpace(inq.ServiceType)
	inq.Message = strings.TrimSpace(inq.Message)

	if err := v.validate.Struct(inq); err != nil {
		return &domain.ValidationError{Fields: FormatValidationErrors(err)}
	}
	return nil
}
