// Package form holds the state of the contact form component: the entered
// values, inline field errors, the transient notice and the
// submission-in-progress flag. Each instance owns its own state.
package form

import (
	"context"
	"errors"
	"sync/atomic"

	"taxpro-backend/internal/domain"
	"taxpro-backend/pkg/validation"
)

// Fields lists the form inputs in display order
var Fields = []string{"firstName", "lastName", "email", "phone", "serviceType", "message"}

// ErrSubmissionInProgress is returned when Submit is called while a submission is in flight
var ErrSubmissionInProgress = errors.New("submission already in progress")

type ContactForm struct {
	Values map[string]string
	Errors domain.FieldErrors
	Notice *domain.Notice

	contactUC  domain.ContactUsecase
	validator  *validation.Validator
	submitting atomic.Bool
}

// NewContactForm creates a form in its empty default state
func NewContactForm(contactUC domain.ContactUsecase, validator *validation.Validator) *ContactForm {
	f := &ContactForm{
		contactUC: contactUC,
		validator: validator,
	}
	f.Reset()
	return f
}

// EmptyValues returns the default value of every field
func EmptyValues() map[string]string {
	values := make(map[string]string, len(Fields))
	for _, field := range Fields {
		values[field] = ""
	}
	return values
}

// Reset clears values and inline errors. The notice is kept so a success
// confirmation survives the reset that follows it.
func (f *ContactForm) Reset() {
	f.Values = EmptyValues()
	f.Errors = domain.FieldErrors{}
}

// Submitting reports whether a submission is in flight
func (f *ContactForm) Submitting() bool {
	return f.submitting.Load()
}

// SubmitLabel is the text of the submit control
func (f *ContactForm) SubmitLabel() string {
	if f.Submitting() {
		return "Sending..."
	}
	return "Send Message"
}

// Submit validates input and, when valid, hands the inquiry to the submission
// pipeline. Invalid input only sets inline errors. A successful delivery shows
// the success notice and resets the form; a failed one shows the failure
// notice and keeps the entered values.
func (f *ContactForm) Submit(ctx context.Context, input map[string]string) error {
	if !f.submitting.CompareAndSwap(false, true) {
		return ErrSubmissionInProgress
	}
	defer f.submitting.Store(false)

	values := EmptyValues()
	for _, field := range Fields {
		if v, ok := input[field]; ok {
			values[field] = v
		}
	}
	f.Values = values
	f.Notice = nil

	raw := make(map[string]any, len(values))
	for k, v := range values {
		raw[k] = v
	}

	inq, err := f.validator.Validate(raw)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			f.Errors = vErr.Fields
		}
		return err
	}
	f.Errors = domain.FieldErrors{}

	if _, err := f.contactUC.SubmitInquiry(ctx, inq); err != nil {
		notice := domain.FailureNotice
		f.Notice = &notice
		return err
	}

	notice := domain.SuccessNotice
	f.Notice = &notice
	f.Reset()
	return nil
}
