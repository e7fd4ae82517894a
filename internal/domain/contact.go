package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	PhoneNotProvided   = "Not provided"
	MessageNotProvided = "No additional message provided"
)

// ContactInquiry represents a single contact form submission.
// It only lives for the duration of one submission.
type ContactInquiry struct {
	FirstName   string `json:"firstName" validate:"required,min=2"`
	LastName    string `json:"lastName" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone,omitempty"`
	ServiceType string `json:"serviceType" validate:"required"`
	Message     string `json:"message,omitempty"`
}

// FullName joins first and last name the way both notifications address the inquirer
func (i *ContactInquiry) FullName() string {
	return i.FirstName + " " + i.LastName
}

// OwnerNotification is the template payload for the business owner alert
type OwnerNotification struct {
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Phone     string `json:"phone"`
	Service   string `json:"service"`
	Message   string `json:"message"`
}

// NewOwnerNotification builds the owner alert, substituting placeholders for optional fields
func NewOwnerNotification(inq *ContactInquiry, serviceLabel string) OwnerNotification {
	phone := inq.Phone
	if phone == "" {
		phone = PhoneNotProvided
	}
	message := inq.Message
	if message == "" {
		message = MessageNotProvided
	}
	return OwnerNotification{
		UserName:  inq.FullName(),
		UserEmail: inq.Email,
		Phone:     phone,
		Service:   serviceLabel,
		Message:   message,
	}
}

// Params flattens the payload into template parameters
func (n OwnerNotification) Params() map[string]string {
	return map[string]string{
		"user_name":  n.UserName,
		"user_email": n.UserEmail,
		"phone":      n.Phone,
		"service":    n.Service,
		"message":    n.Message,
	}
}

// UserAcknowledgement is the template payload for the auto-reply sent to the inquirer
type UserAcknowledgement struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Service  string `json:"service"`
}

func NewUserAcknowledgement(inq *ContactInquiry, serviceLabel string) UserAcknowledgement {
	return UserAcknowledgement{
		UserName: inq.FullName(),
		Email:    inq.Email,
		Service:  serviceLabel,
	}
}

func (a UserAcknowledgement) Params() map[string]string {
	return map[string]string{
		"user_name": a.UserName,
		"email":     a.Email,
		"service":   a.Service,
	}
}

// Notice is the transient confirmation shown after a submission attempt
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}

var (
	SuccessNotice = Notice{
		Title:       "Message Sent!",
		Description: "Thank you for your inquiry! We will get back to you within 24 hours.",
	}
	FailureNotice = Notice{
		Title:       "Error",
		Description: "Failed to send message. Please try again.",
		Variant:     "destructive",
	}
)

// SubmissionResult is returned when both notifications were delivered
type SubmissionResult struct {
	ServiceLabel string `json:"service"`
	Notice       Notice `json:"notice"`
}

// FieldErrors maps a form field name to its inline error message
type FieldErrors map[string]string

// Fields returns the failing field names in stable order
func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// ValidationError means one or more field constraints were not met
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields.Fields(), ", ")
}

// DeliveryStep names one of the two sequential outbound calls
type DeliveryStep string

const (
	StepOwnerNotification   DeliveryStep = "owner_notification"
	StepUserAcknowledgement DeliveryStep = "user_acknowledgement"
)

// DeliveryError means a remote delivery call failed
type DeliveryError struct {
	Step DeliveryStep
	Err  error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver %s: %v", e.Step, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// ErrDeliveryUnavailable is returned when no email provider is configured
var ErrDeliveryUnavailable = errors.New("email delivery is not configured")

// Notifier delivers a flat set of template parameters through a remote email provider
type Notifier interface {
	Send(ctx context.Context, templateID string, params map[string]string) error
	IsConfigured() bool
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SubmitInquiry validates the inquiry and delivers the owner notification, then the user acknowledgement
	SubmitInquiry(ctx context.Context, inq *ContactInquiry) (*SubmissionResult, error)
	// Services lists the offered service categories
	Services() []Service
}
