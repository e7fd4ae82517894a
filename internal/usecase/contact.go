package usecase

import (
	"context"
	"fmt"

	"taxpro-backend/internal/domain"
	"taxpro-backend/pkg/logger"
	"taxpro-backend/pkg/security"
	"taxpro-backend/pkg/validation"
)

// ContactTemplates holds the provider template IDs for the two notifications
type ContactTemplates struct {
	Owner string
	User  string
}

type contactUsecase struct {
	notifier  domain.Notifier
	templates ContactTemplates
	validator *validation.Validator
	audit     *security.SecurityLogger
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(notifier domain.Notifier, templates ContactTemplates, validator *validation.Validator, audit *security.SecurityLogger) domain.ContactUsecase {
	return &contactUsecase{
		notifier:  notifier,
		templates: templates,
		validator: validator,
		audit:     audit,
	}
}

// deliveryStep is one of the two outbound calls of a submission
type deliveryStep struct {
	step       domain.DeliveryStep
	templateID string
	params     map[string]string
}

// SubmitInquiry validates the inquiry, then delivers the owner notification
// followed by the user acknowledgement. The acknowledgement is only attempted
// once the owner notification succeeded; a failure of either step is reported
// as a *domain.DeliveryError and nothing is retried.
func (uc *contactUsecase) SubmitInquiry(ctx context.Context, inq *domain.ContactInquiry) (*domain.SubmissionResult, error) {
	if err := uc.validator.ValidateInquiry(inq); err != nil {
		return nil, err
	}

	if !uc.notifier.IsConfigured() || uc.templates.Owner == "" || uc.templates.User == "" {
		return nil, domain.ErrDeliveryUnavailable
	}

	serviceLabel := domain.ServiceLabel(inq.ServiceType)
	if !domain.IsKnownServiceType(inq.ServiceType) {
		logger.Log.Debug("contact: unlisted service type", "service_type", inq.ServiceType)
	}
	steps := []deliveryStep{
		{
			step:       domain.StepOwnerNotification,
			templateID: uc.templates.Owner,
			params:     domain.NewOwnerNotification(inq, serviceLabel).Params(),
		},
		{
			step:       domain.StepUserAcknowledgement,
			templateID: uc.templates.User,
			params:     domain.NewUserAcknowledgement(inq, serviceLabel).Params(),
		},
	}

	requestID := domain.StringFromContext(ctx, domain.KeyRequestID)
	if err := uc.deliver(ctx, steps); err != nil {
		logger.Log.Error("contact: delivery failed",
			"step", string(err.Step),
			"email", security.MaskEmail(inq.Email),
			"request_id", requestID,
			"error", err.Err,
		)
		uc.audit.LogDeliveryFailed(ctx, inq.Email, string(err.Step), requestID, err.Err)
		return nil, err
	}

	uc.audit.LogInquiryDelivered(ctx, inq.Email, serviceLabel, requestID)
	return &domain.SubmissionResult{
		ServiceLabel: serviceLabel,
		Notice:       domain.SuccessNotice,
	}, nil
}

// deliver runs the steps strictly in order and stops at the first failure
func (uc *contactUsecase) deliver(ctx context.Context, steps []deliveryStep) *domain.DeliveryError {
	for _, s := range steps {
		if err := uc.send(ctx, s); err != nil {
			return &domain.DeliveryError{Step: s.step, Err: err}
		}
	}
	return nil
}

// send isolates a single provider call so a panicking notifier surfaces as a delivery error
func (uc *contactUsecase) send(ctx context.Context, s deliveryStep) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panic: %v", r)
		}
	}()
	return uc.notifier.Send(ctx, s.templateID, s.params)
}

// Services lists the offered service categories
func (uc *contactUsecase) Services() []domain.Service {
	return domain.ServiceCatalog()
}
