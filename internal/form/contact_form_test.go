package form_test

import (
	"context"
	"errors"
	"testing"

	"taxpro-backend/internal/domain"
	"taxpro-backend/internal/form"
	"taxpro-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContactUsecase struct {
	mock.Mock
}

func (m *MockContactUsecase) SubmitInquiry(ctx context.Context, inq *domain.ContactInquiry) (*domain.SubmissionResult, error) {
	args := m.Called(ctx, inq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmissionResult), args.Error(1)
}

func (m *MockContactUsecase) Services() []domain.Service {
	return domain.ServiceCatalog()
}

func filledInput() map[string]string {
	return map[string]string{
		"firstName":   "Jo",
		"lastName":    "Li",
		"email":       "jo@x.com",
		"phone":       "9876543210",
		"serviceType": "nri-services",
		"message":     "Need help with DTAA",
	}
}

func TestContactForm_Submit(t *testing.T) {
	t.Run("Should reset the form and show success after delivery", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SubmitInquiry", mock.Anything, mock.MatchedBy(func(inq *domain.ContactInquiry) bool {
			return inq.ServiceType == "nri-services" && inq.Phone == "9876543210"
		})).Return(&domain.SubmissionResult{ServiceLabel: "NRI/Foreign Client Services", Notice: domain.SuccessNotice}, nil)

		f := form.NewContactForm(uc, validation.New())
		require.NoError(t, f.Submit(context.Background(), filledInput()))

		assert.Equal(t, form.EmptyValues(), f.Values)
		assert.Empty(t, f.Errors)
		require.NotNil(t, f.Notice)
		assert.Equal(t, "Message Sent!", f.Notice.Title)
		assert.False(t, f.Submitting())
		uc.AssertExpectations(t)
	})

	t.Run("Should keep entered values and show failure when delivery fails", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SubmitInquiry", mock.Anything, mock.Anything).Return(nil, &domain.DeliveryError{
			Step: domain.StepOwnerNotification,
			Err:  errors.New("timeout"),
		})

		f := form.NewContactForm(uc, validation.New())
		err := f.Submit(context.Background(), filledInput())

		var dErr *domain.DeliveryError
		assert.True(t, errors.As(err, &dErr))
		assert.Equal(t, filledInput(), f.Values)
		require.NotNil(t, f.Notice)
		assert.Equal(t, domain.FailureNotice, *f.Notice)
		assert.Equal(t, "Send Message", f.SubmitLabel())
	})

	t.Run("Should show the same failure when only the acknowledgement fails", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SubmitInquiry", mock.Anything, mock.Anything).Return(nil, &domain.DeliveryError{
			Step: domain.StepUserAcknowledgement,
			Err:  errors.New("status 400"),
		})

		f := form.NewContactForm(uc, validation.New())
		assert.Error(t, f.Submit(context.Background(), filledInput()))
		assert.Equal(t, domain.FailureNotice, *f.Notice)
		assert.Equal(t, filledInput(), f.Values)
	})

	t.Run("Should set inline errors and never submit invalid input", func(t *testing.T) {
		uc := new(MockContactUsecase)
		input := filledInput()
		input["lastName"] = "L"
		input["email"] = "not-an-email"

		f := form.NewContactForm(uc, validation.New())
		err := f.Submit(context.Background(), input)

		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "Last name must be at least 2 characters.", f.Errors["lastName"])
		assert.Equal(t, "Enter a valid email address.", f.Errors["email"])
		assert.Nil(t, f.Notice)
		assert.Equal(t, input, f.Values)
		uc.AssertNotCalled(t, "SubmitInquiry", mock.Anything, mock.Anything)
	})

	t.Run("Should clear stale errors on a later valid submission", func(t *testing.T) {
		uc := new(MockContactUsecase)
		uc.On("SubmitInquiry", mock.Anything, mock.Anything).Return(&domain.SubmissionResult{Notice: domain.SuccessNotice}, nil)

		f := form.NewContactForm(uc, validation.New())
		assert.Error(t, f.Submit(context.Background(), map[string]string{}))
		assert.NotEmpty(t, f.Errors)

		require.NoError(t, f.Submit(context.Background(), filledInput()))
		assert.Empty(t, f.Errors)
	})

	t.Run("Should reject re-entry while a submission is in flight", func(t *testing.T) {
		release := make(chan struct{})
		entered := make(chan struct{})
		uc := new(MockContactUsecase)
		uc.On("SubmitInquiry", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).Return(&domain.SubmissionResult{Notice: domain.SuccessNotice}, nil).Once()

		f := form.NewContactForm(uc, validation.New())
		done := make(chan error, 1)
		go func() { done <- f.Submit(context.Background(), filledInput()) }()

		<-entered
		assert.True(t, f.Submitting())
		assert.Equal(t, "Sending...", f.SubmitLabel())
		assert.ErrorIs(t, f.Submit(context.Background(), filledInput()), form.ErrSubmissionInProgress)

		close(release)
		require.NoError(t, <-done)
		assert.False(t, f.Submitting())
		uc.AssertNumberOfCalls(t, "SubmitInquiry", 1)
	})
}
