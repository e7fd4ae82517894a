package validation_test

import (
	"errors"
	"testing"

	"taxpro-backend/internal/domain"
	"taxpro-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() map[string]any {
	return map[string]any{
		"firstName":   "Jo",
		"lastName":    "Li",
		"email":       "jo@x.com",
		"serviceType": "individual-itr",
	}
}

func fieldErrors(t *testing.T, err error) domain.FieldErrors {
	t.Helper()
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
	return vErr.Fields
}

func TestValidate(t *testing.T) {
	v := validation.New()

	t.Run("Should accept the minimal valid inquiry", func(t *testing.T) {
		inq, err := v.Validate(validInput())
		require.NoError(t, err)
		assert.Equal(t, "Jo", inq.FirstName)
		assert.Equal(t, "Li", inq.LastName)
		assert.Equal(t, "jo@x.com", inq.Email)
		assert.Equal(t, "individual-itr", inq.ServiceType)
		assert.Empty(t, inq.Phone)
		assert.Empty(t, inq.Message)
	})

	t.Run("Should reject names shorter than two characters", func(t *testing.T) {
		for _, name := range []string{"", "J", " J "} {
			input := validInput()
			input["firstName"] = name
			input["lastName"] = name
			_, err := v.Validate(input)
			fields := fieldErrors(t, err)
			assert.Equal(t, "First name must be at least 2 characters.", fields["firstName"])
			assert.Equal(t, "Last name must be at least 2 characters.", fields["lastName"])
			assert.Len(t, fields, 2)
		}
	})

	t.Run("Should reject malformed email on the email field only", func(t *testing.T) {
		for _, email := range []string{"", "jo", "jo@", "@x.com", "jo x@x.com"} {
			input := validInput()
			input["email"] = email
			_, err := v.Validate(input)
			fields := fieldErrors(t, err)
			assert.Equal(t, domain.FieldErrors{"email": "Enter a valid email address."}, fields, "email %q", email)
		}
	})

	t.Run("Should require a service type but accept unknown codes", func(t *testing.T) {
		input := validInput()
		input["serviceType"] = ""
		_, err := v.Validate(input)
		assert.Equal(t, domain.FieldErrors{"serviceType": "Please select a service."}, fieldErrors(t, err))

		input["serviceType"] = "gst-audit"
		inq, err := v.Validate(input)
		require.NoError(t, err)
		assert.Equal(t, "gst-audit", inq.ServiceType)
	})

	t.Run("Should report every violated field at once", func(t *testing.T) {
		_, err := v.Validate(map[string]any{})
		fields := fieldErrors(t, err)
		assert.ElementsMatch(t, []string{"firstName", "lastName", "email", "serviceType"}, fields.Fields())
	})

	t.Run("Should reject non-text values and ignore unknown keys", func(t *testing.T) {
		input := validInput()
		input["phone"] = 9876543210
		input["utm_source"] = "newsletter"
		_, err := v.Validate(input)
		assert.Equal(t, domain.FieldErrors{"phone": "Phone must be text."}, fieldErrors(t, err))
	})

	t.Run("Should trim surrounding whitespace", func(t *testing.T) {
		input := validInput()
		input["email"] = "  jo@x.com "
		input["message"] = "  hello  "
		inq, err := v.Validate(input)
		require.NoError(t, err)
		assert.Equal(t, "jo@x.com", inq.Email)
		assert.Equal(t, "hello", inq.Message)
	})
}

func TestValidateInquiry(t *testing.T) {
	v := validation.New()

	inq := &domain.ContactInquiry{FirstName: " Jo", LastName: "Li ", Email: "jo@x.com", ServiceType: "company-itr"}
	require.NoError(t, v.ValidateInquiry(inq))
	assert.Equal(t, "Jo", inq.FirstName)
	assert.Equal(t, "Li", inq.LastName)

	err := v.ValidateInquiry(&domain.ContactInquiry{FirstName: "Jo"})
	assert.ElementsMatch(t, []string{"lastName", "email", "serviceType"}, fieldErrors(t, err).Fields())

	assert.Error(t, v.ValidateInquiry(nil))
}
