package email

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taxpro-backend/config"

	"github.com/emersion/go-sasl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emailJSConfig(baseURL string) *config.Config {
	return &config.Config{
		EmailJSBaseURL:    baseURL,
		EmailJSServiceID:  "service_test",
		EmailJSPublicKey:  "public_test",
		EmailJSPrivateKey: "private_test",
		EmailTimeout:      2 * time.Second,
	}
}

func TestEmailJSClient_Send(t *testing.T) {
	t.Run("Should post the template with service id and public key", func(t *testing.T) {
		var got emailJSRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1.0/email/send", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = io.WriteString(w, "OK")
		}))
		defer srv.Close()

		client := NewEmailJSClient(emailJSConfig(srv.URL))
		require.True(t, client.IsConfigured())

		err := client.Send(context.Background(), "template_owner", map[string]string{"user_name": "Jo Li"})
		require.NoError(t, err)
		assert.Equal(t, "service_test", got.ServiceID)
		assert.Equal(t, "template_owner", got.TemplateID)
		assert.Equal(t, "public_test", got.UserID)
		assert.Equal(t, "private_test", got.AccessToken)
		assert.Equal(t, "Jo Li", got.TemplateParams["user_name"])
	})

	t.Run("Should surface remote rejections", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, "The template ID is invalid\n")
		}))
		defer srv.Close()

		err := NewEmailJSClient(emailJSConfig(srv.URL)).Send(context.Background(), "nope", nil)
		var remoteErr *RemoteError
		require.True(t, errors.As(err, &remoteErr))
		assert.Equal(t, http.StatusBadRequest, remoteErr.StatusCode)
		assert.Equal(t, "The template ID is invalid", remoteErr.Body)
	})

	t.Run("Should fail on transport errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		err := NewEmailJSClient(emailJSConfig(srv.URL)).Send(context.Background(), "template_owner", nil)
		assert.Error(t, err)
	})

	t.Run("Should report missing identifiers as not configured", func(t *testing.T) {
		cfg := emailJSConfig("https://api.emailjs.com")
		cfg.EmailJSServiceID = ""
		assert.False(t, NewEmailJSClient(cfg).IsConfigured())
	})
}

type capturedMail struct {
	addr string
	from string
	to   []string
	body string
}

func newTestSMTPNotifier(captured *capturedMail, sendErr error) *SMTPNotifier {
	n := NewSMTPNotifier(&config.Config{
		SMTPHost:       "smtp.example.com",
		SMTPPort:       "587",
		SMTPUsername:   "mailer@taxproservices.in",
		SMTPPassword:   "secret",
		SMTPFromEmail:  "noreply@taxproservices.in",
		ContactEmailTo: "owner@taxproservices.in",
	})
	n.sendMail = func(addr string, a sasl.Client, from string, to []string, r io.Reader) error {
		b, _ := io.ReadAll(r)
		*captured = capturedMail{addr: addr, from: from, to: to, body: string(b)}
		return sendErr
	}
	return n
}

func TestSMTPNotifier_Send(t *testing.T) {
	ownerParams := map[string]string{
		"user_name":  "Jo Li",
		"user_email": "jo@x.com",
		"phone":      "Not provided",
		"service":    "Individual ITR Filing",
		"message":    "<script>alert(1)</script>",
	}

	t.Run("Should mail the owner template to the contact inbox", func(t *testing.T) {
		var got capturedMail
		n := newTestSMTPNotifier(&got, nil)
		require.True(t, n.IsConfigured())

		require.NoError(t, n.Send(context.Background(), TemplateOwner, ownerParams))
		assert.Equal(t, "smtp.example.com:587", got.addr)
		assert.Equal(t, []string{"owner@taxproservices.in"}, got.to)
		assert.Contains(t, got.body, "Reply-To: jo@x.com\r\n")
		assert.Contains(t, got.body, "Subject: New inquiry: Individual ITR Filing from Jo Li\r\n")
		assert.Contains(t, got.body, "&lt;script&gt;")
	})

	t.Run("Should mail the acknowledgement to the inquirer", func(t *testing.T) {
		var got capturedMail
		n := newTestSMTPNotifier(&got, nil)

		err := n.Send(context.Background(), TemplateUser, map[string]string{
			"user_name": "Jo Li", "email": "jo@x.com", "service": "Tax Consultation",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"jo@x.com"}, got.to)
		assert.NotContains(t, got.body, "Reply-To")
	})

	t.Run("Should strip line breaks from the subject", func(t *testing.T) {
		var got capturedMail
		n := newTestSMTPNotifier(&got, nil)
		params := map[string]string{"user_name": "Jo\r\nBcc: victim@x.com", "user_email": "jo@x.com", "service": "x"}
		require.NoError(t, n.Send(context.Background(), TemplateOwner, params))
		headers, _, found := strings.Cut(got.body, "\r\n\r\n")
		require.True(t, found)
		assert.NotContains(t, headers, "\r\nBcc:")
		assert.Contains(t, headers, "Subject: New inquiry: x from Jo Bcc: victim@x.com\r\n")
	})

	t.Run("Should return transport and template errors", func(t *testing.T) {
		var got capturedMail
		n := newTestSMTPNotifier(&got, errors.New("421 service not available"))
		assert.ErrorContains(t, n.Send(context.Background(), TemplateOwner, ownerParams), "421")
		assert.ErrorContains(t, n.Send(context.Background(), "unknown", ownerParams), "unknown email template")
	})

	t.Run("Should not send once the context is done", func(t *testing.T) {
		var got capturedMail
		n := newTestSMTPNotifier(&got, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, n.Send(ctx, TemplateOwner, ownerParams), context.Canceled)
		assert.Empty(t, got.addr)
	})
}
