package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taxpro-backend/config"
)

const emailJSSendPath = "/api/v1.0/email/send"

// EmailJSClient delivers template parameters through the EmailJS REST API
type EmailJSClient struct {
	baseURL    string
	serviceID  string
	publicKey  string
	privateKey string
	client     *http.Client
}

// emailJSRequest is the body accepted by the EmailJS send endpoint
type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewEmailJSClient creates an EmailJS client from configuration
func NewEmailJSClient(cfg *config.Config) *EmailJSClient {
	return &EmailJSClient{
		baseURL:    cfg.EmailJSBaseURL,
		serviceID:  cfg.EmailJSServiceID,
		publicKey:  cfg.EmailJSPublicKey,
		privateKey: cfg.EmailJSPrivateKey,
		client: &http.Client{
			Timeout: defaultTimeout(cfg.EmailTimeout),
		},
	}
}

// Send posts one template to EmailJS. Any transport failure or non-2xx
// response is returned as an error.
func (c *EmailJSClient) Send(ctx context.Context, templateID string, params map[string]string) error {
	payload := emailJSRequest{
		ServiceID:      c.serviceID,
		TemplateID:     templateID,
		UserID:         c.publicKey,
		AccessToken:    c.privateKey,
		TemplateParams: params,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+emailJSSendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send emailjs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &RemoteError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// IsConfigured checks that the identifiers EmailJS requires are present
func (c *EmailJSClient) IsConfigured() bool {
	return c.baseURL != "" && c.serviceID != "" && c.publicKey != ""
}

// RemoteError is returned when the provider rejects a request
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("email provider responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("email provider responded with status %d: %s", e.StatusCode, e.Body)
}

func defaultTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 10 * time.Second
	}
	return d
}
