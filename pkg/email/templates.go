package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
)

// Template IDs understood by the SMTP notifier
const (
	TemplateOwner = "owner"
	TemplateUser  = "user"
)

const ownerEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Inquiry</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1e3a8a; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #1e3a8a; margin-top: 10px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>New Inquiry: {{.service}}</h1></div>
        <div class="content">
            <div class="field"><div class="label">Name:</div><div>{{.user_name}}</div></div>
            <div class="field"><div class="label">Email:</div><div>{{.user_email}}</div></div>
            <div class="field"><div class="label">Phone:</div><div>{{.phone}}</div></div>
            <div class="field"><div class="label">Service:</div><div>{{.service}}</div></div>
            <div class="field"><div class="label">Message:</div><div class="message-box">{{.message}}</div></div>
        </div>
    </div>
</body>
</html>`

const userEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>We received your inquiry</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <p>Dear {{.user_name}},</p>
    <p>Thank you for contacting TaxPro Services about <strong>{{.service}}</strong>.
    One of our experts will get back to you within 24 hours.</p>
    <p>Regards,<br>TaxPro Services</p>
</body>
</html>`

type mailTemplate struct {
	subject *texttemplate.Template
	body    *template.Template
}

var mailTemplates = map[string]mailTemplate{
	TemplateOwner: {
		subject: texttemplate.Must(texttemplate.New(TemplateOwner).Parse("New inquiry: {{.service}} from {{.user_name}}")),
		body:    template.Must(template.New(TemplateOwner).Parse(ownerEmailTemplate)),
	},
	TemplateUser: {
		subject: texttemplate.Must(texttemplate.New(TemplateUser).Parse("We received your inquiry about {{.service}}")),
		body:    template.Must(template.New(TemplateUser).Parse(userEmailTemplate)),
	},
}

// render returns the subject line and HTML body for a template
func render(templateID string, params map[string]string) (string, string, error) {
	tmpl, ok := mailTemplates[templateID]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", templateID)
	}

	var subject, body bytes.Buffer
	if err := tmpl.subject.Execute(&subject, params); err != nil {
		return "", "", fmt.Errorf("failed to execute subject template: %w", err)
	}
	if err := tmpl.body.Execute(&body, params); err != nil {
		return "", "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return headerSafe(subject.String()), body.String(), nil
}

// headerSafe strips line breaks so user input cannot inject headers
func headerSafe(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
