package templates

import (
	"bytes"
	htmpl "html/template"
)

// Transactional email bodies. These mirror the branded markup the front end
// expects; links carry the token and email as query parameters.

const layout = `<div style="font-family: Arial, sans-serif; background-color: #f5f5f5; padding: 20px;">
  <h2 style="color: #4338ca;">{{.Heading}}</h2>
  {{range .Paragraphs}}<p style="font-size: 16px;">{{.}}</p>
  {{end}}{{if .ActionURL}}<a href="{{.ActionURL}}" style="display: inline-block; background-color: #4338ca; color: white; padding: 10px 20px; text-decoration: none; border-radius: 4px; font-size: 16px; margin-top: 20px;">{{.ActionLabel}}</a>
  {{end}}<p style="font-size: 14px; margin-top: 20px;">Best regards,</p>
  <p style="font-size: 14px;">Ogle</p>
</div>`

var tpl = htmpl.Must(htmpl.New("email").Parse(layout))

type emailData struct {
	Heading     string
	Paragraphs  []string
	ActionURL   string
	ActionLabel string
}

func render(d emailData) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// VerifyEmailHTML renders the post-registration verification email.
func VerifyEmailHTML(link string) (string, error) {
	return render(emailData{
		Heading: "Email Verification",
		Paragraphs: []string{
			"Thank you for registering!",
			"Please click on the following link to verify your email:",
		},
		ActionURL:   link,
		ActionLabel: "Verify Email",
	})
}

// PasswordResetHTML renders the password-reset email.
func PasswordResetHTML(link string) (string, error) {
	return render(emailData{
		Heading: "Password Reset",
		Paragraphs: []string{
			"Dear User,",
			"We have received a request to reset your password. Please click on the following link to reset your password:",
		},
		ActionURL:   link,
		ActionLabel: "Reset Password",
	})
}

// NewsletterConfirmationHTML renders the subscription confirmation email.
func NewsletterConfirmationHTML() (string, error) {
	return render(emailData{
		Heading: "Newsletter Subscription Confirmation",
		Paragraphs: []string{
			"Thank you for joining our newsletter! We'll be in touch with some tips and premium content, watch this space!",
		},
	})
}
