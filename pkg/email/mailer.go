package email

import (
	"context"
	"net/url"
	"strings"

	"github.com/jpmhone/folio/pkg/validator"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo          string `json:"send_to"`                    // Email address of the recipient
	Subject         string `json:"subject"`                    // Subject of the email
	BodyHTML        string `json:"body_html"`                  // HTML body of the email
	Tag             string `json:"tag,omitempty"`              // Optional
	ListUnsubscribe string `json:"list_unsubscribe,omitempty"` // Optional one-click unsubscribe URL (RFC 2369)
}

func validAddress(s string) bool {
	return validator.ValidEmail("", s).Check()
}

// Validate checks required fields before any provider is contacted.
func (p SendEmailParams) Validate() error {
	if strings.TrimSpace(p.SendTo) == "" {
		return wrapParams("SendTo is required")
	}
	if !validAddress(p.SendTo) {
		return wrapParams("SendTo must be a valid email address")
	}
	if strings.TrimSpace(p.Subject) == "" {
		return wrapParams("Subject is required")
	}
	if strings.TrimSpace(p.BodyHTML) == "" {
		return wrapParams("BodyHTML is required")
	}
	if p.ListUnsubscribe != "" {
		u, err := url.Parse(p.ListUnsubscribe)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return wrapParams("ListUnsubscribe must be an absolute URL")
		}
	}
	return nil
}

// listUnsubscribeHeaders returns the RFC 2369/8058 header pair for params.
func listUnsubscribeHeaders(p SendEmailParams) map[string]string {
	if p.ListUnsubscribe == "" {
		return nil
	}
	return map[string]string{
		"List-Unsubscribe":      "<" + p.ListUnsubscribe + ">",
		"List-Unsubscribe-Post": "List-Unsubscribe=One-Click",
	}
}
