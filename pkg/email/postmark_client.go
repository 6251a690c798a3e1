package email

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mrz1836/postmark"
)

// PostmarkAPI is the part of *postmark.Client the sender calls.
type PostmarkAPI interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

type postmarkSender struct {
	api PostmarkAPI
	cfg Config
}

// NewPostmarkClient checks both Postmark tokens and the sender addresses
// up front so a misconfigured deployment fails at startup.
func NewPostmarkClient(cfg Config) (EmailSender, error) {
	switch {
	case cfg.PostmarkServerToken == "":
		return nil, wrapConfig("postmark server token is empty")
	case cfg.PostmarkAccountToken == "":
		return nil, wrapConfig("postmark account token is empty")
	}
	if err := cfg.validateSender(); err != nil {
		return nil, err
	}
	return NewPostmarkSenderWithClient(postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken), cfg), nil
}

// NewPostmarkSenderWithClient skips token checks and sends through api.
func NewPostmarkSenderWithClient(api PostmarkAPI, cfg Config) EmailSender {
	return &postmarkSender{api: api, cfg: cfg}
}

// SendEmail replies go to the support address. Opens and HTML links are
// tracked.
func (s *postmarkSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	resp, err := s.api.SendEmail(ctx, postmark.Email{
		From:       s.cfg.from(),
		ReplyTo:    s.cfg.SupportEmail,
		To:         params.SendTo,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		Headers:    postmarkHeaders(params),
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	switch {
	case err != nil:
		return errors.Join(ErrSend, err)
	case resp.ErrorCode != 0:
		return fmt.Errorf("%w: postmark code %d: %s", ErrSend, resp.ErrorCode, resp.Message)
	}
	return nil
}

// postmarkHeaders orders headers by name so payloads are deterministic.
func postmarkHeaders(params SendEmailParams) []postmark.Header {
	h := listUnsubscribeHeaders(params)
	var out []postmark.Header
	for name, value := range h {
		out = append(out, postmark.Header{Name: name, Value: value})
	}
	slices.SortFunc(out, func(a, b postmark.Header) int { return strings.Compare(a.Name, b.Name) })
	return out
}
