package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the subset of *ses.Client used by the SES sender.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

type sesSender struct {
	client SESAPI
	config Config
}

// NewSESSender loads AWS credentials from the default chain and returns an
// Amazon SES backed sender.
func NewSESSender(ctx context.Context, cfg Config) (EmailSender, error) {
	if cfg.SESRegion == "" {
		return nil, fmt.Errorf("%w: SESRegion is required", ErrInvalidConfig)
	}
	if err := cfg.validateSender(); err != nil {
		return nil, err
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.SESRegion))
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return NewSESSenderWithClient(ses.NewFromConfig(awsCfg), cfg), nil
}

// NewSESSenderWithClient wraps an existing client. Useful for testing.
func NewSESSenderWithClient(client SESAPI, cfg Config) EmailSender {
	return &sesSender{client: client, config: cfg}
}

// SendEmail uses the simple SendEmail API unless custom headers are needed,
// in which case the MIME message is assembled and sent raw.
func (s *sesSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if headers := listUnsubscribeHeaders(params); len(headers) > 0 {
		raw := buildRawMessage(s.config, params, headers)
		if _, err := s.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
			Source:       aws.String(s.config.from()),
			Destinations: []string{params.SendTo},
			RawMessage:   &types.RawMessage{Data: raw},
			Tags:         sesTags(params),
		}); err != nil {
			return errors.Join(ErrSend, err)
		}
		return nil
	}

	if _, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:           aws.String(s.config.from()),
		ReplyToAddresses: []string{s.config.SupportEmail},
		Destination:      &types.Destination{ToAddresses: []string{params.SendTo}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(params.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(params.BodyHTML), Charset: aws.String("UTF-8")},
			},
		},
		Tags: sesTags(params),
	}); err != nil {
		return errors.Join(ErrSend, err)
	}
	return nil
}

func sesTags(params SendEmailParams) []types.MessageTag {
	if params.Tag == "" {
		return nil
	}
	return []types.MessageTag{{Name: aws.String("category"), Value: aws.String(sanitizeFilename(params.Tag))}}
}

// buildRawMessage renders a single-part text/html message with base64 body.
func buildRawMessage(cfg Config, params SendEmailParams, extra map[string]string) []byte {
	var b bytes.Buffer
	writeHeader := func(name, value string) {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\r\n")
	}

	writeHeader("From", cfg.from())
	writeHeader("To", params.SendTo)
	writeHeader("Reply-To", cfg.SupportEmail)
	writeHeader("Subject", mime.QEncoding.Encode("UTF-8", params.Subject))

	names := make([]string, 0, len(extra))
	for name := range extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		writeHeader(name, extra[name])
	}

	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", `text/html; charset="UTF-8"`)
	writeHeader("Content-Transfer-Encoding", "base64")
	b.WriteString("\r\n")

	encoded := base64.StdEncoding.EncodeToString([]byte(params.BodyHTML))
	for len(encoded) > 76 {
		b.WriteString(encoded[:76])
		b.WriteString("\r\n")
		encoded = encoded[76:]
	}
	b.WriteString(encoded)
	b.WriteString("\r\n")

	return b.Bytes()
}
