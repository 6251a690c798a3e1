package email_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jpmhone/folio/pkg/email"
)

type MockSES struct {
	mock.Mock
}

func (m *MockSES) SendEmail(ctx context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ses.SendEmailOutput), args.Error(1)
}

func (m *MockSES) SendRawEmail(ctx context.Context, in *ses.SendRawEmailInput, _ ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ses.SendRawEmailOutput), args.Error(1)
}

func sesConfig() email.Config {
	return email.Config{
		Provider:     email.ProviderSES,
		SESRegion:    "eu-west-1",
		SenderEmail:  "news@example.com",
		SenderName:   "Folio",
		SupportEmail: "hello@example.com",
	}
}

func TestSESSender_SimpleMessage(t *testing.T) {
	t.Parallel()

	client := new(MockSES)
	client.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return aws.ToString(in.Source) == "Folio <news@example.com>" &&
			in.Destination.ToAddresses[0] == "user@example.com" &&
			aws.ToString(in.Message.Subject.Data) == "Test Subject" &&
			aws.ToString(in.Message.Body.Html.Data) == "<p>Test body</p>" &&
			aws.ToString(in.Tags[0].Value) == "test"
	})).Return(&ses.SendEmailOutput{}, nil).Once()

	sender := email.NewSESSenderWithClient(client, sesConfig())
	require.NoError(t, sender.SendEmail(context.Background(), validParams()))
	client.AssertExpectations(t)
}

func TestSESSender_RawMessageWithListUnsubscribe(t *testing.T) {
	t.Parallel()

	var raw string
	client := new(MockSES)
	client.On("SendRawEmail", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			raw = string(args.Get(1).(*ses.SendRawEmailInput).RawMessage.Data)
		}).
		Return(&ses.SendRawEmailOutput{}, nil).Once()

	p := validParams()
	p.ListUnsubscribe = "https://example.com/unsubscribe/a.b.c"
	sender := email.NewSESSenderWithClient(client, sesConfig())
	require.NoError(t, sender.SendEmail(context.Background(), p))

	assert.Contains(t, raw, "List-Unsubscribe: <https://example.com/unsubscribe/a.b.c>\r\n")
	assert.Contains(t, raw, "List-Unsubscribe-Post: List-Unsubscribe=One-Click\r\n")
	assert.Contains(t, raw, "To: user@example.com\r\n")
	assert.Contains(t, raw, "Content-Transfer-Encoding: base64\r\n")

	parts := strings.SplitN(raw, "\r\n\r\n", 2)
	require.Len(t, parts, 2)
	body, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(parts[1], "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, "<p>Test body</p>", string(body))
	client.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
}

func TestSESSender_Errors(t *testing.T) {
	t.Parallel()

	client := new(MockSES)
	client.On("SendEmail", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()
	sender := email.NewSESSenderWithClient(client, sesConfig())

	err := sender.SendEmail(context.Background(), validParams())
	assert.ErrorIs(t, err, email.ErrSend)

	p := validParams()
	p.SendTo = "broken"
	assert.ErrorIs(t, sender.SendEmail(context.Background(), p), email.ErrInvalidParams)
	client.AssertNumberOfCalls(t, "SendEmail", 1)
}
