// Package email sends transactional and newsletter mail through a
// provider-agnostic EmailSender.
//
// Three implementations exist:
//   - Postmark (github.com/mrz1836/postmark) for production delivery with tracking
//   - Amazon SES (aws-sdk-go-v2) as an alternative provider
//   - DevSender, which writes each message to disk for local development
//
// New picks one from Config.Provider:
//
//	sender, err := email.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:          "reader@example.com",
//	    Subject:         "New post",
//	    BodyHTML:        html,
//	    Tag:             "newsletter",
//	    ListUnsubscribe: unsubscribeURL,
//	})
//
// Every sender validates SendEmailParams first and fails with
// ErrInvalidParams before contacting a provider. Delivery failures wrap
// ErrSend. When ListUnsubscribe is set, senders add the
// List-Unsubscribe and List-Unsubscribe-Post headers so mail clients can
// offer one-click unsubscription.
//
// HTML bodies are rendered from templ components with templates.Render.
package email
