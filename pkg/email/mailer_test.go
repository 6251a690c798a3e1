package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpmhone/folio/pkg/email"
)

func validParams() email.SendEmailParams {
	return email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Test Subject",
		BodyHTML: "<p>Test body</p>",
		Tag:      "test",
	}
}

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*email.SendEmailParams)
		errMsg string
	}{
		{name: "valid params", mutate: func(*email.SendEmailParams) {}},
		{name: "valid without tag", mutate: func(p *email.SendEmailParams) { p.Tag = "" }},
		{name: "valid with unsubscribe url", mutate: func(p *email.SendEmailParams) {
			p.ListUnsubscribe = "https://example.com/unsubscribe/a.b.c"
		}},
		{name: "empty SendTo", mutate: func(p *email.SendEmailParams) { p.SendTo = "" }, errMsg: "SendTo is required"},
		{name: "whitespace SendTo", mutate: func(p *email.SendEmailParams) { p.SendTo = "   " }, errMsg: "SendTo is required"},
		{name: "no at sign", mutate: func(p *email.SendEmailParams) { p.SendTo = "invalid-email" }, errMsg: "SendTo must be a valid email address"},
		{name: "missing domain", mutate: func(p *email.SendEmailParams) { p.SendTo = "user@" }, errMsg: "SendTo must be a valid email address"},
		{name: "missing local part", mutate: func(p *email.SendEmailParams) { p.SendTo = "@example.com" }, errMsg: "SendTo must be a valid email address"},
		{name: "empty Subject", mutate: func(p *email.SendEmailParams) { p.Subject = " " }, errMsg: "Subject is required"},
		{name: "empty BodyHTML", mutate: func(p *email.SendEmailParams) { p.BodyHTML = "" }, errMsg: "BodyHTML is required"},
		{name: "relative unsubscribe url", mutate: func(p *email.SendEmailParams) {
			p.ListUnsubscribe = "/unsubscribe/x"
		}, errMsg: "ListUnsubscribe must be an absolute URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, email.ErrInvalidParams)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func readDevOutput(t *testing.T, dir string) (htmlFiles, jsonFiles []string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".html"):
			htmlFiles = append(htmlFiles, filepath.Join(dir, e.Name()))
		case strings.HasSuffix(e.Name(), ".json"):
			jsonFiles = append(jsonFiles, filepath.Join(dir, e.Name()))
		}
	}
	return htmlFiles, jsonFiles
}

func TestDevSender_SendEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("writes html and metadata", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		p := validParams()
		p.Tag = "newsletter"
		p.ListUnsubscribe = "https://example.com/unsubscribe/tok"
		require.NoError(t, sender.SendEmail(ctx, p))

		htmlFiles, jsonFiles := readDevOutput(t, dir)
		require.Len(t, htmlFiles, 1)
		require.Len(t, jsonFiles, 1)
		assert.Contains(t, htmlFiles[0], "newsletter")

		body, err := os.ReadFile(htmlFiles[0])
		require.NoError(t, err)
		assert.Equal(t, "<p>Test body</p>", string(body))

		raw, err := os.ReadFile(jsonFiles[0])
		require.NoError(t, err)
		var meta map[string]any
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, "user@example.com", meta["send_to"])
		assert.Equal(t, "Test Subject", meta["subject"])
		assert.Equal(t, "newsletter", meta["tag"])
		assert.Equal(t, "https://example.com/unsubscribe/tok", meta["list_unsubscribe"])
		assert.NotEmpty(t, meta["timestamp"])
	})

	t.Run("subject names the file when tag is empty", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		p := validParams()
		p.Tag = ""
		p.Subject = "Password Reset!"
		require.NoError(t, email.NewDevSender(dir).SendEmail(ctx, p))

		htmlFiles, _ := readDevOutput(t, dir)
		require.Len(t, htmlFiles, 1)
		assert.Contains(t, filepath.Base(htmlFiles[0]), "password_reset")
	})

	t.Run("concurrent sends do not overwrite each other", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, sender.SendEmail(ctx, validParams()))
			}()
		}
		wg.Wait()

		htmlFiles, jsonFiles := readDevOutput(t, dir)
		assert.Len(t, htmlFiles, 20)
		assert.Len(t, jsonFiles, 20)
	})

	t.Run("validation error writes nothing", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		p := validParams()
		p.SendTo = ""

		err := email.NewDevSender(dir).SendEmail(ctx, p)
		assert.ErrorIs(t, err, email.ErrInvalidParams)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("unwritable directory", func(t *testing.T) {
		t.Parallel()
		err := email.NewDevSender("/dev/null/cannot-create-here").SendEmail(ctx, validParams())
		assert.ErrorIs(t, err, email.ErrSend)
		assert.Contains(t, err.Error(), "failed to create directory")
	})
}

func TestNew(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	base := email.Config{SenderEmail: "news@example.com", SupportEmail: "hello@example.com", DevOutputDir: t.TempDir()}

	sender, err := email.New(ctx, base)
	require.NoError(t, err)
	assert.IsType(t, &email.DevSender{}, sender)

	cfg := base
	cfg.Provider = "postmark"
	_, err = email.New(ctx, cfg)
	assert.ErrorIs(t, err, email.ErrInvalidConfig, "postmark needs tokens")

	cfg.Provider = "carrier-pigeon"
	_, err = email.New(ctx, cfg)
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}
