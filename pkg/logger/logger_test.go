package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpmhone/folio/pkg/logger"
)

type ctxKey struct{}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNew_JSONWithContextValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatJSON),
		logger.WithAttr(slog.String("service", "folio")),
		logger.WithContextValue("request_id", ctxKey{}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.InfoContext(ctx, "hello", logger.SubscriberID("sub_123"))

	m := decode(t, &buf)
	assert.Equal(t, "hello", m["msg"])
	assert.Equal(t, "folio", m["service"])
	assert.Equal(t, "req-1", m["request_id"])
	assert.Equal(t, "sub_123", m["subscriber_id"])
}

func TestNew_ContextValueAbsent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithContextValue("request_id", ctxKey{}))
	log.InfoContext(context.Background(), "hello")

	m := decode(t, &buf)
	_, ok := m["request_id"]
	assert.False(t, ok)
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithEnvironment("prod", "folio"))
	log.Debug("hidden")
	assert.Zero(t, buf.Len(), "debug must be filtered in production")

	log.Info("shown")
	m := decode(t, &buf)
	assert.Equal(t, "production", m["env"])
	assert.Equal(t, "folio", m["service"])

	var dev bytes.Buffer
	logger.New(logger.WithOutput(&dev), logger.WithEnvironment("", "folio")).Debug("visible")
	assert.Contains(t, dev.String(), "visible")
	assert.Contains(t, dev.String(), "env=development")
}

func TestWithFormat_PanicsOnUnknown(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logger.NewFromConfig(logger.Config{
		Service:     "folio",
		Environment: "production",
		Level:       "debug",
		Format:      "json",
	}, logger.WithOutput(&buf))
	require.NoError(t, err)

	log.Debug("debug enabled by override")
	m := decode(t, &buf)
	assert.Equal(t, "DEBUG", m["level"])

	_, err = logger.NewFromConfig(logger.Config{Level: "loud"})
	assert.Error(t, err)
	_, err = logger.NewFromConfig(logger.Config{Format: "xml"})
	assert.Error(t, err)
}

func TestErrorAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))

	boom := errors.New("boom")
	attr := logger.Error(boom)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, boom, attr.Value.Any())

	group := logger.Errors(nil, boom)
	require.Equal(t, slog.KindGroup, group.Value.Kind())
	require.Len(t, group.Value.Group(), 1)
	assert.Equal(t, "1", group.Value.Group()[0].Key)
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"alice@example.com": "a***@example.com",
		"a@b.c":             "a***@b.c",
		"@example.com":      "***",
		"no-at-sign":        "***",
		"":                  "***",
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.MaskEmail(in), in)
	}
	assert.Equal(t, "recipient", logger.Recipient("alice@example.com").Key)
}
