package handler

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
)

type templResponse struct {
	component templ.Component
	status    int
	headers   map[string]string
}

// Render buffers the component so a render failure can still produce a
// clean error response.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	var buf bytes.Buffer
	if err := t.component.Render(r.Context(), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for k, v := range t.headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(t.status)
	_, err := w.Write(buf.Bytes())
	return err
}

type TemplOption func(*templResponse)

func WithStatus(status int) TemplOption {
	return func(t *templResponse) {
		t.status = status
	}
}

func WithHeader(key, value string) TemplOption {
	return func(t *templResponse) {
		if t.headers == nil {
			t.headers = make(map[string]string)
		}
		t.headers[key] = value
	}
}

func Templ(component templ.Component, opts ...TemplOption) Response {
	t := templResponse{component: component, status: http.StatusOK}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

type bytesResponse struct {
	contentType string
	body        []byte
	status      int
	headers     map[string]string
}

func (b bytesResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", b.contentType)
	for k, v := range b.headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(b.status)
	_, err := w.Write(b.body)
	return err
}

// Bytes writes an already rendered body, typically one served from cache.
func Bytes(contentType string, body []byte, opts ...TemplOption) Response {
	t := templResponse{status: http.StatusOK}
	for _, opt := range opts {
		opt(&t)
	}
	return bytesResponse{contentType: contentType, body: body, status: t.status, headers: t.headers}
}

// HTML is Bytes with an HTML content type.
func HTML(body []byte, opts ...TemplOption) Response {
	return Bytes("text/html; charset=utf-8", body, opts...)
}
