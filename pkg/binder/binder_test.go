package binder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpmhone/folio/pkg/binder"
)

type request struct {
	ID    string `path:"id"`
	Page  int    `path:"page"`
	Email string `json:"email"`
	Like  bool   `json:"like"`
}

func jsonRequest(body, contentType string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes body", func(t *testing.T) {
		t.Parallel()
		var req request
		err := binder.JSON()(jsonRequest(`{"email":"a@example.com","like":true}`, "application/json; charset=utf-8"), &req)
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", req.Email)
		assert.True(t, req.Like)
	})

	tests := []struct {
		name        string
		body        string
		contentType string
		wantErr     error
	}{
		{"missing content type", `{}`, "", binder.ErrMissingContentType},
		{"wrong content type", `{}`, "text/plain", binder.ErrUnsupportedMediaType},
		{"empty body", ``, "application/json", binder.ErrDecodeJSON},
		{"unknown field", `{"nope":1}`, "application/json", binder.ErrDecodeJSON},
		{"trailing data", `{} {}`, "application/json", binder.ErrDecodeJSON},
		{"bad type", `{"like":"yes"}`, "application/json", binder.ErrDecodeJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var req request
			err := binder.JSON()(jsonRequest(tt.body, tt.contentType), &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func withParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPath(t *testing.T) {
	t.Parallel()

	r := withParams(httptest.NewRequest(http.MethodGet, "/", nil), "id", "abc", "page", "3")
	var req request
	require.NoError(t, binder.Path(chi.URLParam)(r, &req))
	assert.Equal(t, "abc", req.ID)
	assert.Equal(t, 3, req.Page)

	r = withParams(httptest.NewRequest(http.MethodGet, "/", nil), "page", "three")
	assert.ErrorIs(t, binder.Path(chi.URLParam)(r, &req), binder.ErrPathParam)

	assert.ErrorIs(t, binder.Path(nil)(r, &req), binder.ErrPathParam)
	assert.ErrorIs(t, binder.Path(chi.URLParam)(r, req), binder.ErrPathParam)
}
