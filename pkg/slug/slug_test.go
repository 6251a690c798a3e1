package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jpmhone/folio/pkg/slug"
)

func TestValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"zero-trust", true},
		{"post_2025", true},
		{"A1", true},
		{"a", true},
		{"", false},
		{"-leading", false},
		{"trailing_", false},
		{"has space", false},
		{"../etc", false},
		{"café", false},
		{strings.Repeat("a", slug.MaxLength), true},
		{strings.Repeat("a", slug.MaxLength+1), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.Valid(tt.in), tt.in)
	}
}
