package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short is verbatim", "Hello there", "Hello there"},
		{"exactly fifty", strings.Repeat("x", 50), strings.Repeat("x", 50)},
		{"fifty one is cut", strings.Repeat("x", 51), strings.Repeat("x", 50) + "..."},
		{"trailing space trimmed before suffix", strings.Repeat("y", 45) + "     tail end here", strings.Repeat("y", 45) + "..."},
		{"counts runes not bytes", strings.Repeat("é", 60), strings.Repeat("é", 50) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveTitle(tt.in, 50))
		})
	}
}
