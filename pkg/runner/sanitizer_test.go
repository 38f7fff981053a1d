package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	limit := 16

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeInput(strings.Repeat("a", tt.inputSize), limit)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeInput_EnvLimit(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "4")

	_, err := SanitizeInput("aaaaa", 0)
	assert.ErrorIs(t, err, ErrInputTooLarge)

	t.Setenv(EnvMaxInputSize, "bogus")
	_, err = SanitizeInput("aaaaa", 0)
	assert.NoError(t, err)
}

func TestSanitizeInput_ControlCharsPassThrough(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Plain", "aabb"},
		{"Tab", "a\tb"},
		{"ANSI Escape", "\x1b[31mab"},
		{"NUL and BEL", "a\x00b\x07"},
		{"SOH", "a\x01b"},
		{"Unicode", "ɛ→ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
		})
	}
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	_, err := SanitizeInput("a\xffb", 0)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}
