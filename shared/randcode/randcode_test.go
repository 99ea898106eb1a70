package randcode_test

import (
	"bytes"
	"nightlife/shared/randcode"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{name: "booking code", length: 8},
		{name: "referral code", length: 10},
		{name: "single char", length: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := randcode.New(tt.length)

			require.NoError(t, err)
			assert.Len(t, code, tt.length)

			for _, c := range code {
				assert.True(t, strings.ContainsRune(randcode.Alphanumeric, c), "unexpected rune %q", c)
			}
		})
	}
}

func TestNew_InvalidLength(t *testing.T) {
	_, err := randcode.New(0)

	assert.ErrorIs(t, err, randcode.ErrInvalidLength)
}

func TestNew_Spread(t *testing.T) {
	seen := map[string]struct{}{}

	for range 500 {
		code, err := randcode.New(8)
		require.NoError(t, err)

		seen[code] = struct{}{}
	}

	assert.Greater(t, len(seen), 495)
}

func TestFromReader_ExhaustedSource(t *testing.T) {
	_, err := randcode.FromReader(bytes.NewReader(nil), 8)

	assert.Error(t, err)
}
