package base64_test

import (
	"nightlife/shared/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "png", input: "data:image/png;base64," + pixelPNG, expected: "image/png"},
		{name: "json", input: "data:application/json;base64,eyJuYW1lIjoiSm9obiJ9", expected: "application/json"},
		{name: "parameters kept", input: "data:image/svg+xml;charset=utf-8;base64,PHN2Zz4=", expected: "image/svg+xml;charset=utf-8"},
		{name: "empty string", input: "", expected: ""},
		{name: "no data prefix", input: "image/png;base64," + pixelPNG, expected: ""},
		{name: "no base64 marker", input: "data:image/png," + pixelPNG, expected: ""},
		{name: "only prefix", input: "data:", expected: ""},
		{name: "empty media type", input: "data:;base64,", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.GetContentType(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	t.Run("valid png", func(t *testing.T) {
		data, contentType, err := base64.Decode("data:image/png;base64," + pixelPNG)

		require.NoError(t, err)
		assert.Equal(t, "image/png", contentType)
		assert.Equal(t, []byte("\x89PNG"), data[:4])
	})

	t.Run("not a data url", func(t *testing.T) {
		_, _, err := base64.Decode(pixelPNG)

		assert.ErrorIs(t, err, base64.ErrInvalidDataURL)
	})

	t.Run("corrupt payload", func(t *testing.T) {
		_, _, err := base64.Decode("data:image/png;base64,***")

		assert.ErrorIs(t, err, base64.ErrInvalidDataURL)
	})
}
