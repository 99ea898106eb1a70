package qrcode_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"nightlife/shared/qrcode"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name    string
		content string
		size    int
	}{
		{name: "booking code", content: "AB12CD34", size: 256},
		{name: "redemption code", content: "AB12CD34001", size: 256},
		{name: "default size", content: "ZZ99ZZ99", size: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := qrcode.Encode(tt.content, tt.size)
			require.NoError(t, err)

			cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, "png", format)

			if tt.size > 0 {
				assert.Equal(t, tt.size, cfg.Width)
			}

			decoded, err := qrcode.DecodeBytes(data)
			require.NoError(t, err)
			assert.Equal(t, tt.content, decoded)
		})
	}
}

func TestEncode_Empty(t *testing.T) {
	_, err := qrcode.Encode("", 256)

	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
}

func TestDecode_NoCode(t *testing.T) {
	blank := image.NewGray(image.Rect(0, 0, 64, 64))
	for x := range 64 {
		for y := range 64 {
			blank.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, blank))

	_, err := qrcode.Decode(&buf)

	assert.ErrorIs(t, err, qrcode.ErrNotFound)
}

func TestDecode_NotAnImage(t *testing.T) {
	_, err := qrcode.DecodeBytes([]byte("definitely not a png"))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, qrcode.ErrNotFound)
}
