// Package qrcode renders booking codes as QR PNGs and reads them back from scans.
package qrcode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/skip2/go-qrcode"
)

const DefaultSize = 256

var (
	ErrEmptyContent = errors.New("qr content is empty")
	ErrNotFound     = errors.New("no qr code found in image")
)

// Encode renders content as a size x size PNG with medium error correction.
func Encode(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	if size <= 0 {
		size = DefaultSize
	}

	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}

	return png, nil
}

// Decode reads the first QR code found in a PNG or JPEG image.
func Decode(reader io.Reader) (string, error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bitmap, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to binarize image: %w", err)
	}

	result, err := zxingqr.NewQRCodeReader().Decode(bitmap, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return result.GetText(), nil
}

func DecodeBytes(data []byte) (string, error) {
	return Decode(bytes.NewReader(data))
}
