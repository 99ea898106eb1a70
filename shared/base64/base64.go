package base64

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrInvalidDataURL = errors.New("invalid base64 data url")

// GetContentType returns the media type of a data URL, or "" when s is not one.
func GetContentType(s string) string {
	if !strings.HasPrefix(s, dataPrefix) {
		return ""
	}

	end := strings.Index(s, base64Marker)
	if end <= len(dataPrefix) {
		return ""
	}

	return s[len(dataPrefix):end]
}

// Decode splits a data URL into its payload bytes and media type.
func Decode(s string) ([]byte, string, error) {
	contentType := GetContentType(s)
	if contentType == "" {
		return nil, "", ErrInvalidDataURL
	}

	payload := s[strings.Index(s, base64Marker)+len(base64Marker):]

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
	}

	return data, contentType, nil
}
