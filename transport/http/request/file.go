package request

import (
	"fmt"
	"io"
	"net/http"
	"nightlife/shared/constant"
	"nightlife/shared/failure"
)

// FormFileBytes reads the multipart "file" field fully into memory.
func FormFileBytes(r *http.Request) (string, []byte, error) {
	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return "", nil, failure.BadRequest(fmt.Errorf("failed to parse multipart form: %w", err))
	}

	file, header, err := r.FormFile(constant.FormFile)
	if err != nil {
		return "", nil, failure.BadRequest(fmt.Errorf("failed to get file from form: %w", err))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, constant.RequestMaxMemory))
	if err != nil {
		return "", nil, failure.BadRequest(fmt.Errorf("failed to read file: %w", err))
	}

	return header.Filename, data, nil
}
