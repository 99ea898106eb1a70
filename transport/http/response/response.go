package response

import (
	"encoding/json"
	"net/http"
	"nightlife/shared/constant"
	"nightlife/shared/failure"
	"nightlife/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON wraps payload in {"data": ...}
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	response(writer, code, Data[any]{Data: &payload})
}

// WithError renders a *failure.Failure as-is. Any other error is logged with
// its stack and answered with a generic 500 so driver messages never leak.
func WithError(writer http.ResponseWriter, err error) {
	if !failure.IsFailure(err) {
		logger.ErrorWithStack(err)

		msg := constant.ResponseErrorInternal
		response(writer, http.StatusInternalServerError, Error{Error: &msg})

		return
	}

	msg := err.Error()
	response(writer, failure.GetCode(err), Error{Error: &msg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

// WithPNG sends raw image bytes
func WithPNG(writer http.ResponseWriter, image []byte) {
	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypePNG)
	writer.WriteHeader(http.StatusOK)

	if _, err := writer.Write(image); err != nil {
		logger.ErrorWithStack(err)
	}
}

func response(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
