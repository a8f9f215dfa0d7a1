package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/logger"
)

// Every JSON body is one of the envelopes below: {"data": ...}, {"error": "..."} or {"message": "..."}.

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	writeJSON(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	writeJSON(writer, code, Data[any]{Data: &payload})
}

// WithError maps err onto its failure code. Anything that is not a failure is
// answered with a generic 500 message so internals never reach the client.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	message := constant.ResponseErrorInternal
	if code != http.StatusInternalServerError {
		message = err.Error()
	}

	writeJSON(writer, code, Error{Error: &message})
}

func WithText(writer http.ResponseWriter, code int, text string) {
	write(writer, code, constant.ContentTypeTextPlain, []byte(text))
}

// WithAttachment sends content as a file download named filename.
func WithAttachment(writer http.ResponseWriter, contentType, filename string, content []byte) {
	writer.Header().Set(constant.RequestHeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	write(writer, http.StatusOK, contentType, content)
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func writeJSON(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		WithText(writer, http.StatusInternalServerError, constant.ResponseErrorInternal)

		return
	}

	write(writer, code, constant.ContentTypeJSON, body)
}

func write(writer http.ResponseWriter, code int, contentType string, body []byte) {
	writer.Header().Set(constant.RequestHeaderContentType, contentType)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
