// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorHandler normalizes failures and writes them as API responses.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// errorResponse is the wire shape for failures. The "detail" key matches the
// contract the browser client was written against.
type errorResponse struct {
	Detail string `json:"detail"`
}

// WriteHTTP handles any error from a request handler: normalize to a
// StandardError, log it, and respond with the mapped status and a
// human-readable detail message.
func (h *ErrorHandler) WriteHTTP(w http.ResponseWriter, err error) {
	stdErr := h.normalizeError(err)
	status := HTTPStatus(stdErr.Code)

	h.logError(stdErr, status)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Detail: stdErr.Message})
}

// normalizeError ensures we always have a StandardError.
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return NewInternalError(err)
}

func (h *ErrorHandler) logError(stdErr *StandardError, status int) {
	if h.logger == nil {
		return
	}
	fields := map[string]interface{}{
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
		"status":    status,
	}
	// Client mistakes are expected traffic; only unexpected failures are
	// logged at error level.
	if IsClientError(stdErr.Code) {
		h.logger.Warn(stdErr.Message, fields)
		return
	}
	h.logger.Error(stdErr.Message, fields)
}
