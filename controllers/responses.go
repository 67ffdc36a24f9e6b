package controllers

import (
	"errors"
	"net/http"

	"goblog/services"

	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"
)

// ErrorResponse is the error envelope for every failing API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the envelope for responses that only carry a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeError translates a service error to a status code and the error
// envelope. Anything outside the taxonomy is logged and reduced to a generic
// 500 so internal details never reach the client.
func writeError(response *restful.Response, err error, logger *zap.Logger) {
	statusCode := http.StatusInternalServerError
	message := "Something went wrong!"

	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConflict):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, services.ErrAuth):
		statusCode = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, services.ErrNotFound):
		statusCode = http.StatusNotFound
		message = err.Error()
	default:
		logger.Error("unhandled service error", zap.Error(err))
	}

	_ = response.WriteHeaderAndJson(statusCode, ErrorResponse{Error: message}, restful.MIME_JSON)
}

func writeBadRequest(response *restful.Response, message string) {
	_ = response.WriteHeaderAndJson(http.StatusBadRequest, ErrorResponse{Error: message}, restful.MIME_JSON)
}
