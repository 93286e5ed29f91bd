package response

import (
	"encoding/json"
	"net/http"
	"strconv"

	"venuebook/shared/constant"
	"venuebook/shared/failure"
	"venuebook/shared/logger"

	"github.com/rs/zerolog/log"
)

const retryAfterSeconds = 5

type Data[T any] struct {
	Data T `json:"data"`
}

// Error carries the business reason code (e.g. "030") next to the message, and the request id
// when one was assigned.
type Error struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: message})
}

func WithJSON[T any](writer http.ResponseWriter, code int, payload T) {
	write(writer, code, Data[T]{Data: payload})
}

// WithError renders failures as-is. Anything else is logged with its stack and masked as a 500.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	body := Error{
		Error:     err.Error(),
		Code:      failure.GetReason(err),
		RequestID: writer.Header().Get(constant.RequestHeaderRequestID),
	}

	if code >= http.StatusInternalServerError {
		log.Error().Str("request_id", body.RequestID).Err(err).Msg("request failed")
		logger.ErrorWithStack(err)

		body.Error = http.StatusText(code)
	}

	write(writer, code, body)
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	withRetry(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	withRetry(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	withRetry(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func withRetry(writer http.ResponseWriter, code int, message string) {
	writer.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	WithMessage(writer, code, message)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
