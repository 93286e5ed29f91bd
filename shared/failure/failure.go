package failure

import (
	"errors"
	"net/http"
)

// Failure is an error carrying the HTTP status to answer with.
// Reason is the short business code clients match on, e.g. "021".
type Failure struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

const (
	ReasonInvalidDate       = "007"
	ReasonInvalidTimeFormat = "013"
	ReasonInvalidRange      = "014"
	ReasonUnknownVenue      = "020"
	ReasonUnknownSchedule   = "021"
	ReasonBookingConflict   = "030"
)

var (
	InvalidPageParam  = New(http.StatusBadRequest, "", "invalid page parameter")
	InvalidLimitParam = New(http.StatusBadRequest, "", "invalid limit parameter")
	InvalidDate       = New(http.StatusBadRequest, ReasonInvalidDate, "Invalid Date")
	InvalidRange      = New(http.StatusBadRequest, ReasonInvalidRange, "open start time must be less than open end time")
)

func New(code int, reason, message string) *Failure {
	return &Failure{Code: code, Reason: reason, Message: message}
}

func (e *Failure) Error() string {
	return e.Message
}

// Is matches on status and reason. Failures without a reason also need the same message.
func (e *Failure) Is(target error) bool {
	var other *Failure
	if !errors.As(target, &other) {
		return false
	}

	if e.Code != other.Code || e.Reason != other.Reason {
		return false
	}

	return other.Reason != "" || e.Message == other.Message
}

// BadRequest wraps a decoding or validation error. A nil error stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, "", err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, "", msg)
}

// InvalidTimeFormat reports a wall-clock value not written as HH:mm:ss.
func InvalidTimeFormat(field string) error {
	return New(http.StatusBadRequest, ReasonInvalidTimeFormat, field+" must be in HH:mm:ss format")
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, "", msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, "", msg)
}

func UnknownVenue() error {
	return New(http.StatusNotFound, ReasonUnknownVenue, "venue not found")
}

func UnknownSchedule() error {
	return New(http.StatusNotFound, ReasonUnknownSchedule, "schedule not found")
}

func Conflict(msg string) error {
	return New(http.StatusConflict, "", msg)
}

// BookingConflict is returned when a slot was taken between quoting and inserting.
func BookingConflict() error {
	return New(http.StatusConflict, ReasonBookingConflict, "slot is no longer available")
}

// GetCode falls back to 500 for anything that is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

func GetReason(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason
	}

	return ""
}
