package sacloud

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindValidation covers zone, credential and field checks made before any request.
	KindValidation Kind = iota
	// KindTransport covers DNS, connect, timeout and other network level failures.
	KindTransport
	// KindStatus covers responses whose status code is not 2xx.
	KindStatus
	// KindUnexpected covers everything else, including unparseable response bodies.
	KindUnexpected
)

// String returns the lowercase name of the kind, used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// ErrInvalidJSON is the cause of an unexpected error when a successful
// response does not carry a JSON document.
var ErrInvalidJSON = errors.New("response body is not valid JSON")

// Error is the discriminated failure returned by the pipeline.
type Error struct {
	Kind Kind

	// Text is the user facing message of a validation error.
	Text string

	// StatusCode and Body are set for KindStatus.
	StatusCode int
	Body       string

	// Method and URL identify the failed request, when there was one.
	Method string
	URL    string

	// Cause is the underlying error for transport and unexpected failures.
	Cause error
}

// NewValidationError returns a validation error with a formatted message.
func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Text: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.UserFacingError()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// UserFacingError renders the localized message returned to the agent.
func (e *Error) UserFacingError() string {
	switch e.Kind {
	case KindValidation:
		return e.Text
	case KindTransport:
		return fmt.Sprintf("さくらのクラウドAPIへのリクエストに失敗しました: %v", e.Cause)
	case KindStatus:
		return fmt.Sprintf("さくらのクラウドAPIからエラーが返されました: %d - %s", e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("API リクエスト中に予期しないエラーが発生しました: %v", e.Cause)
	}
}

// Diagnostic renders the out of band message emitted for network failures.
// Validation errors have no diagnostic.
func (e *Error) Diagnostic() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("http Request Error:%v", e.Cause)
	case KindStatus:
		return fmt.Sprintf("HTTP Status Error:%d for %s %s: %s", e.StatusCode, e.Method, e.URL, e.Body)
	case KindUnexpected:
		return fmt.Sprintf("Unexpected error:%v", e.Cause)
	default:
		return ""
	}
}

// KindOf returns the kind of err, or KindUnexpected when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindValidation
}
