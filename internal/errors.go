package internal

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes raised by the dispatch cycle.
const (
	CodeNoManifest         = "no-manifest"
	CodeNoMatchingRoute    = "no-matching-route"
	CodeControllerNotFound = "controller-not-found"
	CodeActionNotFound     = "action-not-found"
	CodeInvalidRoute       = "invalid-route"
	CodeActionFailed       = "action-failed"
)

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	ErrNoManifest         = &Error{Code: CodeNoManifest, Status: http.StatusInternalServerError}
	ErrNoMatchingRoute    = &Error{Code: CodeNoMatchingRoute, Status: http.StatusNotFound}
	ErrControllerNotFound = &Error{Code: CodeControllerNotFound, Status: http.StatusNotFound}
	ErrActionNotFound     = &Error{Code: CodeActionNotFound, Status: http.StatusNotFound}
	ErrInvalidRoute       = &Error{Code: CodeInvalidRoute, Status: http.StatusInternalServerError}
	ErrActionFailed       = &Error{Code: CodeActionFailed, Status: http.StatusInternalServerError}
)

var codeStatus = map[string]int{
	CodeNoManifest:         http.StatusInternalServerError,
	CodeNoMatchingRoute:    http.StatusNotFound,
	CodeControllerNotFound: http.StatusNotFound,
	CodeActionNotFound:     http.StatusNotFound,
	CodeInvalidRoute:       http.StatusInternalServerError,
	CodeActionFailed:       http.StatusInternalServerError,
}

// Error is a terminal failure of a dispatch cycle.
// Message is detail for developers; release builds never show it to clients.
type Error struct {
	Err     error
	Code    string
	Message string
	Status  int
}

// NewError builds an Error for code. Unknown codes map to 500.
func NewError(code, message string) *Error {
	status, ok := codeStatus[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &Error{Code: code, Status: status, Message: message}
}

func wrapError(code string, err error) *Error {
	e := NewError(code, err.Error())
	e.Err = err
	return e
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// StatusText returns the HTTP reason phrase for the status.
func (e *Error) StatusText() string {
	return http.StatusText(e.Status)
}

// Body renders the plain-text response body. Detail is included only when debug is set.
func (e *Error) Body(debug bool) string {
	if debug {
		return fmt.Sprintf("%d: %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.StatusText())
}

// Payload is the JSON form of Body.
func (e *Error) Payload(debug bool) map[string]any {
	p := map[string]any{
		"status": e.Status,
		"error":  e.StatusText(),
	}
	if debug {
		p["code"] = e.Code
		p["message"] = e.Message
	}
	return p
}

// AsError returns the *Error in err's chain, or nil.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// PanicError carries a value recovered from a panicking action.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
