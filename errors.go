package bind

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
)

// Construction errors. All of these are detected while building a Registry,
// an API, or a BindingTable, before the first request, and are fatal to
// process initialization.

// DuplicateTypeError reports a second registration for a type name.
type DuplicateTypeError struct {
	Name string
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("bind: type %q already registered", e.Name)
}

// UnknownTypeError reports a type name with no registry entry. Route is set
// when the reference came from a schema route.
type UnknownTypeError struct {
	Name  string
	Route string
}

func (e *UnknownTypeError) Error() string {
	if e.Route == "" {
		return fmt.Sprintf("bind: unknown type %q", e.Name)
	}
	return fmt.Sprintf("bind: route %s references unknown type %q", e.Route, e.Name)
}

// AmbiguousRouteError reports two route alternatives that cannot be told
// apart: a duplicate (path, method) pair, or conflicting capture
// placeholders at the same path position.
type AmbiguousRouteError struct {
	Method string
	Path   string
	Reason string
}

func (e *AmbiguousRouteError) Error() string {
	return fmt.Sprintf("bind: ambiguous route %s %s: %s", e.Method, e.Path, e.Reason)
}

// DuplicateCaptureError reports a capture or query parameter name declared
// more than once within one route. Captures and query parameters share a
// namespace because together they form the handler's parameter list.
type DuplicateCaptureError struct {
	Route string
	Name  string
}

func (e *DuplicateCaptureError) Error() string {
	return fmt.Sprintf("bind: route %s declares parameter %q more than once", e.Route, e.Name)
}

// PatternError reports a route pattern that cannot be parsed.
type PatternError struct {
	Pattern string
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("bind: invalid pattern %q: %s", e.Pattern, e.Reason)
}

// NotTextualError reports a capture or query parameter whose type cannot be
// decoded from raw path/query text (its codec does not implement TextCodec).
type NotTextualError struct {
	Route string
	Field string
	Type  string
}

func (e *NotTextualError) Error() string {
	return fmt.Sprintf("bind: route %s: %s uses type %q which cannot decode from text", e.Route, e.Field, e.Type)
}

// MissingHandlerError reports a route with no handler supplied to Bind.
type MissingHandlerError struct {
	Route string
}

func (e *MissingHandlerError) Error() string {
	return fmt.Sprintf("bind: no handler bound for route %s", e.Route)
}

// DuplicateBindingError reports two handlers bound to the same route.
type DuplicateBindingError struct {
	Route string
}

func (e *DuplicateBindingError) Error() string {
	return fmt.Sprintf("bind: route %s bound twice", e.Route)
}

// UnknownRouteError reports a route name that does not exist in the API,
// either as a Bind target or as a client call target.
type UnknownRouteError struct {
	Name string
}

func (e *UnknownRouteError) Error() string {
	return fmt.Sprintf("bind: unknown route %q", e.Name)
}

// ShapeMismatchError reports the first point at which a handler signature
// (or a client argument list) disagrees with its route's declared shape.
// Field names the disagreeing position: "ctx", a capture or query parameter
// name, "body", "return", or "arity" when the counts differ.
type ShapeMismatchError struct {
	Route string
	Field string
	Want  reflect.Type
	Got   reflect.Type
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("bind: route %s: %s is %s, schema declares %s", e.Route, e.Field, typeOrNone(e.Got), typeOrNone(e.Want))
}

func typeOrNone(t reflect.Type) string {
	if t == nil {
		return "absent"
	}
	return t.String()
}

// Request errors. These are produced by the Dispatch Engine before a
// handler runs, and by generated clients; they never crash the process.

// StatusCoder is implemented by errors that carry an HTTP-style status code.
type StatusCoder interface {
	StatusCode() int
}

// ProblemDetail is the wire shape of every error response (an RFC 9457
// problem details object, narrowed to the fields this engine fills).
//
//nolint:errname // RFC 9457 standard name
type ProblemDetail struct {
	Status int    `json:"status"`
	Title  string `json:"title,omitempty"`
	Detail string `json:"detail,omitempty"`
	Field  string `json:"field,omitempty"`
}

// Error returns the detail message (or title if detail is empty).
func (p *ProblemDetail) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}

// StatusCode returns the HTTP status code.
func (p *ProblemDetail) StatusCode() int { return p.Status }

// HandlerError wraps an application error reported by a handler. The engine
// treats it as opaque and passes the message through to the response, with
// a status distinct from decode failures.
type HandlerError struct {
	Err error
}

func (e *HandlerError) Error() string { return e.Err.Error() }

func (e *HandlerError) Unwrap() error { return e.Err }

// StatusCode returns 422, distinguishing application failure from the 400
// used for malformed requests.
func (e *HandlerError) StatusCode() int { return http.StatusUnprocessableEntity }

// Client-side errors.

// TransportError reports a failure to deliver a request at all: the server
// was never reached or never answered.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "bind: transport: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError reports a non-2xx response, carrying the server's decoded
// problem body so callers can distinguish a malformed request from an
// operation that failed.
type RemoteError struct {
	Status  int
	Problem ProblemDetail
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("bind: remote status %d: %s", e.Status, e.Problem.Error())
}

// StatusCode returns the remote HTTP status code.
func (e *RemoteError) StatusCode() int { return e.Status }

// DecodeError reports a 2xx response whose body did not decode as the
// route's declared return type.
type DecodeError struct {
	Route string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bind: route %s: decode response: %v", e.Route, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrorStatus extracts the HTTP status code from an error. Returns
// http.StatusInternalServerError if the error does not implement StatusCoder.
func ErrorStatus(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}
