package bind

import (
	"net/url"
)

// RequestDescriptor is the transport-neutral shape of one inbound request.
// An external listener or router translates its native request type into
// this descriptor; the engine never touches sockets or headers.
type RequestDescriptor struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// NewRequest builds a RequestDescriptor from a raw query string, for
// callers that have not already parsed one.
func NewRequest(method, path, rawQuery string, body []byte) (RequestDescriptor, error) {
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return RequestDescriptor{}, err
	}
	return RequestDescriptor{Method: method, Path: path, Query: q, Body: body}, nil
}

// ResponseDescriptor is the transport-neutral shape of one response:
// an HTTP-style status code and the encoded body.
type ResponseDescriptor struct {
	Status int
	Body   []byte
}

// OK reports whether the status is in the 2xx success class.
func (r ResponseDescriptor) OK() bool {
	return r.Status >= 200 && r.Status < 300
}
