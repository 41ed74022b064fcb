package bind

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Transport delivers one request descriptor and returns the response
// descriptor. A returned error means the exchange never completed; an
// error-class response from the server is a ResponseDescriptor with a
// non-2xx status, not a Transport error.
type Transport interface {
	Send(ctx context.Context, req RequestDescriptor) (ResponseDescriptor, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req RequestDescriptor) (ResponseDescriptor, error)

// Send calls f.
func (f TransportFunc) Send(ctx context.Context, req RequestDescriptor) (ResponseDescriptor, error) {
	return f(ctx, req)
}

// HTTPTransport sends descriptors over net/http.
type HTTPTransport struct {
	// Base is the server URL prefix, e.g. "http://localhost:8080".
	Base string
	// Client defaults to http.DefaultClient when nil.
	Client *http.Client
}

// Send implements Transport.
func (t *HTTPTransport) Send(ctx context.Context, req RequestDescriptor) (rd ResponseDescriptor, err error) {
	u := strings.TrimSuffix(t.Base, "/") + req.Path
	if enc := req.Query.Encode(); enc != "" {
		u += "?" + enc
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	hr, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return ResponseDescriptor{}, err
	}
	if len(req.Body) > 0 {
		hr.Header.Set("Content-Type", "application/json")
	}
	hr.Header.Set("Accept", "application/json")

	resp, err := t.client().Do(hr)
	if err != nil {
		return ResponseDescriptor{}, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close response body: %w", closeErr)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return ResponseDescriptor{}, err
	}
	return ResponseDescriptor{Status: resp.StatusCode, Body: b}, err
}

func (t *HTTPTransport) client() *http.Client {
	if t.Client != nil {
		return t.Client
	}
	return http.DefaultClient
}
