// Package bindtest provides typed test helpers for the bind framework.
package bindtest

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/bjaus/bind"
)

// Server wraps an httptest.Server around a binding table's handler.
type Server struct {
	Server *httptest.Server
}

// NewServer starts a test server for the table and registers its shutdown
// as a test cleanup.
func NewServer(t testing.TB, table *bind.BindingTable, opts ...bind.ServerOption) *Server {
	t.Helper()
	srv := httptest.NewServer(table.Handler(opts...))
	t.Cleanup(srv.Close)
	return &Server{Server: srv}
}

// Transport returns an HTTPTransport pointed at the test server.
func (s *Server) Transport() *bind.HTTPTransport {
	return &bind.HTTPTransport{Base: s.Server.URL, Client: s.Server.Client()}
}

// Client builds a generated client for api over the test server.
func (s *Server) Client(api *bind.API) *bind.Client {
	return bind.NewClient(api, s.Transport())
}

// Call invokes a route through the client and fails the test on any error.
func Call[T any](t testing.TB, c *bind.Client, route string, args ...any) T {
	t.Helper()
	v, err := bind.Call[T](context.Background(), c, route, args...)
	if err != nil {
		t.Fatalf("bindtest: call %s: %v", route, err)
	}
	return v
}
