package bind

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// Client exposes every route alternative as an ordinary function call. It
// encodes positional arguments into a RequestDescriptor, sends it through
// the injected Transport, and decodes the response with the route's return
// type. A Client holds no mutable state and is safe for concurrent use.
type Client struct {
	api       *API
	transport Transport
	calls     map[string]*clientCall
}

// clientCall is the per-route encoding plan, resolved once at construction.
type clientCall struct {
	route    *Route
	captures []TextCodec
	queries  []TextCodec
	body     Codec
	returns  Codec
	argTypes []reflect.Type
	argNames []string
}

// NewClient builds a client over an API and an injected transport. The API
// was validated at Build, so construction cannot fail.
func NewClient(api *API, t Transport) *Client {
	c := &Client{
		api:       api,
		transport: t,
		calls:     make(map[string]*clientCall, len(api.routes)),
	}
	for _, rt := range api.routes {
		cc := &clientCall{route: rt}
		for _, cp := range rt.captures {
			codec, _ := api.reg.Resolve(cp.Type)
			cc.captures = append(cc.captures, codec.(TextCodec))
			cc.argTypes = append(cc.argTypes, codec.GoType())
			cc.argNames = append(cc.argNames, cp.Name)
		}
		for _, q := range rt.query {
			codec, _ := api.reg.Resolve(q.Type)
			cc.queries = append(cc.queries, codec.(TextCodec))
			cc.argTypes = append(cc.argTypes, codec.GoType())
			cc.argNames = append(cc.argNames, q.Name)
		}
		if rt.body != "" {
			cc.body, _ = api.reg.Resolve(rt.body)
			cc.argTypes = append(cc.argTypes, cc.body.GoType())
			cc.argNames = append(cc.argNames, "body")
		}
		cc.returns, _ = api.reg.Resolve(rt.returns)
		c.calls[rt.name] = cc
	}
	return c
}

// CallFunc is one generated callable: captures, query parameters, and body
// as positional arguments in declared order.
type CallFunc func(ctx context.Context, args ...any) (any, error)

// Callable resolves the callable for a named route.
func (c *Client) Callable(route string) (CallFunc, error) {
	cc, ok := c.calls[route]
	if !ok {
		return nil, &UnknownRouteError{Name: route}
	}
	return func(ctx context.Context, args ...any) (any, error) {
		return c.call(ctx, cc, args)
	}, nil
}

// Call invokes a named route. Arguments are checked against the route's
// declared shape before anything is sent, so a shape error never reaches
// the transport.
func (c *Client) Call(ctx context.Context, route string, args ...any) (any, error) {
	cc, ok := c.calls[route]
	if !ok {
		return nil, &UnknownRouteError{Name: route}
	}
	return c.call(ctx, cc, args)
}

// Call invokes a named route and asserts its decoded return value to T.
func Call[T any](ctx context.Context, c *Client, route string, args ...any) (T, error) {
	var zero T
	v, err := c.Call(ctx, route, args...)
	if err != nil {
		return zero, err
	}
	tv, ok := v.(T)
	if !ok {
		return zero, &DecodeError{Route: route, Err: fmt.Errorf("want %T, got %T", zero, v)}
	}
	return tv, nil
}

func (c *Client) call(ctx context.Context, cc *clientCall, args []any) (any, error) {
	rt := cc.route
	if err := c.checkArgs(cc, args); err != nil {
		return nil, err
	}

	// Captures into the path template.
	var sb strings.Builder
	nc := 0
	for _, s := range rt.segments {
		sb.WriteByte('/')
		if s.capture {
			text, err := cc.captures[nc].EncodeText(args[nc])
			if err != nil {
				return nil, fmt.Errorf("bind: route %s: encode capture %s: %w", rt.name, s.name, err)
			}
			sb.WriteString(url.PathEscape(text))
			nc++
		} else {
			sb.WriteString(s.literal)
		}
	}
	path := sb.String()
	if path == "" {
		path = "/"
	}

	// Query parameters.
	query := url.Values{}
	for i, q := range rt.query {
		text, err := cc.queries[i].EncodeText(args[len(rt.captures)+i])
		if err != nil {
			return nil, fmt.Errorf("bind: route %s: encode query %s: %w", rt.name, q.Name, err)
		}
		query.Set(q.Name, text)
	}

	// Body.
	var body []byte
	if cc.body != nil {
		var err error
		body, err = cc.body.Encode(args[len(args)-1])
		if err != nil {
			return nil, fmt.Errorf("bind: route %s: encode body: %w", rt.name, err)
		}
	}

	resp, err := c.transport.Send(ctx, RequestDescriptor{
		Method: rt.method,
		Path:   path,
		Query:  query,
		Body:   body,
	})
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if !resp.OK() {
		rerr := &RemoteError{Status: resp.Status}
		// Best effort: a non-problem body still surfaces as a RemoteError.
		if err := json.Unmarshal(resp.Body, &rerr.Problem); err != nil {
			rerr.Problem = ProblemDetail{Status: resp.Status, Detail: string(resp.Body)}
		}
		return nil, rerr
	}

	v, err := cc.returns.Decode(resp.Body)
	if err != nil {
		return nil, &DecodeError{Route: rt.name, Err: err}
	}
	return v, nil
}

// checkArgs applies the same structural shape rule Bind applies to
// handlers, to the caller's argument list.
func (c *Client) checkArgs(cc *clientCall, args []any) error {
	for i, want := range cc.argTypes {
		if i >= len(args) {
			return &ShapeMismatchError{Route: cc.route.name, Field: cc.argNames[i], Want: want}
		}
		got := reflect.TypeOf(args[i])
		if got != want {
			return &ShapeMismatchError{Route: cc.route.name, Field: cc.argNames[i], Want: want, Got: got}
		}
	}
	if len(args) > len(cc.argTypes) {
		return &ShapeMismatchError{Route: cc.route.name, Field: "arity", Got: reflect.TypeOf(args[len(cc.argTypes)])}
	}
	return nil
}
