package bind

import (
	"strings"
)

// Capture is a typed path placeholder: /user/create/{id:UserId} declares
// Capture{Name: "id", Type: "UserId"}.
type Capture struct {
	Name string
	Type string
}

// QueryParam is a typed query parameter. A required parameter that is absent
// from a request produces a BadRequest response; an optional one decodes
// Default instead.
type QueryParam struct {
	Name     string
	Type     string
	Required bool
	Default  string
}

// Route is one route alternative: a (method, path) pair with its captures,
// query parameters, optional body type, and return type. Routes are built
// by SchemaBuilder and immutable once the API is built.
type Route struct {
	name     string
	method   string
	pattern  string
	segments []segment
	captures []Capture
	query    []QueryParam
	body     string
	returns  string
	summary  string
}

// segment is one parsed pattern element: either a literal or a capture.
type segment struct {
	literal string
	capture bool
	name    string
	typ     string
}

// Name returns the route's identity, used as the Bind key and the client
// callable id. Defaults to "METHOD /pattern" unless set with WithName.
func (rt *Route) Name() string { return rt.name }

// Method returns the route's HTTP method.
func (rt *Route) Method() string { return rt.method }

// Path returns the route's pattern with bare capture names, e.g.
// "/user/create/{id}".
func (rt *Route) Path() string {
	var sb strings.Builder
	for _, s := range rt.segments {
		sb.WriteByte('/')
		if s.capture {
			sb.WriteByte('{')
			sb.WriteString(s.name)
			sb.WriteByte('}')
		} else {
			sb.WriteString(s.literal)
		}
	}
	if sb.Len() == 0 {
		return "/"
	}
	return sb.String()
}

// Captures returns the route's captures in path order.
func (rt *Route) Captures() []Capture { return rt.captures }

// Query returns the route's query parameters in declared order.
func (rt *Route) Query() []QueryParam { return rt.query }

// Body returns the body type name, or "" when the route takes no body.
func (rt *Route) Body() string { return rt.body }

// Returns returns the route's return type name.
func (rt *Route) Returns() string { return rt.returns }

// Summary returns the route's doc summary.
func (rt *Route) Summary() string { return rt.summary }

// RouteOption configures a route at declaration time.
type RouteOption func(*Route)

// WithName sets the route's identity. Without it the identity is
// "METHOD /pattern".
func WithName(name string) RouteOption {
	return func(rt *Route) {
		rt.name = name
	}
}

// WithBody declares the request body type.
func WithBody(typeName string) RouteOption {
	return func(rt *Route) {
		rt.body = typeName
	}
}

// WithQuery declares a required query parameter.
func WithQuery(name, typeName string) RouteOption {
	return func(rt *Route) {
		rt.query = append(rt.query, QueryParam{Name: name, Type: typeName, Required: true})
	}
}

// WithOptionalQuery declares an optional query parameter. When the request
// omits it, defaultText is decoded in its place.
func WithOptionalQuery(name, typeName, defaultText string) RouteOption {
	return func(rt *Route) {
		rt.query = append(rt.query, QueryParam{Name: name, Type: typeName, Default: defaultText})
	}
}

// WithSummary sets a one-line doc summary for the route.
func WithSummary(s string) RouteOption {
	return func(rt *Route) {
		rt.summary = s
	}
}
