package bind

import (
	"net/http"
	"slices"
	"strings"
)

// methods is the fixed set of route methods a schema may declare.
var methods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// SchemaBuilder accumulates route declarations and produces an immutable
// API on Build. All validation (unknown types, ambiguous routes, capture
// collisions) happens in Build, so a schema error is always a startup
// failure.
type SchemaBuilder struct {
	reg    *Registry
	routes []*Route
	err    error
}

// NewSchema creates a schema builder over the given type registry.
func NewSchema(reg *Registry) *SchemaBuilder {
	return &SchemaBuilder{reg: reg}
}

// Route declares one route alternative. The pattern mixes literal segments
// with typed captures:
//
//	b.Route(http.MethodPost, "/user/create/{id:UserId}", "User",
//	    bind.WithBody("Name"),
//	    bind.WithName("user_create"))
//
// returns names the response type. Route never fails; errors are reported
// by Build.
func (b *SchemaBuilder) Route(method, pattern, returns string, opts ...RouteOption) *SchemaBuilder {
	rt := &Route{
		method:  method,
		pattern: pattern,
		returns: returns,
	}

	segs, err := parsePattern(pattern)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	rt.segments = segs
	for _, s := range segs {
		if s.capture {
			rt.captures = append(rt.captures, Capture{Name: s.name, Type: s.typ})
		}
	}

	for _, opt := range opts {
		opt(rt)
	}
	if rt.name == "" {
		rt.name = method + " " + rt.Path()
	}

	b.routes = append(b.routes, rt)
	return b
}

// Build validates every declaration and returns the immutable API. The
// first problem found aborts the build with a construction error naming the
// offending route, type, or field.
func (b *SchemaBuilder) Build() (*API, error) {
	if b.err != nil {
		return nil, b.err
	}

	api := &API{
		reg:    b.reg,
		routes: slices.Clone(b.routes),
		byName: make(map[string]*Route, len(b.routes)),
		root:   newTrieNode(),
	}

	for _, rt := range b.routes {
		if !methods[rt.method] {
			return nil, &PatternError{Pattern: rt.pattern, Reason: "unsupported method " + rt.method}
		}

		if err := b.checkParams(rt); err != nil {
			return nil, err
		}
		if err := b.checkTypes(rt); err != nil {
			return nil, err
		}

		if _, taken := api.byName[rt.name]; taken {
			return nil, &AmbiguousRouteError{
				Method: rt.method,
				Path:   rt.Path(),
				Reason: "route name " + rt.name + " already in use",
			}
		}
		api.byName[rt.name] = rt

		if err := api.root.insert(rt.segments, rt); err != nil {
			return nil, err
		}
	}

	return api, nil
}

// checkParams rejects duplicate names within a route's parameter namespace
// (captures and query parameters combined).
func (b *SchemaBuilder) checkParams(rt *Route) error {
	seen := make(map[string]bool)
	for _, c := range rt.captures {
		if seen[c.Name] {
			return &DuplicateCaptureError{Route: rt.name, Name: c.Name}
		}
		seen[c.Name] = true
	}
	for _, q := range rt.query {
		if seen[q.Name] {
			return &DuplicateCaptureError{Route: rt.name, Name: q.Name}
		}
		seen[q.Name] = true
	}
	return nil
}

// checkTypes resolves every type name a route references. Captures and
// query parameters additionally need text decoding.
func (b *SchemaBuilder) checkTypes(rt *Route) error {
	for _, c := range rt.captures {
		if err := b.resolveTextual(rt, c.Name, c.Type); err != nil {
			return err
		}
	}
	for _, q := range rt.query {
		if err := b.resolveTextual(rt, q.Name, q.Type); err != nil {
			return err
		}
	}
	if rt.body != "" {
		if _, err := b.reg.Resolve(rt.body); err != nil {
			return &UnknownTypeError{Name: rt.body, Route: rt.name}
		}
	}
	if _, err := b.reg.Resolve(rt.returns); err != nil {
		return &UnknownTypeError{Name: rt.returns, Route: rt.name}
	}
	return nil
}

func (b *SchemaBuilder) resolveTextual(rt *Route, field, typeName string) error {
	c, err := b.reg.Resolve(typeName)
	if err != nil {
		return &UnknownTypeError{Name: typeName, Route: rt.name}
	}
	if _, ok := c.(TextCodec); !ok {
		return &NotTextualError{Route: rt.name, Field: field, Type: typeName}
	}
	return nil
}

// parsePattern splits a route pattern into literal and capture segments.
// Captures use the {name:Type} form.
func parsePattern(pattern string) ([]segment, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, &PatternError{Pattern: pattern, Reason: "must begin with /"}
	}
	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		return nil, nil
	}

	var segs []segment
	for part := range strings.SplitSeq(trimmed, "/") {
		switch {
		case part == "":
			return nil, &PatternError{Pattern: pattern, Reason: "empty segment"}
		case strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}"):
			name, typ, ok := strings.Cut(part[1:len(part)-1], ":")
			if !ok || name == "" || typ == "" {
				return nil, &PatternError{Pattern: pattern, Reason: "capture must be {name:Type}"}
			}
			segs = append(segs, segment{capture: true, name: name, typ: typ})
		case strings.ContainsAny(part, "{}"):
			return nil, &PatternError{Pattern: pattern, Reason: "stray brace in segment " + part}
		default:
			segs = append(segs, segment{literal: part})
		}
	}
	return segs, nil
}

// API is the immutable schema model: every declared route, a lookup by
// name, and the path trie used for dispatch. Built once by
// SchemaBuilder.Build and safe for concurrent use thereafter.
type API struct {
	reg    *Registry
	routes []*Route
	byName map[string]*Route
	root   *trieNode
}

// Routes returns all routes in declaration order.
func (a *API) Routes() []*Route {
	return slices.Clone(a.routes)
}

// Route looks up a route by name.
func (a *API) Route(name string) (*Route, bool) {
	rt, ok := a.byName[name]
	return rt, ok
}
