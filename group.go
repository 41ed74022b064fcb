package bind

// Group declares routes under a shared path prefix, so related alternatives
// read as one block:
//
//	user := b.Group("/user")
//	user.Route(http.MethodPost, "/create/{id:UserId}", "User", bind.WithBody("Name"))
//	user.Route(http.MethodGet, "/get", "[]User", bind.WithQuery("sort", "bool"))
type Group struct {
	builder *SchemaBuilder
	prefix  string
}

// Group creates a route group with the given prefix. Nested groups compose
// their prefixes.
func (b *SchemaBuilder) Group(prefix string) *Group {
	return &Group{builder: b, prefix: prefix}
}

// Group creates a nested group.
func (g *Group) Group(prefix string) *Group {
	return &Group{builder: g.builder, prefix: g.prefix + prefix}
}

// Route declares a route alternative under the group's prefix. Validation
// happens in the builder's Build, exactly as for ungrouped routes.
func (g *Group) Route(method, pattern, returns string, opts ...RouteOption) *Group {
	g.builder.Route(method, g.prefix+pattern, returns, opts...)
	return g
}
