package bind

import (
	"context"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// HandlerBinding pairs a route name with a handler function. The handler's
// signature must be
//
//	func(ctx context.Context, captures..., queries..., body?) (Ret, error)
//
// with parameter types equal to the Go types of the route's declared type
// names, in declared order, and Ret equal to the return type.
type HandlerBinding struct {
	Route   string
	Handler any
}

// Handle is shorthand for a HandlerBinding literal.
func Handle(route string, handler any) HandlerBinding {
	return HandlerBinding{Route: route, Handler: handler}
}

// BindingTable is the validated association between routes and handlers.
// Bind checks every handler's shape eagerly, so a table that constructs
// successfully can never hit a shape error at request time. The table is
// immutable and safe for concurrent dispatch.
type BindingTable struct {
	api      *API
	bound    map[string]*boundRoute
	validate *validator.Validate
}

// boundRoute carries everything dispatch needs for one route, resolved once.
type boundRoute struct {
	route    *Route
	fn       reflect.Value
	captures []TextCodec
	queries  []TextCodec
	body     Codec
	returns  Codec
}

var (
	ctxType = reflect.TypeFor[context.Context]()
	errType = reflect.TypeFor[error]()
)

// Bind validates handlers against the API and produces a BindingTable.
// Every route must be bound exactly once; every binding must name a route;
// every handler must match its route's shape. The first violation aborts
// with a construction error, and no partial table is returned.
func Bind(api *API, bindings ...HandlerBinding) (*BindingTable, error) {
	bt := &BindingTable{
		api:      api,
		bound:    make(map[string]*boundRoute, len(bindings)),
		validate: validator.New(),
	}

	for _, hb := range bindings {
		rt, ok := api.Route(hb.Route)
		if !ok {
			return nil, &UnknownRouteError{Name: hb.Route}
		}
		if _, dup := bt.bound[rt.name]; dup {
			return nil, &DuplicateBindingError{Route: rt.name}
		}

		br, err := bt.check(rt, hb.Handler)
		if err != nil {
			return nil, err
		}
		bt.bound[rt.name] = br
	}

	for _, rt := range api.routes {
		if _, ok := bt.bound[rt.name]; !ok {
			return nil, &MissingHandlerError{Route: rt.name}
		}
	}

	return bt, nil
}

// API returns the schema model this table was bound against.
func (bt *BindingTable) API() *API { return bt.api }

// check verifies one handler's shape against its route and resolves the
// route's codecs.
func (bt *BindingTable) check(rt *Route, handler any) (*boundRoute, error) {
	fn := reflect.ValueOf(handler)
	if !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
		return nil, &ShapeMismatchError{Route: rt.name, Field: "ctx", Want: ctxType, Got: reflect.TypeOf(handler)}
	}
	t := fn.Type()
	if t.IsVariadic() {
		return nil, &ShapeMismatchError{Route: rt.name, Field: "arity", Got: t.In(t.NumIn() - 1)}
	}

	// Expected parameter list: ctx, captures, queries, body?.
	type param struct {
		field string
		typ   reflect.Type
	}
	want := []param{{field: "ctx", typ: ctxType}}

	br := &boundRoute{route: rt, fn: fn}
	for _, c := range rt.captures {
		codec, _ := bt.api.reg.Resolve(c.Type)
		br.captures = append(br.captures, codec.(TextCodec))
		want = append(want, param{field: c.Name, typ: codec.GoType()})
	}
	for _, q := range rt.query {
		codec, _ := bt.api.reg.Resolve(q.Type)
		br.queries = append(br.queries, codec.(TextCodec))
		want = append(want, param{field: q.Name, typ: codec.GoType()})
	}
	if rt.body != "" {
		br.body, _ = bt.api.reg.Resolve(rt.body)
		want = append(want, param{field: "body", typ: br.body.GoType()})
	}
	br.returns, _ = bt.api.reg.Resolve(rt.returns)

	for i, p := range want {
		if i >= t.NumIn() {
			return nil, &ShapeMismatchError{Route: rt.name, Field: p.field, Want: p.typ}
		}
		if p.typ == ctxType {
			if !t.In(i).Implements(ctxType) && t.In(i) != ctxType {
				return nil, &ShapeMismatchError{Route: rt.name, Field: p.field, Want: p.typ, Got: t.In(i)}
			}
			continue
		}
		if t.In(i) != p.typ {
			return nil, &ShapeMismatchError{Route: rt.name, Field: p.field, Want: p.typ, Got: t.In(i)}
		}
	}
	if t.NumIn() > len(want) {
		return nil, &ShapeMismatchError{Route: rt.name, Field: "arity", Got: t.In(len(want))}
	}

	if t.NumOut() != 2 || t.Out(1) != errType {
		var got reflect.Type
		if t.NumOut() > 0 {
			got = t.Out(0)
		}
		return nil, &ShapeMismatchError{Route: rt.name, Field: "return", Want: br.returns.GoType(), Got: got}
	}
	if t.Out(0) != br.returns.GoType() {
		return nil, &ShapeMismatchError{Route: rt.name, Field: "return", Want: br.returns.GoType(), Got: t.Out(0)}
	}

	return br, nil
}
