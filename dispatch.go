package bind

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Dispatch resolves one request against the schema, decodes its typed
// inputs, invokes the bound handler, and encodes the result. It is a pure
// function of the immutable table and the descriptor: no state is retained
// between calls, and concurrent dispatches are independent.
//
// Failure order matches the decode order (path match, method, captures,
// query parameters, body) and the first failure wins; a handler is never
// invoked on malformed input.
func (bt *BindingTable) Dispatch(ctx context.Context, req RequestDescriptor) ResponseDescriptor {
	if ctx == nil {
		ctx = context.Background()
	}

	node, texts, ok := bt.api.root.match(req.Path)
	if !ok {
		return problem(http.StatusNotFound, "not found", "no route matches "+req.Path, "")
	}

	rt, ok := node.routes[req.Method]
	if !ok {
		return problem(http.StatusMethodNotAllowed, "method not allowed",
			fmt.Sprintf("%s is not allowed on %s", req.Method, req.Path), "")
	}
	br := bt.bound[rt.name]

	args := make([]reflect.Value, 0, 2+len(rt.captures)+len(rt.query))
	args = append(args, reflect.ValueOf(ctx))

	for i, c := range rt.captures {
		v, err := br.captures[i].DecodeText(texts[i])
		if err != nil {
			return badRequest(c.Name, fmt.Sprintf("capture %s: %v", c.Name, err))
		}
		args = append(args, reflect.ValueOf(v))
	}

	for i, q := range rt.query {
		text, present := queryValue(req.Query, q.Name)
		if !present {
			if q.Required {
				return badRequest(q.Name, "missing required query parameter "+q.Name)
			}
			text = q.Default
		}
		v, err := br.queries[i].DecodeText(text)
		if err != nil {
			return badRequest(q.Name, fmt.Sprintf("query parameter %s: %v", q.Name, err))
		}
		args = append(args, reflect.ValueOf(v))
	}

	if rt.body != "" {
		v, err := br.body.Decode(req.Body)
		if err != nil {
			return badRequest("body", fmt.Sprintf("body: %v", err))
		}
		if sv, ok := v.(SelfValidator); ok {
			if err := sv.Validate(); err != nil {
				return badRequest("body", fmt.Sprintf("body: %v", err))
			}
		}
		if field, err := bt.validateBody(v); err != nil {
			return badRequest(field, fmt.Sprintf("body: %v", err))
		}
		args = append(args, reflect.ValueOf(v))
	}

	out := br.fn.Call(args)
	if errv := out[1]; !errv.IsNil() {
		herr := &HandlerError{Err: errv.Interface().(error)}
		return problem(herr.StatusCode(), "handler error", herr.Error(), "")
	}

	body, err := br.returns.Encode(out[0].Interface())
	if err != nil {
		return problem(http.StatusInternalServerError, "internal error",
			fmt.Sprintf("encode response: %v", err), "")
	}
	return ResponseDescriptor{Status: http.StatusOK, Body: body}
}

// validateBody runs validate struct tags on struct-shaped bodies. Non-struct
// bodies pass through untouched.
func (bt *BindingTable) validateBody(v any) (field string, err error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return "", nil
	}

	err = bt.validate.Struct(rv.Interface())
	if err == nil {
		return "", nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), err
	}
	return "body", err
}

// queryValue looks up one query parameter, distinguishing absent from empty.
func queryValue(q map[string][]string, name string) (string, bool) {
	vals, ok := q[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// badRequest builds a 400 response naming the field that failed to decode.
func badRequest(field, detail string) ResponseDescriptor {
	return problem(http.StatusBadRequest, "bad request", detail, field)
}

// problem encodes a ProblemDetail response body.
func problem(status int, title, detail, field string) ResponseDescriptor {
	p := ProblemDetail{Status: status, Title: title, Detail: detail, Field: field}
	body, err := json.Marshal(p)
	if err != nil {
		// ProblemDetail is all plain fields; marshal cannot fail.
		body = []byte(`{"status":500,"title":"internal error"}`)
		status = http.StatusInternalServerError
	}
	return ResponseDescriptor{Status: status, Body: body}
}
