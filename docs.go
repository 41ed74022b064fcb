package bind

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParamDoc documents one capture or query parameter.
type ParamDoc struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
	Default     string `yaml:"default,omitempty"`
}

// TypeDoc documents a body or return type.
type TypeDoc struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
}

// RouteDoc is the doc renderer's projection of one route.
type RouteDoc struct {
	Name     string     `yaml:"name"`
	Method   string     `yaml:"method"`
	Path     string     `yaml:"path"`
	Summary  string     `yaml:"summary,omitempty"`
	Captures []ParamDoc `yaml:"captures,omitempty"`
	Query    []ParamDoc `yaml:"query,omitempty"`
	Body     *TypeDoc   `yaml:"body,omitempty"`
	Returns  TypeDoc    `yaml:"returns"`
}

// Docs projects the schema into route descriptions, in declaration order.
// It reads only the immutable API: no side effects, no network.
func Docs(api *API) []RouteDoc {
	docs := make([]RouteDoc, 0, len(api.routes))
	for _, rt := range api.routes {
		d := RouteDoc{
			Name:    rt.name,
			Method:  rt.method,
			Path:    rt.Path(),
			Summary: rt.summary,
			Returns: TypeDoc{Type: rt.returns, Description: describe(api, rt.returns)},
		}
		for _, c := range rt.captures {
			d.Captures = append(d.Captures, ParamDoc{
				Name:        c.Name,
				Type:        c.Type,
				Description: describe(api, c.Type),
				Required:    true,
			})
		}
		for _, q := range rt.query {
			d.Query = append(d.Query, ParamDoc{
				Name:        q.Name,
				Type:        q.Type,
				Description: describe(api, q.Type),
				Required:    q.Required,
				Default:     q.Default,
			})
		}
		if rt.body != "" {
			d.Body = &TypeDoc{Type: rt.body, Description: describe(api, rt.body)}
		}
		docs = append(docs, d)
	}
	return docs
}

func describe(api *API, typeName string) string {
	c, err := api.reg.Resolve(typeName)
	if err != nil {
		// Unreachable after Build, which resolves every type name.
		return ""
	}
	return c.Describe()
}

// WriteText renders plain-text documentation, one block per route.
func WriteText(w io.Writer, api *API) error {
	for i, d := range Docs(api) {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeRouteText(w, d); err != nil {
			return err
		}
	}
	return nil
}

func writeRouteText(w io.Writer, d RouteDoc) error {
	if _, err := fmt.Fprintf(w, "%s %s\n", d.Method, d.Path); err != nil {
		return err
	}
	if d.Summary != "" {
		if _, err := fmt.Fprintf(w, "  %s\n", d.Summary); err != nil {
			return err
		}
	}
	for _, c := range d.Captures {
		if _, err := fmt.Fprintf(w, "  capture %s: %s (%s)\n", c.Name, c.Type, c.Description); err != nil {
			return err
		}
	}
	for _, q := range d.Query {
		opt := "required"
		if !q.Required {
			opt = fmt.Sprintf("optional, default %q", q.Default)
		}
		if _, err := fmt.Fprintf(w, "  query %s: %s (%s) [%s]\n", q.Name, q.Type, q.Description, opt); err != nil {
			return err
		}
	}
	if d.Body != nil {
		if _, err := fmt.Fprintf(w, "  body: %s (%s)\n", d.Body.Type, d.Body.Description); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  returns: %s (%s)\n", d.Returns.Type, d.Returns.Description)
	return err
}

// RenderYAML marshals the route docs as YAML, for consumers that want a
// machine-readable projection of the schema.
func RenderYAML(api *API) ([]byte, error) {
	return yaml.Marshal(Docs(api))
}
