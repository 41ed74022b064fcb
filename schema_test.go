package bind_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/bind"
)

func TestSchemaBuild(t *testing.T) {
	t.Parallel()

	api := newUserAPI(t)

	routes := api.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "user_create", routes[0].Name())
	assert.Equal(t, http.MethodPost, routes[0].Method())
	assert.Equal(t, "/user/create/{id}", routes[0].Path())
	assert.Equal(t, []bind.Capture{{Name: "id", Type: "UserId"}}, routes[0].Captures())
	assert.Equal(t, "Name", routes[0].Body())
	assert.Equal(t, "User", routes[0].Returns())

	assert.Equal(t, "users_get", routes[1].Name())
	assert.Equal(t, []bind.QueryParam{{Name: "sort", Type: "bool", Required: true}}, routes[1].Query())
	assert.Equal(t, "[]User", routes[1].Returns())

	rt, ok := api.Route("user_create")
	require.True(t, ok)
	assert.Equal(t, routes[0], rt)
}

func TestSchemaBuildDefaultName(t *testing.T) {
	t.Parallel()

	api, err := bind.NewSchema(newTestRegistry(t)).
		Route(http.MethodGet, "/user/get", "[]User", bind.WithQuery("sort", "bool")).
		Build()
	require.NoError(t, err)

	_, ok := api.Route("GET /user/get")
	assert.True(t, ok)
}

func TestSchemaBuildUnknownType(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		build func(b *bind.SchemaBuilder) *bind.SchemaBuilder
		typ   string
	}{
		"capture": {
			build: func(b *bind.SchemaBuilder) *bind.SchemaBuilder {
				return b.Route(http.MethodGet, "/user/{id:AccountId}", "User")
			},
			typ: "AccountId",
		},
		"query": {
			build: func(b *bind.SchemaBuilder) *bind.SchemaBuilder {
				return b.Route(http.MethodGet, "/user/get", "[]User", bind.WithQuery("sort", "Order"))
			},
			typ: "Order",
		},
		"body": {
			build: func(b *bind.SchemaBuilder) *bind.SchemaBuilder {
				return b.Route(http.MethodPost, "/user/create", "User", bind.WithBody("Profile"))
			},
			typ: "Profile",
		},
		"returns": {
			build: func(b *bind.SchemaBuilder) *bind.SchemaBuilder {
				return b.Route(http.MethodGet, "/user/get", "UserPage")
			},
			typ: "UserPage",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := tc.build(bind.NewSchema(newTestRegistry(t))).Build()

			var uerr *bind.UnknownTypeError
			require.ErrorAs(t, err, &uerr)
			assert.Equal(t, tc.typ, uerr.Name)
			assert.NotEmpty(t, uerr.Route)
		})
	}
}

func TestSchemaBuildAmbiguousRoute(t *testing.T) {
	t.Parallel()

	_, err := bind.NewSchema(newTestRegistry(t)).
		Route(http.MethodGet, "/user/get", "[]User", bind.WithQuery("sort", "bool")).
		Route(http.MethodGet, "/user/get", "User").
		Build()

	var aerr *bind.AmbiguousRouteError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, http.MethodGet, aerr.Method)
	assert.Equal(t, "/user/get", aerr.Path)
}

func TestSchemaBuildConflictingCaptures(t *testing.T) {
	t.Parallel()

	// Two different placeholders at the same position cannot be told apart.
	_, err := bind.NewSchema(newTestRegistry(t)).
		Route(http.MethodGet, "/user/{id:UserId}", "User").
		Route(http.MethodDelete, "/user/{name:Name}", "User").
		Build()

	var aerr *bind.AmbiguousRouteError
	require.ErrorAs(t, err, &aerr)
}

func TestSchemaBuildSharedCaptureAllowed(t *testing.T) {
	t.Parallel()

	// The same placeholder at the same position is shared, not ambiguous.
	_, err := bind.NewSchema(newTestRegistry(t)).
		Route(http.MethodGet, "/user/{id:UserId}", "User").
		Route(http.MethodDelete, "/user/{id:UserId}", "User").
		Build()
	assert.NoError(t, err)
}

func TestSchemaBuildDuplicateCapture(t *testing.T) {
	t.Parallel()

	_, err := bind.NewSchema(newTestRegistry(t)).
		Route(http.MethodGet, "/user/{id:UserId}/friend/{id:UserId}", "User").
		Build()

	var derr *bind.DuplicateCaptureError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "id", derr.Name)
}

func TestSchemaBuildCaptureQueryCollision(t *testing.T) {
	t.Parallel()

	_, err := bind.NewSchema(newTestRegistry(t)).
		Route(http.MethodGet, "/user/{sort:UserId}", "User", bind.WithQuery("sort", "bool")).
		Build()

	var derr *bind.DuplicateCaptureError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "sort", derr.Name)
}

func TestSchemaBuildPatternErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"no leading slash": "user/get",
		"empty segment":    "/user//get",
		"bare capture":     "/user/{id}",
		"stray brace":      "/user/{id:UserId",
	}

	for name, pattern := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := bind.NewSchema(newTestRegistry(t)).
				Route(http.MethodGet, pattern, "User").
				Build()

			var perr *bind.PatternError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, pattern, perr.Pattern)
		})
	}
}

func TestSchemaBuildUnsupportedMethod(t *testing.T) {
	t.Parallel()

	_, err := bind.NewSchema(newTestRegistry(t)).
		Route("FETCH", "/user/get", "User").
		Build()

	var perr *bind.PatternError
	require.ErrorAs(t, err, &perr)
}

func TestSchemaBuildNonTextualCapture(t *testing.T) {
	t.Parallel()

	_, err := bind.NewSchema(newTestRegistry(t)).
		Route(http.MethodGet, "/user/{u:User}", "User").
		Build()

	var terr *bind.NotTextualError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "u", terr.Field)
	assert.Equal(t, "User", terr.Type)
}

func TestSchemaBuildDuplicateRouteName(t *testing.T) {
	t.Parallel()

	_, err := bind.NewSchema(newTestRegistry(t)).
		Route(http.MethodGet, "/user/get", "[]User", bind.WithQuery("sort", "bool"), bind.WithName("users")).
		Route(http.MethodGet, "/user/list", "[]User", bind.WithQuery("sort", "bool"), bind.WithName("users")).
		Build()

	var aerr *bind.AmbiguousRouteError
	require.ErrorAs(t, err, &aerr)
}
