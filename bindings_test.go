package bind_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/bind"
)

func TestBind(t *testing.T) {
	t.Parallel()

	table, err := bind.Bind(newUserAPI(t),
		bind.Handle("user_create", userCreate),
		bind.Handle("users_get", usersGet),
	)
	require.NoError(t, err)
	assert.NotNil(t, table)
}

func TestBindMissingHandler(t *testing.T) {
	t.Parallel()

	_, err := bind.Bind(newUserAPI(t),
		bind.Handle("user_create", userCreate),
	)

	var merr *bind.MissingHandlerError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "users_get", merr.Route)
}

func TestBindUnknownRoute(t *testing.T) {
	t.Parallel()

	_, err := bind.Bind(newUserAPI(t),
		bind.Handle("user_create", userCreate),
		bind.Handle("users_get", usersGet),
		bind.Handle("users_delete", usersGet),
	)

	var uerr *bind.UnknownRouteError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "users_delete", uerr.Name)
}

func TestBindDuplicateBinding(t *testing.T) {
	t.Parallel()

	table, err := bind.Bind(newUserAPI(t),
		bind.Handle("user_create", userCreate),
		bind.Handle("user_create", userCreate),
		bind.Handle("users_get", usersGet),
	)

	var derr *bind.DuplicateBindingError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "user_create", derr.Route)
	assert.Nil(t, table, "no partial table on construction failure")
}

func TestBindShapeMismatch(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		route   string
		handler any
		field   string
	}{
		"not a function": {
			route:   "user_create",
			handler: "not a func",
			field:   "ctx",
		},
		"missing ctx": {
			route:   "user_create",
			handler: func(id UserId, name Name) (User, error) { return User{}, nil },
			field:   "ctx",
		},
		"wrong capture type": {
			route:   "user_create",
			handler: func(_ context.Context, id int, name Name) (User, error) { return User{}, nil },
			field:   "id",
		},
		"swapped parameters": {
			route:   "user_create",
			handler: func(_ context.Context, name Name, id UserId) (User, error) { return User{}, nil },
			field:   "id",
		},
		"missing body": {
			route:   "user_create",
			handler: func(_ context.Context, id UserId) (User, error) { return User{}, nil },
			field:   "body",
		},
		"extra parameter": {
			route:   "user_create",
			handler: func(_ context.Context, id UserId, name Name, extra bool) (User, error) { return User{}, nil },
			field:   "arity",
		},
		"variadic": {
			route:   "user_create",
			handler: func(_ context.Context, args ...any) (User, error) { return User{}, nil },
			field:   "arity",
		},
		"wrong return": {
			route:   "user_create",
			handler: func(_ context.Context, id UserId, name Name) ([]User, error) { return nil, nil },
			field:   "return",
		},
		"missing error return": {
			route:   "user_create",
			handler: func(_ context.Context, id UserId, name Name) User { return User{} },
			field:   "return",
		},
		"wrong query type": {
			route:   "users_get",
			handler: func(_ context.Context, sort string) ([]User, error) { return nil, nil },
			field:   "sort",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			bindings := []bind.HandlerBinding{
				bind.Handle("user_create", userCreate),
				bind.Handle("users_get", usersGet),
			}
			for i := range bindings {
				if bindings[i].Route == tc.route {
					bindings[i].Handler = tc.handler
				}
			}

			_, err := bind.Bind(newUserAPI(t), bindings...)

			var serr *bind.ShapeMismatchError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tc.route, serr.Route)
			assert.Equal(t, tc.field, serr.Field)
		})
	}
}

func TestBindShapeEqualitySufficient(t *testing.T) {
	t.Parallel()

	// Any function with the exact declared shape binds, regardless of
	// where it comes from.
	handler := func(ctx context.Context, id UserId, name Name) (User, error) {
		return User{ID: id, Name: name}, nil
	}
	_, err := bind.Bind(newUserAPI(t),
		bind.Handle("user_create", handler),
		bind.Handle("users_get", usersGet),
	)
	assert.NoError(t, err)
}
