package bind_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bjaus/bind"
)

// Shared test types: the user API from the package documentation.

type UserId uint32

type Name string

type User struct {
	ID   UserId `json:"id"`
	Name Name   `json:"name"`
}

func newTestRegistry(t testing.TB) *bind.Registry {
	t.Helper()
	return bind.NewRegistry().
		MustRegister("UserId", bind.JSONType[UserId]("numeric user identifier")).
		MustRegister("Name", bind.JSONType[Name]("display name")).
		MustRegister("User", bind.JSONType[User]("a user record")).
		MustRegister("[]User", bind.JSONType[[]User]("a list of user records")).
		MustRegister("bool", bind.JSONType[bool]("true or false"))
}

// newUserAPI builds the two-route user schema used across tests.
func newUserAPI(t testing.TB) *bind.API {
	t.Helper()
	api, err := bind.NewSchema(newTestRegistry(t)).
		Route(http.MethodPost, "/user/create/{id:UserId}", "User",
			bind.WithBody("Name"),
			bind.WithName("user_create")).
		Route(http.MethodGet, "/user/get", "[]User",
			bind.WithQuery("sort", "bool"),
			bind.WithName("users_get")).
		Build()
	require.NoError(t, err)
	return api
}

func userCreate(_ context.Context, id UserId, name Name) (User, error) {
	return User{ID: id, Name: name}, nil
}

func usersGet(_ context.Context, sort bool) ([]User, error) {
	users := []User{{ID: 2, Name: "bob"}, {ID: 1, Name: "alice"}}
	if sort {
		users[0], users[1] = users[1], users[0]
	}
	return users, nil
}

// newUserTable binds the standard handlers to the user schema.
func newUserTable(t testing.TB) *bind.BindingTable {
	t.Helper()
	table, err := bind.Bind(newUserAPI(t),
		bind.Handle("user_create", userCreate),
		bind.Handle("users_get", usersGet),
	)
	require.NoError(t, err)
	return table
}
