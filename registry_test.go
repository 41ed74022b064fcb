package bind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/bind"
)

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := bind.NewRegistry()
	require.NoError(t, reg.Register("UserId", bind.JSONType[UserId]("numeric user identifier")))

	c, err := reg.Resolve("UserId")
	require.NoError(t, err)
	assert.Equal(t, "numeric user identifier", c.Describe())
}

func TestRegistryResolveUnknown(t *testing.T) {
	t.Parallel()

	_, err := bind.NewRegistry().Resolve("Nope")

	var uerr *bind.UnknownTypeError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "Nope", uerr.Name)
}

func TestRegistryDuplicate(t *testing.T) {
	t.Parallel()

	reg := bind.NewRegistry()
	require.NoError(t, reg.Register("Name", bind.JSONType[Name]("first")))

	err := reg.Register("Name", bind.JSONType[Name]("second"))

	var derr *bind.DuplicateTypeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "Name", derr.Name)

	// The first registration stays in effect.
	c, err := reg.Resolve("Name")
	require.NoError(t, err)
	assert.Equal(t, "first", c.Describe())
}

func TestRegistryRejectsEmptyName(t *testing.T) {
	t.Parallel()

	err := bind.NewRegistry().Register("", bind.JSONType[Name]("unnamed"))
	assert.Error(t, err)
}

func TestRegistryTypesSorted(t *testing.T) {
	t.Parallel()

	reg := bind.NewRegistry().
		MustRegister("User", bind.JSONType[User]("user")).
		MustRegister("Name", bind.JSONType[Name]("name")).
		MustRegister("UserId", bind.JSONType[UserId]("id"))

	assert.Equal(t, []string{"Name", "User", "UserId"}, reg.Types())
}
