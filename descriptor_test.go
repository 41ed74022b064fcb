package bind_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/bind"
)

func TestNewRequest(t *testing.T) {
	t.Parallel()

	req, err := bind.NewRequest(http.MethodGet, "/user/get", "sort=true&page=2", nil)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/user/get", req.Path)
	assert.Equal(t, url.Values{"sort": {"true"}, "page": {"2"}}, req.Query)
}

func TestNewRequestBadQuery(t *testing.T) {
	t.Parallel()

	_, err := bind.NewRequest(http.MethodGet, "/user/get", "sort=%zz", nil)
	assert.Error(t, err)
}

func TestResponseDescriptorOK(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		status int
		ok     bool
	}{
		"200": {status: 200, ok: true},
		"204": {status: 204, ok: true},
		"299": {status: 299, ok: true},
		"199": {status: 199, ok: false},
		"400": {status: 400, ok: false},
		"500": {status: 500, ok: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.ok, bind.ResponseDescriptor{Status: tc.status}.OK())
		})
	}
}
