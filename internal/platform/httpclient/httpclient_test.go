package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k1", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(`{"name":"milo"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("nope"))
		}
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", 0, WithHeader("X-Api-Key", "k1"))
	require.NoError(t, err)

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.DoJSON(context.Background(), http.MethodPost, "ok", nil, map[string]string{"a": "b"}, &out))
	assert.Equal(t, "milo", out.Name)

	err = c.DoJSON(context.Background(), http.MethodPost, "/deny", nil, struct{}{}, nil)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.True(t, se.Rejected())
	assert.Equal(t, "nope", se.Body)
}

func TestResolve(t *testing.T) {
	c, err := New("", 0)
	require.NoError(t, err)
	_, err = c.resolve("/x")
	assert.Error(t, err)
	u, err := c.resolve("https://idp.example.com/x")
	require.NoError(t, err)
	assert.Equal(t, "https://idp.example.com/x", u)

	_, err = New("::bad", 0)
	assert.Error(t, err)

	var nilClient *Client
	assert.ErrorIs(t, nilClient.DoJSON(context.Background(), http.MethodGet, "/", nil, nil, nil), ErrNilClient)
}
