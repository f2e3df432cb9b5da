package catapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const breedsPayload = `[
	{"name": "British Shorthair", "alt_names": "Brit, Britannica"},
	{"name": "Abyssinian"},
	{"name": "Aegean", "alt_names": ""}
]`

func newRegistry(t *testing.T, status int, body string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestValidateBreed(t *testing.T) {
	t.Run("matches primary name", func(t *testing.T) {
		registry, _ := newRegistry(t, http.StatusOK, breedsPayload)
		client := NewCatAPIClient(registry.URL, time.Second)
		assert.NoError(t, client.ValidateBreed(context.Background(), "Abyssinian"))
	})

	t.Run("matches primary name case-insensitively", func(t *testing.T) {
		registry, _ := newRegistry(t, http.StatusOK, breedsPayload)
		client := NewCatAPIClient(registry.URL, time.Second)
		assert.NoError(t, client.ValidateBreed(context.Background(), "bRiTiSh sHoRtHaIr"))
	})

	t.Run("matches trimmed alt name", func(t *testing.T) {
		registry, _ := newRegistry(t, http.StatusOK, breedsPayload)
		client := NewCatAPIClient(registry.URL, time.Second)

		assert.NoError(t, client.ValidateBreed(context.Background(), "Brit"))
		assert.NoError(t, client.ValidateBreed(context.Background(), "britannica"))
	})

	t.Run("unknown breed", func(t *testing.T) {
		registry, _ := newRegistry(t, http.StatusOK, breedsPayload)
		client := NewCatAPIClient(registry.URL, time.Second)

		err := client.ValidateBreed(context.Background(), "Dog")
		assert.ErrorIs(t, err, ErrUnknownBreed)
	})

	t.Run("non-200 response is unavailability, not unknown breed", func(t *testing.T) {
		registry, _ := newRegistry(t, http.StatusInternalServerError, "boom")
		client := NewCatAPIClient(registry.URL, time.Second)

		err := client.ValidateBreed(context.Background(), "Abyssinian")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnknownBreed)

		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	})

	t.Run("no caching between calls", func(t *testing.T) {
		registry, calls := newRegistry(t, http.StatusOK, breedsPayload)
		client := NewCatAPIClient(registry.URL, time.Second)

		require.NoError(t, client.ValidateBreed(context.Background(), "Abyssinian"))
		require.NoError(t, client.ValidateBreed(context.Background(), "Abyssinian"))
		assert.Equal(t, 2, *calls)
	})

	t.Run("unreachable registry", func(t *testing.T) {
		client := NewCatAPIClient("http://127.0.0.1:1", 100*time.Millisecond)
		err := client.ValidateBreed(context.Background(), "Abyssinian")
		assert.Error(t, err)
	})
}
