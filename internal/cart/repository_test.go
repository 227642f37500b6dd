package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"maison-storefront/internal/apiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T, h http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := apiclient.New(apiclient.Options{BaseURL: srv.URL, Timeout: time.Second, RetryInterval: time.Millisecond})
	require.NoError(t, err)
	return c
}

func TestRepository_SetQuantity(t *testing.T) {
	client := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/cart", r.URL.Path)
		assert.Equal(t, "sess-1", r.Header.Get(SessionIDHeader))

		var body cartMutation
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, cartMutation{ProductID: "p-vase", Quantity: 0}, body)

		_, _ = w.Write([]byte(`{"data":{"items":[{"productId":"p-lamp","name":"Lamp","price":40,"quantity":1}]}}`))
	})

	items, err := NewRepository(client).SetQuantity(context.Background(), "sess-1", "p-vase", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p-lamp", items[0].ProductID)
	assert.Equal(t, "40", items[0].Price.String())
}

func TestRepository_Add(t *testing.T) {
	client := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"data":{"items":[]}}`))
	})

	items, err := NewRepository(client).Add(context.Background(), "sess-1", "p-vase", 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRepository_RejectsInvalidLines(t *testing.T) {
	client := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"items":[{"productId":"","quantity":1}]}}`))
	})

	_, err := NewRepository(client).Get(context.Background(), "sess-1")
	assert.ErrorIs(t, err, apiclient.ErrInvalidResponse)
}

func TestRepository_Clear(t *testing.T) {
	client := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, NewRepository(client).Clear(context.Background(), "sess-1"))
}
