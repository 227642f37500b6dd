package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"maison-storefront/internal/apiclient"
	"maison-storefront/internal/notice"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listBody = `{"data":{"%s":[%s],"pagination":{"currentPage":1,"totalPages":1,"totalItems":%d,"itemsPerPage":10,"hasNextPage":false,"hasPrevPage":false,"nextPage":null,"prevPage":null}}}`

func newService(t *testing.T, h http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := apiclient.New(apiclient.Options{BaseURL: srv.URL, Timeout: time.Second, RetryInterval: time.Millisecond})
	require.NoError(t, err)
	return NewService(c)
}

func resource(t *testing.T, name string) Resource {
	t.Helper()
	r, err := Lookup(name)
	require.NoError(t, err)
	return r
}

func TestService_List(t *testing.T) {
	t.Run("Decodes rows and pagination", func(t *testing.T) {
		svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/orders", r.URL.Path)
			assert.Equal(t, "Pending", r.URL.Query().Get("status"))
			assert.Equal(t, "total", r.URL.Query().Get("sortBy"))
			fmt.Fprintf(w, listBody, "orders", `{"id":"o-1","status":"Pending","total":231}`, 1)
		})

		q := NewListQuery().SetFilter("status", "Pending").ToggleSort("total")
		page, err := svc.List(t.Context(), resource(t, "orders"), q)
		require.NoError(t, err)

		require.Len(t, page.Rows, 1)
		assert.Equal(t, "o-1", page.Rows[0].ID())
		assert.Equal(t, "Pending", page.Rows[0].Status())
		assert.Equal(t, 1, page.Pagination.TotalItems)
		assert.Equal(t, "orders", page.Resource)
	})

	t.Run("Missing item key", func(t *testing.T) {
		svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, listBody, "items", "", 0)
		})

		_, err := svc.List(t.Context(), resource(t, "users"), NewListQuery())
		assert.ErrorIs(t, err, ErrMissingItems)
	})

	t.Run("Invalid pagination", func(t *testing.T) {
		svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"users":[],"pagination":{"currentPage":0,"itemsPerPage":0}}}`))
		})

		_, err := svc.List(t.Context(), resource(t, "users"), NewListQuery())
		assert.ErrorIs(t, err, apiclient.ErrInvalidResponse)
	})
}

func TestService_Delete(t *testing.T) {
	var methods []string
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		fmt.Fprintf(w, listBody, "collections", "", 0)
	})

	page, err := svc.Delete(t.Context(), resource(t, "collections"), "c-1", NewListQuery())
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
	assert.Equal(t, []string{"DELETE /api/collections/c-1", "GET /api/collections"}, methods)

	_, err = svc.Delete(t.Context(), resource(t, "collections"), " ", NewListQuery())
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestService_UpdateStatus(t *testing.T) {
	calls := 0
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/contact/m-1", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// the backend answers with its own view of the row
		_, _ = fmt.Fprintf(w, `{"data":{"id":"m-1","status":%q,"subject":"Hello"}}`, body["status"])
	})

	t.Run("Rejected before any request", func(t *testing.T) {
		_, err := svc.UpdateStatus(t.Context(), resource(t, "messages"), "m-1", "archived")
		assert.ErrorIs(t, err, ErrInvalidStatus)

		_, err = svc.UpdateStatus(t.Context(), resource(t, "users"), "u-1", "active")
		assert.ErrorIs(t, err, ErrStatusNotSupported)
		assert.Equal(t, 0, calls)
	})

	t.Run("Row comes from the server", func(t *testing.T) {
		row, err := svc.UpdateStatus(t.Context(), resource(t, "messages"), "m-1", "replied")
		require.NoError(t, err)
		assert.Equal(t, "replied", row.Status())
		assert.Equal(t, "Hello", row["subject"])
	})
}

func TestService_BulkUpdateStatus(t *testing.T) {
	apps := resource(t, "applications")

	bulkServer := func(t *testing.T, failing map[string]bool) (*Service, *sync.Map) {
		var patched sync.Map
		svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				fmt.Fprintf(w, listBody, "applications", `{"id":"a-1","status":"approved"}`, 1)
				return
			}
			id := strings.TrimPrefix(r.URL.Path, "/api/wholesale/")
			patched.Store(id, true)
			if failing[id] {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"cannot approve"}`))
				return
			}
			fmt.Fprintf(w, `{"data":{"id":%q,"status":"approved"}}`, id)
		})
		return svc, &patched
	}

	t.Run("All succeed", func(t *testing.T) {
		svc, patched := bulkServer(t, nil)

		res, err := svc.BulkUpdateStatus(t.Context(), apps, []string{"a-1", "a-2", "a-2", "a-3"}, "approved", NewListQuery())
		require.NoError(t, err)

		assert.Equal(t, 3, res.Succeeded)
		assert.Equal(t, 0, res.Failed)
		assert.Equal(t, notice.VariantDefault, res.Notice.Variant)
		assert.Equal(t, "3 applications marked approved.", res.Notice.Description)
		require.NotNil(t, res.Page)
		assert.Len(t, res.Page.Rows, 1)

		for _, id := range []string{"a-1", "a-2", "a-3"} {
			_, ok := patched.Load(id)
			assert.True(t, ok, id)
		}
	})

	t.Run("Partial failure", func(t *testing.T) {
		svc, _ := bulkServer(t, map[string]bool{"a-2": true})

		res, err := svc.BulkUpdateStatus(t.Context(), apps, []string{"a-1", "a-2", "a-3"}, "approved", NewListQuery())
		require.NoError(t, err)

		assert.Equal(t, 2, res.Succeeded)
		assert.Equal(t, 1, res.Failed)
		assert.Equal(t, notice.VariantWarning, res.Notice.Variant)
		assert.Equal(t, "a-2", res.Results[1].ID)
		assert.Contains(t, res.Results[1].Error, "cannot approve")
		assert.Empty(t, res.Results[0].Error)
	})

	t.Run("Total failure", func(t *testing.T) {
		svc, _ := bulkServer(t, map[string]bool{"a-1": true, "a-2": true})

		res, err := svc.BulkUpdateStatus(t.Context(), apps, []string{"a-1", "a-2"}, "approved", NewListQuery())
		require.NoError(t, err)

		assert.Equal(t, 0, res.Succeeded)
		assert.Equal(t, notice.VariantDestructive, res.Notice.Variant)
		assert.Equal(t, "2 applications could not be updated.", res.Notice.Description)
	})

	t.Run("Rejected up front", func(t *testing.T) {
		svc, patched := bulkServer(t, nil)

		_, err := svc.BulkUpdateStatus(t.Context(), apps, []string{"a-1"}, "archived", NewListQuery())
		assert.ErrorIs(t, err, ErrInvalidStatus)

		_, err = svc.BulkUpdateStatus(t.Context(), apps, nil, "approved", NewListQuery())
		assert.ErrorIs(t, err, ErrNoSelection)

		_, err = svc.BulkUpdateStatus(t.Context(), resource(t, "orders"), []string{"o-1"}, "Shipped", NewListQuery())
		assert.ErrorIs(t, err, ErrBulkNotSupported)

		count := 0
		patched.Range(func(any, any) bool { count++; return true })
		assert.Equal(t, 0, count)
	})
}
