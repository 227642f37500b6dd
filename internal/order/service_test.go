package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"maison-storefront/internal/apiclient"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, h http.HandlerFunc) Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := apiclient.New(apiclient.Options{BaseURL: srv.URL, Timeout: time.Second, MaxRetries: 2, RetryInterval: time.Millisecond})
	require.NoError(t, err)
	return NewService(NewRepository(c))
}

func validInput() CreateInput {
	return CreateInput{
		Items:    []Item{{ProductID: "p1", Name: "Vase", Price: decimal.NewFromInt(100), Quantity: 2}},
		Subtotal: decimal.NewFromInt(200),
		Shipping: decimal.NewFromInt(15),
		Tax:      decimal.NewFromInt(16),
		Total:    decimal.NewFromInt(231),
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults statuses", func(t *testing.T) {
		svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/orders", r.URL.Path)

			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Pending", body["status"])
			assert.Equal(t, "Pending", body["paymentStatus"])
			assert.EqualValues(t, 231, body["total"])

			_, _ = w.Write([]byte(`{"data":{"id":"ord-1","items":[{"productId":"p1","price":100,"quantity":2}],"total":231,"status":"Pending","paymentStatus":"Pending"}}`))
		})

		o, err := svc.Create(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, "ord-1", o.ID)
	})

	t.Run("Not retried on failure", func(t *testing.T) {
		calls := 0
		svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := svc.Create(ctx, validInput())
		assert.ErrorIs(t, err, ErrFailedCreateOrder)
		assert.Equal(t, 1, calls)
	})

	t.Run("Rejects inconsistent totals", func(t *testing.T) {
		svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		in := validInput()
		in.Total = decimal.NewFromInt(230)
		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, ErrTotalMismatch)

		in = validInput()
		in.Items = nil
		_, err = svc.Create(ctx, in)
		assert.ErrorIs(t, err, ErrEmptyOrder)
	})
}

func TestService_Get(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := svc.Get(context.Background(), "ord-x")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingOrderID)
}

func TestService_UpdateStatus(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/orders/ord-1", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"paymentStatus": "Paid"}, body)

		_, _ = w.Write([]byte(`{"data":{"id":"ord-1","paymentStatus":"Paid"}}`))
	})

	o, err := svc.UpdatePaymentStatus(context.Background(), "ord-1", PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, o.PaymentStatus)

	_, err = svc.UpdateStatus(context.Background(), "ord-1", Status("Lost"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdatePaymentStatus(context.Background(), "ord-1", PaymentStatus("Maybe"))
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
}

func TestService_ListMine(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/orders", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"data":{"orders":[{"id":"ord-1"}],"pagination":{"currentPage":2,"totalPages":2,"totalItems":6,"itemsPerPage":5}}}`))
	})

	page, err := svc.ListMine(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.Len(t, page.Orders, 1)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
}

func TestTrack(t *testing.T) {
	flags := func(stages []Stage) (complete, active []bool) {
		for _, s := range stages {
			complete = append(complete, s.Complete)
			active = append(active, s.Active)
		}
		return
	}

	tests := []struct {
		status   Status
		complete []bool
		active   []bool
	}{
		{StatusPending, []bool{true, false, false}, []bool{true, false, false}},
		{StatusProcessing, []bool{true, true, false}, []bool{false, true, false}},
		{StatusShipped, []bool{true, true, true}, []bool{false, false, true}},
		{StatusDelivered, []bool{true, true, true}, []bool{false, false, false}},
		{StatusCancelled, []bool{true, false, false}, []bool{false, false, false}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			complete, active := flags(Track(tt.status))
			assert.Equal(t, tt.complete, complete)
			assert.Equal(t, tt.active, active)
		})
	}
}
