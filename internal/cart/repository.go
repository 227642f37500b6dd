package cart

import (
	"context"
	"net/http"

	"maison-storefront/internal/apiclient"
)

const (
	cartPath        = "/api/cart"
	SessionIDHeader = "X-Session-ID"
)

// Repository is the backend copy of the cart.
type Repository interface {
	Get(ctx context.Context, sessionID string) ([]Item, error)
	Add(ctx context.Context, sessionID, productID string, quantity int) ([]Item, error)
	SetQuantity(ctx context.Context, sessionID, productID string, quantity int) ([]Item, error)
	Clear(ctx context.Context, sessionID string) error
}

type repository struct {
	client *apiclient.Client
}

func NewRepository(client *apiclient.Client) Repository {
	return &repository{client: client}
}

type cartResponse struct {
	Data struct {
		Items []Item `json:"items" validate:"dive"`
	} `json:"data"`
}

type cartMutation struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (r *repository) Get(ctx context.Context, sessionID string) ([]Item, error) {
	return r.call(ctx, http.MethodGet, sessionID, nil)
}

func (r *repository) Add(ctx context.Context, sessionID, productID string, quantity int) ([]Item, error) {
	return r.call(ctx, http.MethodPost, sessionID, cartMutation{ProductID: productID, Quantity: quantity})
}

// SetQuantity with quantity 0 removes the line on the backend.
func (r *repository) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) ([]Item, error) {
	return r.call(ctx, http.MethodPatch, sessionID, cartMutation{ProductID: productID, Quantity: quantity})
}

func (r *repository) Clear(ctx context.Context, sessionID string) error {
	return r.client.Do(ctx, apiclient.Request{
		Method: http.MethodDelete,
		Path:   cartPath,
		Header: sessionHeader(sessionID),
	}, nil)
}

func (r *repository) call(ctx context.Context, method, sessionID string, body any) ([]Item, error) {
	var resp cartResponse
	err := r.client.Do(ctx, apiclient.Request{
		Method: method,
		Path:   cartPath,
		Header: sessionHeader(sessionID),
		Body:   body,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Data.Items == nil {
		return []Item{}, nil
	}
	return resp.Data.Items, nil
}

func sessionHeader(sessionID string) http.Header {
	h := http.Header{}
	if sessionID != "" {
		h.Set(SessionIDHeader, sessionID)
	}
	return h
}
