package order

import (
	"context"
	"net/url"
	"strconv"

	"maison-storefront/internal/apiclient"
)

const (
	ordersPath   = "/api/orders"
	myOrdersPath = "/api/user/orders"
)

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, id string, in Update) (*Order, error)
	ListMine(ctx context.Context, page, limit int) (*Page, error)
}

type repository struct {
	client *apiclient.Client
}

func NewRepository(client *apiclient.Client) Repository {
	return &repository{client: client}
}

func (r *repository) Create(ctx context.Context, in CreateInput) (*Order, error) {
	var resp apiclient.Envelope[Order]
	if err := r.client.Post(ctx, ordersPath, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (r *repository) Get(ctx context.Context, id string) (*Order, error) {
	var resp apiclient.Envelope[Order]
	if err := r.client.Get(ctx, orderPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (r *repository) Update(ctx context.Context, id string, in Update) (*Order, error) {
	var resp apiclient.Envelope[Order]
	if err := r.client.Patch(ctx, orderPath(id), in, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (r *repository) ListMine(ctx context.Context, page, limit int) (*Page, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp apiclient.Envelope[Page]
	if err := r.client.Get(ctx, myOrdersPath, q, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func orderPath(id string) string {
	return ordersPath + "/" + url.PathEscape(id)
}
