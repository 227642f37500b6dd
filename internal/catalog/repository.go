package catalog

import (
	"context"
	"net/http"
	"net/url"

	"maison-storefront/internal/apiclient"
)

const (
	productsPath    = "/api/products"
	collectionsPath = "/api/collections"
	uploadPath      = "/api/upload/product"
)

type Repository interface {
	ListProducts(ctx context.Context, q ProductQuery) (*ProductPage, error)
	Filters(ctx context.Context) (*Filters, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	UpdateProduct(ctx context.Context, id string, in ProductUpdate) (*Product, error)

	ListCollections(ctx context.Context, q CollectionQuery) (*CollectionPage, error)
	GetCollection(ctx context.Context, id string) (*Collection, error)
	UpdateCollection(ctx context.Context, id string, in CollectionUpdate) (*Collection, error)

	UploadImages(ctx context.Context, body []byte, contentType string) ([]string, error)
}

type repository struct {
	client *apiclient.Client
}

func NewRepository(client *apiclient.Client) Repository {
	return &repository{client: client}
}

func (r *repository) ListProducts(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	var resp apiclient.Envelope[ProductPage]
	if err := r.client.Get(ctx, productsPath, q.Values(), &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (r *repository) Filters(ctx context.Context) (*Filters, error) {
	var resp apiclient.Envelope[Filters]
	if err := r.client.Get(ctx, productsPath, url.Values{"filters": {"true"}}, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (r *repository) GetProduct(ctx context.Context, id string) (*Product, error) {
	var resp apiclient.Envelope[Product]
	if err := r.client.Get(ctx, productPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (r *repository) UpdateProduct(ctx context.Context, id string, in ProductUpdate) (*Product, error) {
	var resp apiclient.Envelope[Product]
	if err := r.client.Patch(ctx, productPath(id), in, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (r *repository) ListCollections(ctx context.Context, q CollectionQuery) (*CollectionPage, error) {
	var resp apiclient.Envelope[CollectionPage]
	if err := r.client.Get(ctx, collectionsPath, q.Values(), &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (r *repository) GetCollection(ctx context.Context, id string) (*Collection, error) {
	var resp apiclient.Envelope[Collection]
	if err := r.client.Get(ctx, collectionPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (r *repository) UpdateCollection(ctx context.Context, id string, in CollectionUpdate) (*Collection, error) {
	var resp apiclient.Envelope[Collection]
	if err := r.client.Patch(ctx, collectionPath(id), in, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

type uploadResponse struct {
	Data []struct {
		URL string `json:"url" validate:"required"`
	} `json:"data" validate:"dive"`
}

func (r *repository) UploadImages(ctx context.Context, body []byte, contentType string) ([]string, error) {
	var resp uploadResponse
	err := r.client.Do(ctx, apiclient.Request{
		Method:      http.MethodPost,
		Path:        uploadPath,
		Raw:         body,
		ContentType: contentType,
	}, &resp)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(resp.Data))
	for _, img := range resp.Data {
		urls = append(urls, img.URL)
	}
	return urls, nil
}

func productPath(id string) string {
	return productsPath + "/" + url.PathEscape(id)
}

func collectionPath(id string) string {
	return collectionsPath + "/" + url.PathEscape(id)
}
