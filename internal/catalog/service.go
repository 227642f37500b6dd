package catalog

import (
	"context"
	"fmt"
	"strings"

	"maison-storefront/internal/apiclient"
	"maison-storefront/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	ListProducts(ctx context.Context, q ProductQuery) (*ProductPage, error)
	Filters(ctx context.Context) (*Filters, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	UpdateProduct(ctx context.Context, id string, in ProductUpdate) (*Product, error)

	ListCollections(ctx context.Context, q CollectionQuery) (*CollectionPage, error)
	GetCollection(ctx context.Context, id string) (*Collection, error)
	UpdateCollection(ctx context.Context, id string, in CollectionUpdate) (*Collection, error)

	UploadProductImages(ctx context.Context, files []ImageFile) ([]string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	page, err := s.repo.ListProducts(ctx, q)
	if err != nil {
		s.log(ctx, "ListProducts").Error("failed to list products", zap.Error(err))
		return nil, err
	}
	return page, nil
}

func (s *service) Filters(ctx context.Context) (*Filters, error) {
	f, err := s.repo.Filters(ctx)
	if err != nil {
		s.log(ctx, "Filters").Error("failed to load filters", zap.Error(err))
		return nil, err
	}
	return f, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	p, err := s.repo.GetProduct(ctx, id)
	if apiclient.IsNotFound(err) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		s.log(ctx, "GetProduct").Error("failed to get product", zap.String("product_id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, in ProductUpdate) (*Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if in.Empty() {
		return nil, ErrEmptyUpdate
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	p, err := s.repo.UpdateProduct(ctx, id, in)
	if apiclient.IsNotFound(err) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		s.log(ctx, "UpdateProduct").Error("failed to update product", zap.String("product_id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *service) ListCollections(ctx context.Context, q CollectionQuery) (*CollectionPage, error) {
	page, err := s.repo.ListCollections(ctx, q)
	if err != nil {
		s.log(ctx, "ListCollections").Error("failed to list collections", zap.Error(err))
		return nil, err
	}
	return page, nil
}

func (s *service) GetCollection(ctx context.Context, id string) (*Collection, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	c, err := s.repo.GetCollection(ctx, id)
	if apiclient.IsNotFound(err) {
		return nil, ErrCollectionNotFound
	}
	return c, err
}

func (s *service) UpdateCollection(ctx context.Context, id string, in CollectionUpdate) (*Collection, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if in.Empty() {
		return nil, ErrEmptyUpdate
	}
	c, err := s.repo.UpdateCollection(ctx, id, in)
	if apiclient.IsNotFound(err) {
		return nil, ErrCollectionNotFound
	}
	return c, err
}

// UploadProductImages validates every file before anything is sent.
func (s *service) UploadProductImages(ctx context.Context, files []ImageFile) ([]string, error) {
	log := s.log(ctx, "UploadProductImages")

	if len(files) == 0 {
		return nil, ErrNoImages
	}
	for _, f := range files {
		if err := validateImage(f); err != nil {
			log.Warn("rejected image", zap.String("filename", f.Filename), zap.Error(err))
			return nil, err
		}
	}

	body, contentType, err := encodeImages(files)
	if err != nil {
		return nil, err
	}

	urls, err := s.repo.UploadImages(ctx, body, contentType)
	if err != nil {
		log.Error("image upload failed", zap.Int("count", len(files)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedUploadImage, err)
	}

	log.Info("images uploaded", zap.Int("count", len(urls)))
	return urls, nil
}

func (s *service) log(ctx context.Context, method string) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("service", "catalog"),
		zap.String("method", method),
	)
}

func checkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}
	return nil
}
