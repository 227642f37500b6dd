package checkout

import (
	"context"

	"maison-storefront/internal/cart"
	"maison-storefront/internal/catalog"
	"maison-storefront/internal/order"
)

const (
	SourceCart   = "cart"
	SourceBuyNow = "buy-now"
)

// Source supplies the lines being bought.
type Source interface {
	Name() string
	Lines(ctx context.Context) ([]order.Item, error)
}

type CartReader interface {
	Items(ctx context.Context, sessionID string) ([]cart.Item, error)
	Clear(ctx context.Context, sessionID string) error
}

type CartClearer interface {
	ClearOnce(ctx context.Context, sessionID, token string) (bool, error)
}

type ProductGetter interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
}

// CartSource checks out the session cart.
type CartSource struct {
	carts     CartReader
	sessionID string
}

func NewCartSource(carts CartReader, sessionID string) *CartSource {
	return &CartSource{carts: carts, sessionID: sessionID}
}

func (s *CartSource) Name() string { return SourceCart }

func (s *CartSource) Lines(ctx context.Context) ([]order.Item, error) {
	items, err := s.carts.Items(ctx, s.sessionID)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Item, 0, len(items))
	for _, it := range items {
		lines = append(lines, order.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}
	return lines, nil
}

func (s *CartSource) clearCart(ctx context.Context) error {
	return s.carts.Clear(ctx, s.sessionID)
}

// SingleProduct checks out one product directly, bypassing the cart.
type SingleProduct struct {
	catalog   ProductGetter
	productID string
	quantity  int
}

func NewSingleProduct(catalog ProductGetter, productID string, quantity int) *SingleProduct {
	return &SingleProduct{catalog: catalog, productID: productID, quantity: quantity}
}

func (s *SingleProduct) Name() string { return SourceBuyNow }

func (s *SingleProduct) Lines(ctx context.Context) ([]order.Item, error) {
	if s.quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.catalog.GetProduct(ctx, s.productID)
	if err != nil {
		return nil, err
	}
	if !p.InStock {
		return nil, ErrOutOfStock
	}

	return []order.Item{{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  s.quantity,
		Image:     p.PrimaryImage(),
	}}, nil
}
