package account

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"maison-storefront/internal/apiclient"

	"go.uber.org/zap"
)

const wishlistPath = "/api/user/wishlist"

// Wishlist returns the signed-in user's saved products.
func (s *Service) Wishlist(ctx context.Context) ([]WishlistItem, error) {
	var resp wishlistResponse
	if err := s.api.Get(ctx, wishlistPath, nil, &resp); err != nil {
		s.log(ctx, "Wishlist").Error("failed to load wishlist", zap.Error(err))
		return nil, err
	}
	return nonNil(resp.Data.Items), nil
}

func (s *Service) AddToWishlist(ctx context.Context, productID string) ([]WishlistItem, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrInvalidProductID
	}

	var resp wishlistResponse
	if err := s.api.Post(ctx, wishlistPath, map[string]string{"productId": productID}, &resp); err != nil {
		s.log(ctx, "AddToWishlist").Error("failed to add to wishlist", zap.String("product_id", productID), zap.Error(err))
		return nil, err
	}
	return nonNil(resp.Data.Items), nil
}

func (s *Service) RemoveFromWishlist(ctx context.Context, productID string) ([]WishlistItem, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrInvalidProductID
	}

	var resp wishlistResponse
	err := s.api.Do(ctx, apiclient.Request{
		Method: http.MethodDelete,
		Path:   wishlistPath,
		Query:  url.Values{"productId": {productID}},
	}, &resp)
	if err != nil {
		s.log(ctx, "RemoveFromWishlist").Error("failed to remove from wishlist", zap.String("product_id", productID), zap.Error(err))
		return nil, err
	}
	return nonNil(resp.Data.Items), nil
}

// ToggleWishlist adds productID when absent and removes it when present.
// It reports whether the product is saved afterwards.
func (s *Service) ToggleWishlist(ctx context.Context, productID string) ([]WishlistItem, bool, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, false, ErrInvalidProductID
	}

	items, err := s.Wishlist(ctx)
	if err != nil {
		return nil, false, err
	}

	if Contains(items, productID) {
		items, err = s.RemoveFromWishlist(ctx, productID)
		return items, false, err
	}
	items, err = s.AddToWishlist(ctx, productID)
	return items, err == nil, err
}

func Contains(items []WishlistItem, productID string) bool {
	for _, it := range items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}

func nonNil(items []WishlistItem) []WishlistItem {
	if items == nil {
		return []WishlistItem{}
	}
	return items
}
