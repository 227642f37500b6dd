package cart

import (
	"maison-storefront/internal/pricing"

	"github.com/shopspring/decimal"
)

type Item struct {
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Slug      string          `json:"slug,omitempty"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
}

// Lines converts cart items into pricing lines.
func Lines(items []Item) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{Price: it.Price, Quantity: it.Quantity})
	}
	return lines
}

// View is the cart page model.
type View struct {
	Items     []Item        `json:"items"`
	ItemCount int           `json:"itemCount"`
	Quote     pricing.Quote `json:"quote"`
}

func NewView(items []Item, policy pricing.Policy) View {
	if items == nil {
		items = []Item{}
	}
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return View{
		Items:     items,
		ItemCount: count,
		Quote:     policy.Quote(Lines(items)),
	}
}
