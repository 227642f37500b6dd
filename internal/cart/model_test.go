package cart

import (
	"testing"

	"maison-storefront/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func TestNewView(t *testing.T) {
	v := NewView([]Item{vase(2)}, pricing.DefaultPolicy())

	assert.Equal(t, 2, v.ItemCount)
	assert.Equal(t, "231", v.Quote.Total.String())

	empty := NewView(nil, pricing.DefaultPolicy())
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.ItemCount)
}
