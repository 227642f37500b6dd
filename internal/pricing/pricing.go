// Package pricing owns the shipping threshold, flat shipping fee and tax rate
// used by every checkout path.
package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNegativeAmount = errors.New("pricing amounts must not be negative")

var (
	DefaultFreeShippingThreshold = decimal.NewFromInt(500)
	DefaultFlatShippingFee       = decimal.NewFromInt(15)
	DefaultTaxRate               = decimal.RequireFromString("0.08")
)

type Policy struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
}

type Line struct {
	Price    decimal.Decimal
	Quantity int
}

type Quote struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: DefaultFreeShippingThreshold,
		FlatShippingFee:       DefaultFlatShippingFee,
		TaxRate:               DefaultTaxRate,
	}
}

// NewPolicy parses overrides; an empty string keeps the default for that field.
func NewPolicy(threshold, flatFee, taxRate string) (Policy, error) {
	p := DefaultPolicy()

	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"free shipping threshold", threshold, &p.FreeShippingThreshold},
		{"flat shipping fee", flatFee, &p.FlatShippingFee},
		{"tax rate", taxRate, &p.TaxRate},
	}

	for _, f := range fields {
		raw := strings.TrimSpace(f.raw)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return Policy{}, fmt.Errorf("parse %s: %w", f.name, err)
		}
		if v.IsNegative() {
			return Policy{}, fmt.Errorf("%s: %w", f.name, ErrNegativeAmount)
		}
		*f.dst = v
	}

	return p, nil
}

func (p Policy) Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		sum = sum.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// Shipping is free once the subtotal reaches the threshold.
func (p Policy) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatShippingFee
}

// Tax is rounded to cents.
func (p Policy) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.TaxRate).Round(2)
}

func (p Policy) Quote(lines []Line) Quote {
	subtotal := p.Subtotal(lines)
	shipping := p.Shipping(subtotal)
	tax := p.Tax(subtotal)

	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

// FreeShipping reports whether the quote crossed the threshold.
func (q Quote) FreeShipping() bool {
	return q.Shipping.IsZero()
}

func (q Quote) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Subtotal     float64 `json:"subtotal"`
		Shipping     float64 `json:"shipping"`
		Tax          float64 `json:"tax"`
		Total        float64 `json:"total"`
		FreeShipping bool    `json:"freeShipping"`
	}{
		Subtotal:     q.Subtotal.InexactFloat64(),
		Shipping:     q.Shipping.InexactFloat64(),
		Tax:          q.Tax.InexactFloat64(),
		Total:        q.Total.InexactFloat64(),
		FreeShipping: q.FreeShipping(),
	})
}
