package catalog

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"maison-storefront/internal/apiclient"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           string          `json:"id" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	Slug         string          `json:"slug"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	CollectionID string          `json:"collectionId,omitempty"`
	Images       []string        `json:"images"`
	InStock      bool            `json:"inStock"`
	IsNewProduct bool            `json:"isNewProduct"`
	Materials    []string        `json:"materials,omitempty"`
	Dimensions   string          `json:"dimensions,omitempty"`
	Origin       string          `json:"origin,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// PrimaryImage is the first image or empty.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Collection struct {
	ID           string    `json:"id" validate:"required"`
	Name         string    `json:"name" validate:"required"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Image        string    `json:"image,omitempty"`
	ProductCount int       `json:"productCount" validate:"gte=0"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CollectionRef struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Filters is the facet metadata shown next to the product grid.
type Filters struct {
	Categories  []string        `json:"categories"`
	Collections []CollectionRef `json:"collections" validate:"dive"`
}

type ProductPage struct {
	Products   []Product            `json:"products" validate:"dive"`
	Pagination apiclient.Pagination `json:"pagination"`
}

type CollectionPage struct {
	Collections []Collection         `json:"collections" validate:"dive"`
	Pagination  apiclient.Pagination `json:"pagination"`
}

type ProductQuery struct {
	Search       string
	Category     string
	CollectionID string
	InStock      *bool
	SortBy       string
	SortOrder    string
	Page         int
	Limit        int
}

// Values emits only the parameters that are set.
func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	setString(v, "search", q.Search)
	setString(v, "category", q.Category)
	setString(v, "collectionId", q.CollectionID)
	if q.InStock != nil {
		v.Set("inStock", strconv.FormatBool(*q.InStock))
	}
	setString(v, "sortBy", q.SortBy)
	setString(v, "sortOrder", q.SortOrder)
	setInt(v, "page", q.Page)
	setInt(v, "limit", q.Limit)
	return v
}

type CollectionQuery struct {
	Search string
	Page   int
	Limit  int
}

func (q CollectionQuery) Values() url.Values {
	v := url.Values{}
	setString(v, "search", q.Search)
	setInt(v, "page", q.Page)
	setInt(v, "limit", q.Limit)
	return v
}

type ProductUpdate struct {
	Name         *string          `json:"name,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Category     *string          `json:"category,omitempty"`
	CollectionID *string          `json:"collectionId,omitempty"`
	Images       []string         `json:"images,omitempty"`
	InStock      *bool            `json:"inStock,omitempty"`
	IsNewProduct *bool            `json:"isNewProduct,omitempty"`
}

func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Price == nil && u.Description == nil && u.Category == nil &&
		u.CollectionID == nil && u.Images == nil && u.InStock == nil && u.IsNewProduct == nil
}

type CollectionUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

func (u CollectionUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Image == nil
}

func setString(v url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		v.Set(key, value)
	}
}

func setInt(v url.Values, key string, value int) {
	if value > 0 {
		v.Set(key, strconv.Itoa(value))
	}
}
