package admin

import (
	"slices"

	"maison-storefront/internal/contact"
	"maison-storefront/internal/order"
	"maison-storefront/internal/wholesale"
)

// Resource describes one admin table over a backend collection.
type Resource struct {
	Name     string
	Label    string
	Path     string
	ItemKey  string
	Filters  []string
	Sortable []string
	Statuses []string
	Bulk     bool
}

func (r Resource) HasStatus() bool {
	return len(r.Statuses) > 0
}

func (r Resource) AllowsStatus(status string) bool {
	return slices.Contains(r.Statuses, status)
}

func (r Resource) CanSort(field string) bool {
	return slices.Contains(r.Sortable, field)
}

func (r Resource) ItemPath(id string) string {
	return r.Path + "/" + id
}

var resources = map[string]Resource{
	"products": {
		Name:     "products",
		Label:    "product",
		Path:     "/api/products",
		ItemKey:  "products",
		Filters:  []string{"category", "collectionId", "inStock"},
		Sortable: []string{"name", "price", "createdAt"},
	},
	"orders": {
		Name:     "orders",
		Label:    "order",
		Path:     "/api/orders",
		ItemKey:  "orders",
		Filters:  []string{"status", "paymentStatus"},
		Sortable: []string{"orderNumber", "total", "status", "createdAt"},
		Statuses: stringsOf(order.Statuses),
	},
	"users": {
		Name:     "users",
		Label:    "user",
		Path:     "/api/admin/users",
		ItemKey:  "users",
		Filters:  []string{"role"},
		Sortable: []string{"name", "email", "createdAt"},
	},
	"collections": {
		Name:     "collections",
		Label:    "collection",
		Path:     "/api/collections",
		ItemKey:  "collections",
		Sortable: []string{"name", "productCount", "createdAt"},
	},
	"messages": {
		Name:     "messages",
		Label:    "message",
		Path:     contact.Path,
		ItemKey:  "messages",
		Filters:  []string{"status", "category", "priority"},
		Sortable: []string{"subject", "priority", "createdAt"},
		Statuses: stringsOf(contact.Statuses),
	},
	"applications": {
		Name:     "applications",
		Label:    "application",
		Path:     wholesale.Path,
		ItemKey:  "applications",
		Filters:  []string{"status", "businessType"},
		Sortable: []string{"businessName", "status", "submittedAt"},
		Statuses: stringsOf(wholesale.Statuses),
		Bulk:     true,
	},
}

func Lookup(name string) (Resource, error) {
	r, ok := resources[name]
	if !ok {
		return Resource{}, ErrUnknownResource
	}
	return r, nil
}

func stringsOf[S ~string](values []S) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
