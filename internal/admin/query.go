package admin

import (
	"maps"
	"net/url"
	"strconv"
	"strings"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ListQuery is the filter state of an admin table. Every mutator returns a
// copy positioned on page 1, except SetPage.
type ListQuery struct {
	Search    string            `json:"search,omitempty"`
	Filters   map[string]string `json:"filters,omitempty"`
	SortBy    string            `json:"sortBy,omitempty"`
	SortOrder SortOrder         `json:"sortOrder,omitempty"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
}

func NewListQuery() ListQuery {
	return ListQuery{Page: defaultPage, Limit: defaultLimit}
}

// Values emits only the non-empty fields.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	for key, value := range q.Filters {
		if value != "" && value != "all" {
			v.Set(key, value)
		}
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
		if q.SortOrder != "" {
			v.Set("sortOrder", string(q.SortOrder))
		}
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// ToggleSort flips the order when field is already the sort field and
// otherwise sorts ascending by field.
func (q ListQuery) ToggleSort(field string) ListQuery {
	if q.SortBy == field {
		if q.SortOrder == SortAsc {
			q.SortOrder = SortDesc
		} else {
			q.SortOrder = SortAsc
		}
	} else {
		q.SortBy = field
		q.SortOrder = SortAsc
	}
	q.Page = defaultPage
	return q
}

func (q ListQuery) SetFilter(key, value string) ListQuery {
	filters := maps.Clone(q.Filters)
	if filters == nil {
		filters = map[string]string{}
	}
	if value == "" {
		delete(filters, key)
	} else {
		filters[key] = value
	}
	q.Filters = filters
	q.Page = defaultPage
	return q
}

func (q ListQuery) SetSearch(search string) ListQuery {
	q.Search = search
	q.Page = defaultPage
	return q
}

func (q ListQuery) SetPage(page int) ListQuery {
	if page < 1 {
		page = defaultPage
	}
	q.Page = page
	return q
}

// ParseListQuery reads a table state from request parameters, keeping only
// the filters and sort fields the resource declares. "toggleSort" applies a
// header click on top of the parsed state.
func ParseListQuery(r Resource, values url.Values) ListQuery {
	q := NewListQuery()
	q.Search = strings.TrimSpace(values.Get("search"))

	for _, key := range r.Filters {
		if value := strings.TrimSpace(values.Get(key)); value != "" {
			q = q.SetFilter(key, value)
		}
	}

	if sortBy := values.Get("sortBy"); r.CanSort(sortBy) {
		q.SortBy = sortBy
		q.SortOrder = SortAsc
		if SortOrder(values.Get("sortOrder")) == SortDesc {
			q.SortOrder = SortDesc
		}
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		q.Limit = min(limit, maxLimit)
	}

	if field := values.Get("toggleSort"); r.CanSort(field) {
		q = q.ToggleSort(field)
	}
	return q
}
