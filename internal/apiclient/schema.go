package apiclient

// Envelope is the `{ data: ... }` wrapper every backend endpoint answers with.
// Use it for single objects; list endpoints declare their own schema so the
// element validation can `dive`.
type Envelope[T any] struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

type Pagination struct {
	CurrentPage  int  `json:"currentPage" validate:"gte=1"`
	TotalPages   int  `json:"totalPages" validate:"gte=0"`
	TotalItems   int  `json:"totalItems" validate:"gte=0"`
	ItemsPerPage int  `json:"itemsPerPage" validate:"gte=1"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
	NextPage     *int `json:"nextPage"`
	PrevPage     *int `json:"prevPage"`
}
