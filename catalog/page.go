package catalog

// Page is one page of a paginated listing. Page numbers start at 1.
type Page[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// HasNext reports whether a later page exists.
func (p *Page[T]) HasNext() bool {
	return p != nil && p.Page < p.TotalPages
}
