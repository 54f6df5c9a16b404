package domain

const (
	DefaultPageSize = 10
	MaxPageSize     = 1000
	// keeps Page*Size well inside int64
	MaxPage = 1_000_000
)

type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps the page index to [0, MaxPage] and the size to
// [1, MaxPageSize], falling back to the default size.
func (p PageRequest) Normalize() PageRequest {
	switch {
	case p.Page < 0:
		p.Page = 0
	case p.Page > MaxPage:
		p.Page = MaxPage
	}
	switch {
	case p.Size <= 0:
		p.Size = DefaultPageSize
	case p.Size > MaxPageSize:
		p.Size = MaxPageSize
	}
	return p
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// TotalPages returns ceil(total/size).
func TotalPages(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return (total + size - 1) / size
}

type Page[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}
