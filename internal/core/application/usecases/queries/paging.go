package queries

import (
	"deliveryapp/internal/pkg/errs"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pageable is a zero based page request.
type Pageable struct {
	Number int
	Size   int
}

// NewPageable fills the defaults for missing values. It returns nil when neither
// page nor size is given, which selects an unpaged read.
func NewPageable(page, size *int) (*Pageable, error) {
	if page == nil && size == nil {
		return nil, nil
	}
	p := &Pageable{Size: DefaultPageSize}
	if page != nil {
		if *page < 0 {
			return nil, errs.NewValueIsOutOfRangeError("page", *page, 0, "unbounded")
		}
		p.Number = *page
	}
	if size != nil {
		if *size < 1 || *size > MaxPageSize {
			return nil, errs.NewValueIsOutOfRangeError("size", *size, 1, MaxPageSize)
		}
		p.Size = *size
	}
	return p, nil
}

func (p Pageable) offset() uint64 {
	return uint64(p.Number) * uint64(p.Size)
}

// Page is a slice of a larger result ordered by id.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

func newPage[T any](content []T, total int64, p Pageable) Page[T] {
	pages := int((total + int64(p.Size) - 1) / int64(p.Size))
	return Page[T]{Content: content, TotalElements: total, TotalPages: pages, Number: p.Number, Size: p.Size}
}
