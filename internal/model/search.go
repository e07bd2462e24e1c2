package model

import (
	"slices"
	"strings"
)

type SearchOrder string

const (
	OrderAsc  SearchOrder = "asc"
	OrderDesc SearchOrder = "desc"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 15
	MaxPerPage     = 100
)

type SearchInput struct {
	Page    int
	PerPage int
	Search  string
	OrderBy string
	Order   SearchOrder
}

// Normalize clamps paging and falls back to defaultOrderBy when OrderBy is
// not one of allowed.
func (in SearchInput) Normalize(defaultOrderBy string, allowed ...string) SearchInput {
	if in.Page < 1 {
		in.Page = DefaultPage
	}
	switch {
	case in.PerPage < 1:
		in.PerPage = DefaultPerPage
	case in.PerPage > MaxPerPage:
		in.PerPage = MaxPerPage
	}
	in.Search = strings.TrimSpace(in.Search)
	if !slices.Contains(allowed, in.OrderBy) {
		in.OrderBy = defaultOrderBy
	}
	if in.Order != OrderDesc {
		in.Order = OrderAsc
	}
	return in
}

func (in SearchInput) Offset() int {
	return (in.Page - 1) * in.PerPage
}

type SearchOutput[T any] struct {
	Page    int
	PerPage int
	Total   int
	Items   []T
}
