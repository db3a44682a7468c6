package model

import (
	"math"
	"slices"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SortOrder is the direction of a list sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Sort keys accepted by the user and class list endpoints.
var (
	UserSortFields  = []string{"name", "email", "createdAt", "salary", "feesPaid"}
	ClassSortFields = []string{"name", "fee", "maxStudents", "createdAt"}
)

// ListParams carries the pagination, search and sort inputs of a list call.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	SortBy string
	Order  SortOrder
}

// Normalize clamps paging inputs and replaces unknown sort keys with "name".
func (p ListParams) Normalize(allowedSort []string) ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	p.Search = strings.TrimSpace(p.Search)

	if !slices.Contains(allowedSort, p.SortBy) {
		p.SortBy = "name"
	}

	if p.Order != SortDesc {
		p.Order = SortAsc
	}
	return p
}

// Offset is the number of records skipped before the requested page. It
// saturates at math.MaxInt instead of overflowing on absurd page numbers.
func (p ListParams) Offset() int {
	if p.Page < 2 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total / limit).
func (p ListParams) TotalPages(total int) int {
	if p.Limit < 1 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}

// Page is a slice of results plus paging metadata in the wire shape
// {data, currentPage, totalPages}.
type Page[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}
