package store

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// Defaults applied to list queries that omit paging or ordering.
const (
	DefaultPage      = 1
	DefaultLimit     = 10
	DefaultSortBy    = "createdAt"
	DefaultSortOrder = SortDesc

	// MaxLimit caps the page size a caller may request.
	MaxLimit = 100
	// MaxPage keeps Offset within a 32-bit int at MaxLimit.
	MaxPage = math.MaxInt32 / MaxLimit
)

// Sort directions accepted in ListParams.SortOrder.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListParams is the dynamic filter, sort and pagination contract shared by
// every list endpoint. Filters hold exact-match constraints keyed by the
// public field name; SearchTerm is matched case-insensitively as a substring
// against the entity's searchable fields.
type ListParams struct {
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
	SearchTerm string
	Filters    map[string]string
}

// Normalize returns a copy with defaults applied and the sort order lower-cased.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	p.SortOrder = strings.ToLower(strings.TrimSpace(p.SortOrder))
	if p.SortOrder != SortAsc && p.SortOrder != SortDesc {
		p.SortOrder = DefaultSortOrder
	}
	p.SearchTerm = strings.TrimSpace(p.SearchTerm)
	return p
}

// Offset is the number of rows skipped before the current page.
// Values outside the Normalize bounds are clamped first.
func (p ListParams) Offset() int {
	page := min(max(p.Page, 1), MaxPage)
	limit := min(max(p.Limit, 0), MaxLimit)
	return (page - 1) * limit
}

// PageMeta describes one page of a list result.
type PageMeta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int   `json:"totalPage"`
}

// NewPageMeta computes paging metadata; TotalPage is ceil(total/limit).
func NewPageMeta(p ListParams, total int64) PageMeta {
	totalPage := 0
	if p.Limit > 0 && total > 0 {
		limit := int64(p.Limit)
		pages := total / limit
		if total%limit != 0 {
			pages++
		}
		totalPage = int(pages)
	}
	return PageMeta{
		Page:      p.Page,
		Limit:     p.Limit,
		Total:     total,
		TotalPage: totalPage,
	}
}

// Page is one page of list results plus its metadata.
type Page[T any] struct {
	Items []T
	Meta  PageMeta
}

// TaskQuery scopes a task listing. A nil OwnerID means every owner.
type TaskQuery struct {
	OwnerID *uuid.UUID
	ListParams
}

// Exact-match filter keys accepted by each list operation.
var (
	TaskFilterFields = []string{"title", "status", "priority"}
	UserFilterFields = []string{"name", "email", "role", "status", "phone"}
)
