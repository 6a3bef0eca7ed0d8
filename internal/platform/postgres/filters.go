package postgres

import (
	"fmt"
	"slices"
	"strings"

	"github.com/phrazzld/taskify-api/internal/store"
	"gorm.io/gorm"
)

// listSpec whitelists the columns a list query may search, filter and sort on.
// Keys are the public field names used in query strings.
type listSpec struct {
	entity     string
	searchable []string
	filterable map[string]string
	sortable   map[string]string
}

var taskListSpec = listSpec{
	entity:     "task",
	searchable: []string{"title"},
	filterable: map[string]string{
		"title":    "title",
		"status":   "status",
		"priority": "priority",
	},
	sortable: map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"title":     "title",
		"status":    "status",
		"priority":  "priority",
		"date":      "date",
	},
}

var userListSpec = listSpec{
	entity:     "user",
	searchable: []string{"name", "email"},
	filterable: map[string]string{
		"name":   "name",
		"email":  "email",
		"role":   "role",
		"status": "status",
		"phone":  "phone",
	},
	sortable: map[string]string{
		"createdAt": "created_at",
		"updatedAt": "updated_at",
		"name":      "name",
		"email":     "email",
		"role":      "role",
		"status":    "status",
	},
}

// condition is one WHERE fragment with its bind arguments.
type condition struct {
	query string
	args  []any
}

// conditions builds the conjunctive WHERE clause for p: a case-insensitive
// substring match of the search term across the searchable columns, then one
// equality per non-empty filter. Filters are emitted in key order.
func (s listSpec) conditions(p store.ListParams) ([]condition, error) {
	var conds []condition

	if p.SearchTerm != "" && len(s.searchable) > 0 {
		pattern := "%" + escapeLike(p.SearchTerm) + "%"
		parts := make([]string, len(s.searchable))
		args := make([]any, len(s.searchable))
		for i, col := range s.searchable {
			parts[i] = col + " ILIKE ?"
			args[i] = pattern
		}
		conds = append(conds, condition{
			query: "(" + strings.Join(parts, " OR ") + ")",
			args:  args,
		})
	}

	keys := make([]string, 0, len(p.Filters))
	for key := range p.Filters {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		value := p.Filters[key]
		if value == "" {
			continue
		}
		col, ok := s.filterable[key]
		if !ok {
			return nil, store.NewStoreError(s.entity, "list",
				fmt.Sprintf("unsupported filter field %q", key), store.ErrInvalidQuery)
		}
		conds = append(conds, condition{query: col + " = ?", args: []any{value}})
	}

	return conds, nil
}

// order returns the ORDER BY expression for p.
func (s listSpec) order(p store.ListParams) (string, error) {
	col, ok := s.sortable[p.SortBy]
	if !ok {
		return "", store.NewStoreError(s.entity, "list",
			fmt.Sprintf("unsupported sort field %q", p.SortBy), store.ErrInvalidQuery)
	}
	dir := "DESC"
	if p.SortOrder == store.SortAsc {
		dir = "ASC"
	}
	// id breaks ties so pages are stable.
	return fmt.Sprintf("%s %s, id %s", col, dir, dir), nil
}

// scope validates p and returns a GORM scope applying its conditions.
func (s listSpec) scope(p store.ListParams) (func(*gorm.DB) *gorm.DB, string, error) {
	conds, err := s.conditions(p)
	if err != nil {
		return nil, "", err
	}
	order, err := s.order(p)
	if err != nil {
		return nil, "", err
	}
	return func(db *gorm.DB) *gorm.DB {
		for _, c := range conds {
			db = db.Where(c.query, c.args...)
		}
		return db
	}, order, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards so the term matches literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
