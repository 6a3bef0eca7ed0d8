package postgres

import (
	"testing"

	"github.com/phrazzld/taskify-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSpecConditions(t *testing.T) {
	t.Parallel()

	t.Run("search over every searchable column", func(t *testing.T) {
		conds, err := userListSpec.conditions(store.ListParams{SearchTerm: "ann"})
		require.NoError(t, err)
		require.Len(t, conds, 1)
		assert.Equal(t, "(name ILIKE ? OR email ILIKE ?)", conds[0].query)
		assert.Equal(t, []any{"%ann%", "%ann%"}, conds[0].args)
	})

	t.Run("search and filters are conjunctive", func(t *testing.T) {
		conds, err := taskListSpec.conditions(store.ListParams{
			SearchTerm: "report",
			Filters: map[string]string{
				"status":   "DONE",
				"priority": "HIGH",
				"title":    "",
			},
		})
		require.NoError(t, err)
		require.Len(t, conds, 3)
		assert.Equal(t, "(title ILIKE ?)", conds[0].query)
		assert.Equal(t, condition{query: "priority = ?", args: []any{"HIGH"}}, conds[1])
		assert.Equal(t, condition{query: "status = ?", args: []any{"DONE"}}, conds[2])
	})

	t.Run("wildcards in the search term match literally", func(t *testing.T) {
		conds, err := taskListSpec.conditions(store.ListParams{SearchTerm: `50%_off\`})
		require.NoError(t, err)
		assert.Equal(t, []any{`%50\%\_off\\%`}, conds[0].args)
	})

	t.Run("unknown filter is rejected", func(t *testing.T) {
		_, err := taskListSpec.conditions(store.ListParams{
			Filters: map[string]string{"userId": "x"},
		})
		assert.ErrorIs(t, err, store.ErrInvalidQuery)
	})

	t.Run("no params means no conditions", func(t *testing.T) {
		conds, err := taskListSpec.conditions(store.ListParams{})
		require.NoError(t, err)
		assert.Empty(t, conds)
	})
}

func TestListSpecOrder(t *testing.T) {
	t.Parallel()

	order, err := taskListSpec.order(store.ListParams{}.Normalize())
	require.NoError(t, err)
	assert.Equal(t, "created_at DESC, id DESC", order)

	order, err = userListSpec.order(store.ListParams{SortBy: "email", SortOrder: "asc"}.Normalize())
	require.NoError(t, err)
	assert.Equal(t, "email ASC, id ASC", order)

	_, err = taskListSpec.order(store.ListParams{SortBy: "password"}.Normalize())
	assert.ErrorIs(t, err, store.ErrInvalidQuery)

	// Column names are never accepted in place of public names.
	_, err = taskListSpec.order(store.ListParams{SortBy: "created_at; DROP TABLE tasks"}.Normalize())
	assert.ErrorIs(t, err, store.ErrInvalidQuery)
}

func TestListSpecFilterKeysMatchStore(t *testing.T) {
	t.Parallel()

	for _, key := range store.TaskFilterFields {
		assert.Contains(t, taskListSpec.filterable, key)
	}
	for _, key := range store.UserFilterFields {
		assert.Contains(t, userListSpec.filterable, key)
	}
}
