package repository

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"salon/shared/dto"
	"salon/shared/model"
)

type row struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Skipped string `db:"-"`
	Plain   string
	model.Metadata
}

func TestDBColumns(t *testing.T) {
	var zero row

	assert.Equal(t,
		[]string{"id", "name", "created_at", "modified_at", "created_by", "modified_by"},
		dbColumns(reflect.TypeOf(zero)),
	)
}

func TestOrderBy(t *testing.T) {
	repo := Repository[row]{tieBreakers: []string{"appointment_date", "appointment_time"}}

	tests := []struct {
		name   string
		params dto.QueryParams
		want   string
	}{
		{
			name: "tie breakers only",
			want: " ORDER BY appointment_date ASC, appointment_time ASC",
		},
		{
			name:   "requested sort first",
			params: dto.QueryParams{SortBy: "status", SortDir: dto.SortDirDesc},
			want:   " ORDER BY status DESC, appointment_date ASC, appointment_time ASC",
		},
		{
			name:   "tie breaker not repeated",
			params: dto.QueryParams{SortBy: "appointment_date", SortDir: dto.SortDirDesc},
			want:   " ORDER BY appointment_date DESC, appointment_time ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repo.orderBy(tt.params))
		})
	}

	t.Run("nothing to order by", func(t *testing.T) {
		empty := Repository[row]{}
		assert.Empty(t, empty.orderBy(dto.QueryParams{}))
	})
}

func TestPaginate(t *testing.T) {
	args := map[string]any{}
	assert.Empty(t, paginate(dto.QueryParams{}, args))
	assert.Empty(t, args)

	args = map[string]any{}
	assert.Equal(t, " LIMIT :limit", paginate(dto.QueryParams{Limit: 5}, args))
	assert.Equal(t, map[string]any{"limit": 5}, args)

	args = map[string]any{}
	assert.Equal(t, " LIMIT :limit OFFSET :offset", paginate(dto.QueryParams{Page: 3, Limit: 10}, args))
	assert.Equal(t, map[string]any{"limit": 10, "offset": 20}, args)
}

func TestSelectList(t *testing.T) {
	repo := Repository[row]{table: "clients", columns: []string{"id", "name", "created_at"}}

	assert.Equal(t, "clients.id, clients.name, clients.created_at", repo.selectList(nil))
	assert.Equal(t, "clients.name", repo.selectList([]string{"name"}))
}

func TestBuildWhereClause(t *testing.T) {
	repo := Repository[row]{}

	where, args := repo.BuildWhereClause(dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.BuildWhereClause(dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "name", Operator: dto.FilterOperatorEq, Value: "Maria", Table: "clients"},
		},
	})
	assert.Contains(t, where, " WHERE ")
	assert.Contains(t, where, "clients.name")
	assert.Equal(t, "Maria", args["name"])
}
