package shared_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"salon/shared"
	"salon/shared/cache/mocks"
	"salon/shared/constant"
	"salon/shared/dto"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		value string
		want  *bool
	}{
		{value: "", want: nil},
		{value: "true", want: boolPtr(true)},
		{value: "1", want: boolPtr(true)},
		{value: "false", want: boolPtr(false)},
		{value: "F", want: boolPtr(false)},
		{value: "sim", want: nil},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.value), func(t *testing.T) {
			assert.Equal(t, tt.want, shared.ConvertStringToBool(tt.value))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{total: 0, limit: 10, want: 1},
		{total: 5, limit: 0, want: 1},
		{total: 10, limit: 10, want: 1},
		{total: 11, limit: 10, want: 2},
		{total: 95, limit: 20, want: 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.total, tt.limit), func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type serviceUpdate struct {
	Name        string   `db:"name"`
	Price       float64  `db:"price"`
	Description *string  `db:"description"`
	Active      *bool    `db:"active"`
	Ignored     string   `json:"ignored"`
	Duration    int      `db:"duration"`
	Tags        []string `db:"-"`
}

func TestTransformFields(t *testing.T) {
	description := "corte com lavagem"
	inactive := false

	fields := shared.TransformFields(serviceUpdate{
		Name:        "Corte",
		Description: &description,
		Active:      &inactive,
		Ignored:     "skip",
	}, "admin@salao.com")

	assert.Equal(t, "Corte", fields["name"])
	assert.Equal(t, description, fields["description"])
	assert.Equal(t, false, fields["active"])
	assert.Equal(t, "admin@salao.com", fields[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, fields[constant.FieldModifiedAt])

	assert.NotContains(t, fields, "price")
	assert.NotContains(t, fields, "duration")
	assert.NotContains(t, fields, "ignored")
	assert.Len(t, fields, 5)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("a1", "id", "appointments")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(appointments.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "a1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "settings:hours", shared.BuildCacheKey("settings:hours"))
	assert.Equal(t, "service:get:a1", shared.BuildCacheKey("service:get", "a1"))
	assert.Equal(t, "reminder:sent:a1:2024-01-15:10:00", shared.BuildCacheKey("reminder:sent", "a1", "2024-01-15", "10:00"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "name", SortDir: dto.SortDirAsc}
	active := shared.FilterByField("active", true, "services")
	inactive := shared.FilterByField("active", false, "services")

	first := shared.BuildCacheKeyWithQuery("service:gets", params, active)

	assert.True(t, strings.HasPrefix(first, "service:gets:"))
	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("service:gets", params, active))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("service:gets", params, inactive))

	params.Page = 2
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("service:gets", params, active))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "client:gets*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "client:gets")

	redisCache.EXPECT().Clear(gomock.Any(), "client:gets*").Return(errors.New("redis down"))
	require.NotPanics(t, func() {
		shared.InvalidateCaches(context.Background(), redisCache, "client:gets")
	})
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)}

	assert.True(t, shared.IsUniqueViolation(unique))
	assert.True(t, shared.IsUniqueViolation(fmt.Errorf("failed to insert data (client): %w", unique)))
	assert.False(t, shared.IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, shared.IsUniqueViolation(errors.New("23505")))
	assert.False(t, shared.IsUniqueViolation(nil))
}
