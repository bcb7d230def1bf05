package shared_test

import (
	"testing"

	"lodge/shared"
	"lodge/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "empty collection has zero pages", total: 0, limit: 10, want: 0},
		{name: "exact multiple", total: 20, limit: 10, want: 2},
		{name: "remainder adds a page", total: 21, limit: 10, want: 3},
		{name: "zero limit collapses to one page", total: 5, limit: 0, want: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, shared.CalculateTotalPage(test.total, test.limit))
		})
	}
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:room-1", shared.BuildCacheKey("room:get", "room-1"))
	assert.Equal(t, "booking:gets", shared.BuildCacheKey("booking:gets"))
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("room-1", "id", "rooms")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, "room-1", args["id"])
}

func TestTransformFields(t *testing.T) {
	type update struct {
		RoomNo   string `db:"room_no"`
		RoomType string `db:"room_type"`
	}

	fields := shared.TransformFields(update{RoomNo: "101"}, "admin-1")

	assert.Equal(t, "101", fields["room_no"])
	assert.NotContains(t, fields, "room_type")
	assert.Equal(t, "admin-1", fields["modified_by"])
	assert.Contains(t, fields, "modified_at")
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByID("room-1", "id", "rooms")

	first := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("room:gets", params, shared.FilterByID("room-2", "id", "rooms"))

	assert.NotEqual(t, first, second)
	assert.Contains(t, first, "room:gets")
}
