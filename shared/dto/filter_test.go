package dto_test

import (
	"testing"

	"lodge/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestFilterGetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table prefix",
			filter:    dto.Filter{Field: "status", Value: "Active", Operator: dto.FilterOperatorEq, Table: "bookings"},
			wantWhere: "bookings.status = :status",
			wantArgs:  map[string]any{"status": "Active"},
		},
		{
			name:      "like wraps the value in wildcards",
			filter:    dto.Filter{Field: "guest_name", Value: "john", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(guest_name) LIKE LOWER(:guest_name) ",
			wantArgs:  map[string]any{"guest_name": "%john%"},
		},
		{
			name:      "custom arg name avoids collisions",
			filter:    dto.Filter{ArgName: "check_in_from", Field: "check_in", Value: "2026-03-01", Operator: dto.FilterOperatorGreaterEq, Table: "bookings"},
			wantWhere: "bookings.check_in >= :check_in_from",
			wantArgs:  map[string]any{"check_in_from": "2026-03-01"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			where, args := test.filter.GetWhereClause()

			assert.Equal(t, test.wantWhere, where)
			assert.Equal(t, test.wantArgs, args)
		})
	}
}

func TestFilterGroupGetWhereClause(t *testing.T) {
	t.Run("empty group produces no clause", func(t *testing.T) {
		group := dto.FilterGroup{}

		where, args := group.GetWhereClause()

		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("nested OR group inside an AND group", func(t *testing.T) {
		group := dto.FilterGroup{
			Filters: []any{
				dto.Filter{Field: "status", Value: "Active", Operator: dto.FilterOperatorEq},
				dto.FilterGroup{
					Operator: dto.FilterGroupOperatorOr,
					Filters: []any{
						dto.Filter{Field: "guest_name", Value: "john", Operator: dto.FilterOperatorLike},
						dto.Filter{ArgName: "search_room_no", Field: "room_no", Value: "john", Operator: dto.FilterOperatorLike},
					},
				},
			},
		}

		where, args := group.GetWhereClause()

		assert.Contains(t, where, "status = :status")
		assert.Contains(t, where, " OR ")
		assert.Contains(t, where, " AND ")
		assert.Equal(t, "%john%", args["guest_name"])
		assert.Equal(t, "%john%", args["search_room_no"])
	})
}
