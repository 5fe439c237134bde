package postgresql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryBuilder_Build(t *testing.T) {
	testCases := []struct {
		name      string
		build     func() *SelectBuilder
		wantQuery string
		wantArgs  []any
	}{
		{
			name: "select all",
			build: func() *SelectBuilder {
				return NewQueryBuilder().From("orders")
			},
			wantQuery: "SELECT * FROM orders",
			wantArgs:  []any{},
		},
		{
			name: "where order limit offset",
			build: func() *SelectBuilder {
				return NewQueryBuilder().
					Select("id", "status").
					From("orders").
					Where("symbol = ?", "BTCUSDT").
					Where("status IN (?, ?)", "NEW", "PARTIALLY_FILLED").
					OrderBy("created_at").
					OrderBy("id", true).
					Limit(10).
					Offset(20)
			},
			wantQuery: "SELECT id, status FROM orders WHERE symbol = $1 AND status IN ($2, $3) ORDER BY created_at ASC, id DESC LIMIT $4 OFFSET $5",
			wantArgs:  []any{"BTCUSDT", "NEW", "PARTIALLY_FILLED", 10, 20},
		},
		{
			name: "build twice is stable",
			build: func() *SelectBuilder {
				qb := NewQueryBuilder().From("trades").Where("symbol = ?", "ETHUSDT").Limit(5)
				qb.Build()
				return qb
			},
			wantQuery: "SELECT * FROM trades WHERE symbol = $1 LIMIT $2",
			wantArgs:  []any{"ETHUSDT", 5},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, args := tc.build().Build()
			assert.Equal(t, tc.wantQuery, query)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}
