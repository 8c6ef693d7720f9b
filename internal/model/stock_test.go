package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockAdjustmentDecode(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{"bare_positive", `25`, 25, false},
		{"bare_negative", `-200`, -200, false},
		{"object", `{"delta": -3}`, -3, false},
		{"object_zero", `{"delta": 0}`, 0, false},
		{"object_missing_delta", `{}`, 0, true},
		{"object_unknown_field", `{"delta": 1, "qty": 2}`, 0, true},
		{"null", `null`, 0, true},
		{"fraction", `1.5`, 0, true},
		{"string", `"4"`, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var adj StockAdjustment
			err := json.Unmarshal([]byte(tc.body), &adj)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, adj.Delta)
		})
	}
}

func TestPriceEncodesAsNumber(t *testing.T) {
	b, err := json.Marshal(ProductV1{ID: 1, Name: "Classic Product", Price: decimal.RequireFromString("19.99")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Classic Product","price":19.99}`, string(b))

	var p ProductV1
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","price":"9.99"}`), &p))
	assert.True(t, p.Price.Equal(decimal.RequireFromString("9.99")))
}
