package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupKey_Valid(t *testing.T) {
	assert.True(t, GroupByPartner.Valid())
	assert.True(t, GroupByCountry.Valid())
	assert.False(t, GroupKey("Trade_Type").Valid())
	assert.False(t, GroupKey("").Valid())
}

func TestSelectionRequest_TradeTypesPresence(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantNil   bool
		wantCount int
	}{
		{name: "absent means all", body: `{"country":"A"}`, wantNil: true},
		{name: "empty list means none", body: `{"country":"A","trade_types":[]}`, wantNil: false, wantCount: 0},
		{name: "explicit list", body: `{"trade_types":["Export","Import"]}`, wantNil: false, wantCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SelectionRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.wantNil, req.TradeTypes == nil)
			assert.Len(t, req.TradeTypes, tt.wantCount)
		})
	}
}

func TestBoundaryFeature_NullVolume(t *testing.T) {
	v := 15.0
	data, err := json.Marshal([]BoundaryFeature{{Name: "A", TradeVolume: &v}, {Name: "B"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"A","Trade_Volume":15},{"name":"B","Trade_Volume":null}]`, string(data))
}
