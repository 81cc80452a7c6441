package dataset

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoundaries(t *testing.T) {
	features, err := ParseBoundaries([]byte(boundaryJSON))
	require.NoError(t, err)
	require.Len(t, features, 2)

	assert.Equal(t, "Iraq", features[0].Name)
	assert.IsType(t, orb.Polygon{}, features[0].Geometry)
	assert.Nil(t, features[0].TradeVolume)

	assert.Equal(t, "Jordan", features[1].Name)
	assert.IsType(t, orb.MultiPolygon{}, features[1].Geometry)
}

func TestParseBoundaries_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		invalid bool
	}{
		{name: "not json", input: `{`},
		{
			name:    "missing name",
			input:   `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"NAME":"Iraq"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`,
			invalid: true,
		},
		{
			name:    "numeric name",
			input:   `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"name":7},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`,
			invalid: true,
		},
		{
			name:    "point geometry",
			input:   `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"name":"Iraq"},"geometry":{"type":"Point","coordinates":[44,33]}}]}`,
			invalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBoundaries([]byte(tt.input))
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidBoundary)
			}
		})
	}
}

func TestParseBoundaries_EmptyCollection(t *testing.T) {
	features, err := ParseBoundaries([]byte(`{"type":"FeatureCollection","features":[]}`))
	require.NoError(t, err)
	assert.Empty(t, features)
}
