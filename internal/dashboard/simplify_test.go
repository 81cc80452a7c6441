package dashboard

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traderoutes/pkg/contracts/domain"
)

func TestSimplify(t *testing.T) {
	withMidpoint := orb.Polygon{orb.Ring{{0, 0}, {1, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}}
	features := []domain.BoundaryFeature{{Name: "A", Geometry: withMidpoint}, {Name: "B"}}

	got := Simplify(features, 0.1)
	require.Len(t, got, 2)

	poly, ok := got[0].Geometry.(orb.Polygon)
	require.True(t, ok)
	assert.NotContains(t, poly[0], orb.Point{1, 0})
	assert.Len(t, poly[0], 5)
	assert.Nil(t, got[1].Geometry)

	assert.Len(t, withMidpoint[0], 6, "input geometry must not change")
}

func TestSimplify_NonPositiveToleranceIsNoop(t *testing.T) {
	features := []domain.BoundaryFeature{{Name: "A", Geometry: square(0, 0, 1)}}
	assert.Equal(t, features, Simplify(features, 0))
	assert.Equal(t, features, Simplify(features, -1))
}
