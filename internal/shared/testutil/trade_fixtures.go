package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"traderoutes/internal/dataset"
)

// SampleTradeCSV covers three countries, three trade types and a partner
// shared between countries.
const SampleTradeCSV = `Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude
Iraq,Turkey,Export,120.5,33.3,44.4
Iraq,Iran,Import,80,33.3,44.4
Iraq,Turkey,Import,40.25,36.2,43.9
Jordan,Iraq,Export,60,31.9,35.9
Jordan,Egypt,Re-export,10.1,31.9,35.9
Kuwait,Iraq,Export,0.2,29.4,47.9
`

// SampleBoundaryGeoJSON has one boundary without trade data (Syria).
const SampleBoundaryGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "Iraq"},
     "geometry": {"type": "Polygon", "coordinates": [[[39,29],[48,29],[48,37],[39,37],[39,29]]]}},
    {"type": "Feature", "properties": {"name": "Jordan"},
     "geometry": {"type": "Polygon", "coordinates": [[[35,29],[39,29],[39,33],[35,33],[35,29]]]}},
    {"type": "Feature", "properties": {"name": "Syria"},
     "geometry": {"type": "Polygon", "coordinates": [[[36,32],[42,32],[42,37],[36,37],[36,32]]]}}
  ]
}`

// WriteSampleFiles writes the sample trade and boundary files to a temp dir.
func WriteSampleFiles(t *testing.T) dataset.Source {
	t.Helper()
	dir := t.TempDir()

	src := dataset.Source{
		TradeFile:    filepath.Join(dir, "trade_data.csv"),
		BoundaryFile: filepath.Join(dir, "countries.geojson"),
	}
	require.NoError(t, os.WriteFile(src.TradeFile, []byte(SampleTradeCSV), 0644))
	require.NoError(t, os.WriteFile(src.BoundaryFile, []byte(SampleBoundaryGeoJSON), 0644))
	return src
}

// LoadSampleDataset loads the sample files.
func LoadSampleDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	logger, _ := NewTestLogger(t)
	d, err := dataset.Load(context.Background(), WriteSampleFiles(t), logger)
	require.NoError(t, err)
	return d
}
