package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const tradeCSV = `Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude
Iraq,Turkey,Export,120.5,33.3,44.4
Iraq,Iran,Import,80,33.3,44.4
Jordan,Iraq,Export,60,31.9,35.9
`

const boundaryJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "Iraq"},
     "geometry": {"type": "Polygon", "coordinates": [[[39,29],[48,29],[48,37],[39,37],[39,29]]]}},
    {"type": "Feature", "properties": {"name": "Jordan"},
     "geometry": {"type": "MultiPolygon", "coordinates": [[[[35,29],[39,29],[39,33],[35,33],[35,29]]]]}}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	path := filepath.Join(t.TempDir(), "trades.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
