package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "csv", want: FormatCSV},
		{input: "XLSX", want: FormatXLSX},
		{input: " png ", want: FormatPNG},
		{input: "geojson", want: FormatGeoJSON},
		{input: "pdf", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
	assert.Equal(t, "image/png", FormatPNG.ContentType())
	assert.Equal(t, "application/geo+json", FormatGeoJSON.ContentType())
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
	assert.Equal(t, "application/octet-stream", Format("zip").ContentType())
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "trade_report_Iraq.csv", FileName("Iraq", FormatCSV))
	assert.Equal(t, "trade_report_Saudi_Arabia.xlsx", FileName("Saudi Arabia", FormatXLSX))
	assert.Equal(t, "trade_report_C_te_d_Ivoire.png", FileName("C?te d'Ivoire", FormatPNG))
	assert.Equal(t, "trade_report.geojson", FileName("  ", FormatGeoJSON))
	assert.Equal(t, "trade_report_a_b.csv", FileName("../a/b/", FormatCSV))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0", formatFloat(0))
	assert.Equal(t, "123", formatFloat(123))
	assert.Equal(t, "120.5", formatFloat(120.5))
	assert.Equal(t, "0.000001", formatFloat(0.000001))
	assert.Equal(t, "-789.123", formatFloat(-789.123))
}
