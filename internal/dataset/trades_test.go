package dataset

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traderoutes/pkg/contracts/domain"
)

func TestParseTradesCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []domain.TradeRecord
		wantErr error
	}{
		{
			name:  "canonical header",
			input: tradeCSV,
			want: []domain.TradeRecord{
				{Country: "Iraq", TradePartner: "Turkey", TradeType: "Export", TradeVolume: 120.5, Latitude: 33.3, Longitude: 44.4},
				{Country: "Iraq", TradePartner: "Iran", TradeType: "Import", TradeVolume: 80, Latitude: 33.3, Longitude: 44.4},
				{Country: "Jordan", TradePartner: "Iraq", TradeType: "Export", TradeVolume: 60, Latitude: 31.9, Longitude: 35.9},
			},
		},
		{
			name:  "reordered columns with extra column and BOM",
			input: "\xEF\xBB\xBFLatitude,Longitude,Notes,Trade_Volume,Trade_Type,Trade_Partner,Country\n1.5,2.5,n/a,7,Import,X,A\n",
			want: []domain.TradeRecord{
				{Country: "A", TradePartner: "X", TradeType: "Import", TradeVolume: 7, Latitude: 1.5, Longitude: 2.5},
			},
		},
		{
			name:  "header only",
			input: "Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\n",
			want:  []domain.TradeRecord{},
		},
		{
			name:    "empty file",
			input:   "",
			wantErr: ErrEmptyFile,
		},
		{
			name:    "missing column",
			input:   "Country,Trade_Partner,Trade_Type,Latitude,Longitude\nA,X,Export,1,2\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "non numeric volume",
			input:   "Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\nA,X,Export,lots,1,2\n",
			wantErr: ErrMalformedRow,
		},
		{
			name:    "infinite volume",
			input:   "Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\nA,X,Export,Inf,10,20\n",
			wantErr: ErrMalformedRow,
		},
		{
			name:    "negative infinite longitude",
			input:   "Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\nA,X,Export,3,10,-Inf\n",
			wantErr: ErrMalformedRow,
		},
		{
			name:    "NaN latitude",
			input:   "Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\nA,X,Export,3,NaN,20\n",
			wantErr: ErrMalformedRow,
		},
		{
			name:    "empty volume",
			input:   "Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\nA,X,Export,,1,2\n",
			wantErr: ErrMalformedRow,
		},
		{
			name:    "negative volume",
			input:   "Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\nA,X,Export,-3,1,2\n",
			wantErr: ErrMalformedRow,
		},
		{
			name:    "latitude out of range",
			input:   "Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\nA,X,Export,3,91,2\n",
			wantErr: ErrMalformedRow,
		},
		{
			name:    "missing country",
			input:   "Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\n,X,Export,3,1,2\n",
			wantErr: ErrMalformedRow,
		},
		{
			name:    "short row",
			input:   "Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\nA,X,Export,3\n",
			wantErr: ErrMalformedRow,
		},
		{
			name:    "unterminated quote",
			input:   "Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\n\"A,X,Export,3,1,2\n",
			wantErr: ErrMalformedRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTradesCSV(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTradesCSV_ErrorNamesRowAndColumn(t *testing.T) {
	input := "Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\nA,X,Export,1,1,1\nA,X,Export,-1,1,1\n"
	_, err := ParseTradesCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "Trade_Volume")
}

func TestParseTradesXLSX(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Country", "Trade_Partner", "Trade_Type", "Trade_Volume", "Latitude", "Longitude"},
		{"Iraq", "Turkey", "Export", 120.5, 33.3, 44.4},
		{},
		{"Jordan", "Iraq", "Import", 60, 31.9, 35.9},
	})

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := ParseTradesXLSX(f)
	require.NoError(t, err)
	assert.Equal(t, []domain.TradeRecord{
		{Country: "Iraq", TradePartner: "Turkey", TradeType: "Export", TradeVolume: 120.5, Latitude: 33.3, Longitude: 44.4},
		{Country: "Jordan", TradePartner: "Iraq", TradeType: "Import", TradeVolume: 60, Latitude: 31.9, Longitude: 35.9},
	}, got)
}

func TestParseTradesXLSX_MissingColumn(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Country", "Trade_Partner", "Trade_Volume"},
		{"Iraq", "Turkey", 1},
	})

	_, err := LoadTrades(context.Background(), path)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestTradeFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    TradeFormat
		wantErr bool
	}{
		{path: "data/trade_data.csv", want: TradeFormatCSV},
		{path: "TRADES.CSV", want: TradeFormatCSV},
		{path: "trades.xlsx", want: TradeFormatXLSX},
		{path: "trades.json", wantErr: true},
		{path: "trades", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := TradeFormatFromPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
