package dataset

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traderoutes/pkg/contracts/domain"
)

func TestLoad(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	src := Source{
		TradeFile:    writeFile(t, "trades.csv", tradeCSV),
		BoundaryFile: writeFile(t, "countries.geojson", boundaryJSON),
	}

	d, err := Load(context.Background(), src, logger)
	require.NoError(t, err)

	assert.Equal(t, 3, d.RecordCount())
	assert.Equal(t, 2, d.BoundaryCount())
	assert.Equal(t, []string{"Iraq", "Jordan"}, d.Countries())
	assert.Equal(t, []string{"Export", "Import"}, d.TradeTypes())
	assert.Equal(t, "Iraq", d.DefaultCountry())
	assert.True(t, d.HasCountry("Jordan"))
	assert.False(t, d.HasCountry("Syria"))
	assert.Equal(t, src, d.Source())
	assert.False(t, d.LoadedAt().IsZero())

	opts := d.Options()
	require.NotNil(t, opts.Bounds)
	assert.Equal(t, domain.Bounds{MinLongitude: 35, MinLatitude: 29, MaxLongitude: 48, MaxLatitude: 37}, *opts.Bounds)
	assert.Equal(t, 3, opts.RecordCount)
}

func TestLoad_Errors(t *testing.T) {
	good := writeFile(t, "trades.csv", tradeCSV)
	goodBoundaries := writeFile(t, "countries.geojson", boundaryJSON)

	tests := []struct {
		name    string
		src     Source
		wantErr error
	}{
		{name: "missing trade file", src: Source{TradeFile: "/nonexistent/trades.csv", BoundaryFile: goodBoundaries}, wantErr: os.ErrNotExist},
		{name: "missing boundary file", src: Source{TradeFile: good, BoundaryFile: "/nonexistent/b.geojson"}, wantErr: os.ErrNotExist},
		{name: "unsupported trade format", src: Source{TradeFile: writeFile(t, "trades.txt", tradeCSV), BoundaryFile: goodBoundaries}, wantErr: ErrUnsupportedFormat},
		{name: "malformed trade row", src: Source{TradeFile: writeFile(t, "bad.csv", "Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\nA,X,Export,x,1,1\n"), BoundaryFile: goodBoundaries}, wantErr: ErrMalformedRow},
		{name: "invalid boundary", src: Source{TradeFile: good, BoundaryFile: writeFile(t, "bad.geojson", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":null}]}`)}, wantErr: ErrInvalidBoundary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Load(context.Background(), tt.src, nil)
			assert.Nil(t, d)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDataset_AccessorsReturnCopies(t *testing.T) {
	records := []domain.TradeRecord{{Country: "A", TradePartner: "X", TradeType: "Export", TradeVolume: 1}}
	d := New(records, []domain.BoundaryFeature{{Name: "A"}})

	records[0].Country = "changed"
	assert.Equal(t, "A", d.Records()[0].Country)

	got := d.Records()
	got[0].TradeVolume = 99
	assert.Equal(t, 1.0, d.Records()[0].TradeVolume)

	b := d.Boundaries()
	v := 5.0
	b[0].TradeVolume = &v
	assert.Nil(t, d.Boundaries()[0].TradeVolume)

	c := d.Countries()
	c[0] = "Z"
	assert.Equal(t, "A", d.DefaultCountry())
}

func TestDataset_Empty(t *testing.T) {
	d := New(nil, nil)
	assert.Equal(t, "", d.DefaultCountry())
	opts := d.Options()
	assert.Empty(t, opts.Countries)
	assert.NotNil(t, opts.Countries)
	assert.Nil(t, opts.Bounds)
}
