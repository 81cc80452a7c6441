package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traderoutes/pkg/contracts/domain"
)

func TestWriteRecordsCSV(t *testing.T) {
	tests := []struct {
		name     string
		records  []domain.TradeRecord
		bom      bool
		expected string
	}{
		{
			name:     "header only",
			records:  nil,
			expected: "Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\n",
		},
		{
			name:    "records with bom",
			records: sampleView().Records,
			bom:     true,
			expected: "\xEF\xBB\xBFCountry,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\n" +
				"Iraq,Turkey,Export,120.5,33.3,44.4\n",
		},
		{
			name:    "quotes commas",
			records: []domain.TradeRecord{{Country: "Korea, South", TradePartner: "X", TradeType: "Export", TradeVolume: 1}},
			expected: "Country,Trade_Partner,Trade_Type,Trade_Volume,Latitude,Longitude\n" +
				"\"Korea, South\",X,Export,1,0,0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteRecordsCSV(&buf, tt.records, tt.bom))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteAggregatesCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []domain.AggregateRow{{Key: "Iraq", TotalVolume: 240.75}, {Key: "Jordan", TotalVolume: 70.1}}

	require.NoError(t, WriteAggregatesCSV(&buf, domain.GroupByCountry, rows, false))
	assert.Equal(t, "Country,Trade_Volume\nIraq,240.75\nJordan,70.1\n", buf.String())
}
