package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"traderoutes/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes headers and records to w.
func WriteCSV(w io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteRecordsCSV writes trade records with the source column header.
func WriteRecordsCSV(w io.Writer, records []domain.TradeRecord, bom bool) error {
	return WriteCSV(w, WriteOptions{
		Headers:   domain.TradeColumns,
		Records:   recordRows(records),
		BOMPrefix: bom,
	})
}

// WriteAggregatesCSV writes aggregate rows under a header naming the group column.
func WriteAggregatesCSV(w io.Writer, key domain.GroupKey, rows []domain.AggregateRow, bom bool) error {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = []string{row.Key, formatFloat(row.TotalVolume)}
	}
	return WriteCSV(w, WriteOptions{
		Headers:   []string{string(key), domain.ColumnTradeVolume},
		Records:   out,
		BOMPrefix: bom,
	})
}

func recordRows(records []domain.TradeRecord) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.Country,
			r.TradePartner,
			r.TradeType,
			formatFloat(r.TradeVolume),
			formatFloat(r.Latitude),
			formatFloat(r.Longitude),
		}
	}
	return rows
}
