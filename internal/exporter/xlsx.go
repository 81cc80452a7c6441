package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"traderoutes/pkg/contracts/domain"
)

const (
	SheetRecords   = "Records"
	SheetPartners  = "Partners"
	SheetCountries = "Countries"
)

// WriteWorkbook writes the view as an XLSX workbook with one sheet for the
// records and one per aggregation.
func WriteWorkbook(w io.Writer, view *domain.View) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetRecords); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(domain.TradeColumns))
	for i, c := range domain.TradeColumns {
		header[i] = c
	}
	rows := make([][]interface{}, 0, len(view.Records)+1)
	rows = append(rows, header)
	for _, r := range view.Records {
		rows = append(rows, []interface{}{r.Country, r.TradePartner, r.TradeType, r.TradeVolume, r.Latitude, r.Longitude})
	}
	if err := writeSheet(f, SheetRecords, rows); err != nil {
		return err
	}

	for _, agg := range []struct {
		sheet string
		key   domain.GroupKey
		rows  []domain.AggregateRow
	}{
		{SheetPartners, domain.GroupByPartner, view.PartnerVolumes},
		{SheetCountries, domain.GroupByCountry, view.CountryVolumes},
	} {
		if _, err := f.NewSheet(agg.sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", agg.sheet, err)
		}
		out := make([][]interface{}, 0, len(agg.rows)+1)
		out = append(out, []interface{}{string(agg.key), domain.ColumnTradeVolume})
		for _, row := range agg.rows {
			out = append(out, []interface{}{row.Key, row.TotalVolume})
		}
		if err := writeSheet(f, agg.sheet, out); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
