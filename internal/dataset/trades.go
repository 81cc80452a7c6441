package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"

	"traderoutes/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// TradeFormat is the container format of a trade data file.
type TradeFormat string

const (
	TradeFormatCSV  TradeFormat = "csv"
	TradeFormatXLSX TradeFormat = "xlsx"
)

// TradeFormatFromPath picks the format from the file extension.
func TradeFormatFromPath(path string) (TradeFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return TradeFormatCSV, nil
	case ".xlsx":
		return TradeFormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseTrades reads trade records from r in the given format.
func ParseTrades(r io.Reader, format TradeFormat) ([]domain.TradeRecord, error) {
	switch format {
	case TradeFormatCSV:
		return ParseTradesCSV(r)
	case TradeFormatXLSX:
		return ParseTradesXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ParseTradesCSV reads a header-indexed CSV. A leading UTF-8 BOM is ignored.
func ParseTradesCSV(r io.Reader) ([]domain.TradeRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, parseErr.Line, parseErr.Err)
		}
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return parseTradeRows(rows)
}

// ParseTradesXLSX reads the first sheet of a workbook.
func ParseTradesXLSX(r io.Reader) ([]domain.TradeRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	// excelize reports blank rows as empty slices
	kept := rows[:0]
	for _, row := range rows {
		if !blankRow(row) {
			kept = append(kept, row)
		}
	}
	return parseTradeRows(kept)
}

func parseTradeRows(rows [][]string) ([]domain.TradeRecord, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	index, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.TradeRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		rec, err := parseTradeRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedRow, line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range domain.TradeColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}

func parseTradeRow(row []string, index map[string]int) (domain.TradeRecord, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		rec domain.TradeRecord
		err error
	)
	rec.Country = cell(domain.ColumnCountry)
	rec.TradePartner = cell(domain.ColumnTradePartner)
	rec.TradeType = cell(domain.ColumnTradeType)

	if rec.TradeVolume, err = parseNumber(domain.ColumnTradeVolume, cell(domain.ColumnTradeVolume)); err != nil {
		return rec, err
	}
	if rec.Latitude, err = parseNumber(domain.ColumnLatitude, cell(domain.ColumnLatitude)); err != nil {
		return rec, err
	}
	if rec.Longitude, err = parseNumber(domain.ColumnLongitude, cell(domain.ColumnLongitude)); err != nil {
		return rec, err
	}

	if err := validate.Struct(rec); err != nil {
		return rec, formatValidationError(err)
	}
	return rec, nil
}

func parseNumber(column, value string) (float64, error) {
	if value == "" {
		return 0, fmt.Errorf("column %s is empty", column)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not a number", column, value)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("column %s: %q is not a finite number", column, value)
	}
	return v, nil
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("column %s is required", fe.Field()))
		case "gte":
			messages = append(messages, fmt.Sprintf("column %s must be at least %s", fe.Field(), fe.Param()))
		case "lte":
			messages = append(messages, fmt.Sprintf("column %s must be at most %s", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("column %s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(messages, "; "))
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
