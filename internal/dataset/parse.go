package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// headerIndex maps the columns this package reads to their CSV positions.
type headerIndex struct {
	name, code, year, value int
}

// Parse reads a population CSV into a snapshot. Source is recorded on the
// snapshot for display only. Any structural problem aborts the whole parse.
func Parse(r io.Reader, source string) (*Snapshot, error) {
	cr := csv.NewReader(newBOMSkippingReader(r))
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Err: errors.New("empty document")}
		}
		return nil, &ParseError{Line: 1, Err: err}
	}

	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Line: csvErr.Line, Err: csvErr.Err}
			}
			return nil, &ParseError{Err: err}
		}

		line, _ := cr.FieldPos(0)
		rec, err := parseRow(row, idx, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return NewSnapshot(source, records), nil
}

func indexHeader(header []string) (headerIndex, error) {
	idx := headerIndex{name: -1, code: -1, year: -1, value: -1}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case ColumnCountryName:
			idx.name = i
		case ColumnCountryCode:
			idx.code = i
		case ColumnYear:
			idx.year = i
		case ColumnValue:
			idx.value = i
		}
	}

	var missing []string
	if idx.name < 0 {
		missing = append(missing, ColumnCountryName)
	}
	if idx.year < 0 {
		missing = append(missing, ColumnYear)
	}
	if idx.value < 0 {
		missing = append(missing, ColumnValue)
	}
	if len(missing) > 0 {
		return idx, &ParseError{
			Line: 1,
			Err:  fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", ")),
		}
	}
	return idx, nil
}

func parseRow(row []string, idx headerIndex, line int) (Record, error) {
	rec := Record{
		CountryName: cleanField(row[idx.name]),
	}
	if idx.code >= 0 {
		rec.CountryCode = cleanField(row[idx.code])
	}
	if rec.CountryName == "" {
		return rec, &ParseError{Line: line, Column: ColumnCountryName, Err: errors.New("empty value")}
	}

	year, err := strconv.Atoi(cleanField(row[idx.year]))
	if err != nil {
		return rec, &ParseError{Line: line, Column: ColumnYear, Err: err}
	}
	rec.Year = year

	value, err := strconv.ParseFloat(cleanField(row[idx.value]), 64)
	if err != nil {
		return rec, &ParseError{Line: line, Column: ColumnValue, Err: err}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return rec, &ParseError{Line: line, Column: ColumnValue, Err: errors.New("not a finite number")}
	}
	rec.Value = value

	return rec, nil
}

// cleanField trims whitespace and replaces invalid UTF-8 with '?'.
// The field is cloned so records do not pin the reader's line buffer.
func cleanField(s string) string {
	return strings.Clone(strings.ToValidUTF8(strings.TrimSpace(s), "?"))
}
