// Package export writes derived dashboard tables to spreadsheet files.
package export

import (
	"fmt"
	"io"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"

	"github.com/JonMunkholm/popdash/internal/views"
)

// Sheet names in the comparison workbook.
const (
	SheetComparison = "Comparison"
	SheetLong       = "Long"
)

// ContentType is the MIME type of the workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FileName is a download name for the comparison of a and b.
func FileName(sel views.Selection) string {
	return fmt.Sprintf("population-%s-vs-%s.xlsx", sel.A, sel.B)
}

// WriteComparisonXLSX writes every joined row of v to a "Comparison" sheet
// and the long-form chart table to a "Long" sheet.
func WriteComparisonXLSX(w io.Writer, v views.ComparisonView) error {
	wb := xlsx.NewFile()
	wb.SetSheetName(wb.GetSheetName(0), SheetComparison)
	wb.NewSheet(SheetLong)

	header := v.Table.Columns()
	rows := make([][]interface{}, 0, len(v.Table.Rows)+1)
	rows = append(rows, []interface{}{header[0], header[1], header[2]})
	for _, r := range v.Table.Rows {
		rows = append(rows, []interface{}{r.Year, r.ValueA, r.ValueB})
	}
	if err := writeRows(wb, SheetComparison, rows); err != nil {
		return err
	}

	long := make([][]interface{}, 0, len(v.Long)+1)
	long = append(long, []interface{}{views.FieldCountry, views.FieldYear, views.FieldValue})
	for _, r := range v.Long {
		long = append(long, []interface{}{r.Country, r.Year, r.Value})
	}
	if err := writeRows(wb, SheetLong, long); err != nil {
		return err
	}

	if err := wb.SetColWidth(SheetComparison, "A", "C", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	wb.SetActiveSheet(0)

	if err := wb.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(wb *xlsx.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := xlsx.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
