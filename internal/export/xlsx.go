package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/appsumo-tools/invoice-tracker/internal/parsing"
)

const sheetName = "Invoices"

// RecordsXLSX returns an XLSX workbook (as bytes) with one row per record
// under a header row of column names.
func RecordsXLSX(records []parsing.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	for i, col := range Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return nil, fmt.Errorf("writing header cell: %w", err)
		}
	}

	for row, record := range records {
		for col, value := range recordCells(record) {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("writing cell: %w", err)
			}
		}
	}

	// Widen the identifier and reference columns
	_ = f.SetColWidth(sheetName, "A", "A", 38)
	_ = f.SetColWidth(sheetName, "F", "G", 28)
	_ = f.SetColWidth(sheetName, "O", "O", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
