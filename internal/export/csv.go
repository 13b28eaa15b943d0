package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/appsumo-tools/invoice-tracker/internal/parsing"
)

// RecordsCSV returns the records as CSV with a header row. Absent values
// become empty fields.
func RecordsCSV(records []parsing.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Columns); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}

	for _, record := range records {
		row := make([]string, 0, len(Columns))
		for _, value := range recordCells(record) {
			switch v := value.(type) {
			case nil:
				row = append(row, "")
			case string:
				row = append(row, v)
			case float64:
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			default:
				row = append(row, fmt.Sprintf("%v", v))
			}
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}
