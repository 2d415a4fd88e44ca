package parsers

import (
	"fmt"
	"io"
	"log"

	"github.com/xuri/excelize/v2"
)

// ParseStockXLSX reads a stock export from an Excel workbook. The first
// sheet is used, the first row is treated as a header, and rows follow the
// same column mapping and leniency policy as the CSV parser.
func ParseStockXLSX(r io.Reader) ([]ProductRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	var (
		rows    []ProductRow
		dropped int
	)
	for i, rec := range cells {
		if i == 0 {
			continue // header row
		}
		if isRowEmpty(rec) {
			continue
		}
		if len(rec) < minFields {
			dropped++
			continue
		}
		rows = append(rows, ProductRow{
			StockNo:    rec[0],
			SKU:        rec[1],
			Name:       rec[2],
			Location:   rec[3],
			Quantity:   parseIntDefault(rec[4]),
			UnitCost:   parseFloatDefault(rec[5]),
			StockValue: parseFloatDefault(rec[6]),
		})
	}
	if dropped > 0 {
		log.Printf("WARN: stock XLSX: dropped %d short row(s)", dropped)
	}
	return rows, nil
}

func isRowEmpty(rec []string) bool {
	for _, cell := range rec {
		if cell != "" {
			return false
		}
	}
	return true
}
