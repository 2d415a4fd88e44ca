// Package parsers converts raw stock export files (CSV or XLSX) from the
// pharmacy ERP into product rows ready for ingestion.
package parsers

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"
)

// ProductRow is one parsed line of a stock export.
type ProductRow struct {
	StockNo    string
	SKU        string
	Name       string
	Location   string
	Quantity   int
	UnitCost   float64
	StockValue float64
}

// minFields is the number of columns a row must have to be accepted:
// stock no, SKU, name, location, quantity, unit cost, stock value.
const minFields = 7

// ParseStockCSV reads a stock export: first line is a header and is
// discarded, blank lines are skipped, and rows with fewer than seven fields
// are dropped rather than failing the whole file. The dropped count is
// logged. Parsing is a pure function of the input; the reader is consumed
// but no state is kept between calls.
func ParseStockCSV(r io.Reader) ([]ProductRow, error) {
	raw, err := io.ReadAll(SkipBOM(r))
	if err != nil {
		return nil, err
	}
	text := decodeText(raw)

	var (
		rows    []ProductRow
		dropped int
		first   = true
	)
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if first {
			first = false // header row
			continue
		}
		if line == "" {
			continue
		}
		fields := splitCSVLine(line)
		if len(fields) < minFields {
			dropped++
			continue
		}
		rows = append(rows, ProductRow{
			StockNo:    fields[0],
			SKU:        fields[1],
			Name:       fields[2],
			Location:   fields[3],
			Quantity:   parseIntDefault(fields[4]),
			UnitCost:   parseFloatDefault(fields[5]),
			StockValue: parseFloatDefault(fields[6]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if dropped > 0 {
		log.Printf("WARN: stock CSV: dropped %d short row(s)", dropped)
	}
	return rows, nil
}

// splitCSVLine splits a line on commas with quote-aware scanning: a double
// quote toggles quoted mode, commas inside quotes do not separate fields,
// and quote characters are not retained. Fields are trimmed.
func splitCSVLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// FileLocation derives a file's location from its first parsed row.
func FileLocation(rows []ProductRow) string {
	if len(rows) == 0 {
		return "Unknown"
	}
	return rows[0].Location
}

func parseIntDefault(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// parseFloatDefault parses a decimal that may use a comma separator, as the
// Danish ERP exports do.
func parseFloatDefault(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
