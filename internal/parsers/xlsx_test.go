package parsers

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, name, cell); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestParseStockXLSX(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Lagernr", "Varenr", "Navn", "Lokation", "Antal", "Kostpris", "Lagerværdi"},
		{"Z00124", "123456", "Aspirin Junior", "101", 5, "12,50", "62,50"},
		{"short", "row"},
		{"Z00125", "123457", "Metformin 500mg", "101", 15, 3, 45},
	})
	rows, err := ParseStockXLSX(r)
	if err != nil {
		t.Fatalf("ParseStockXLSX: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows (short row dropped), got %d", len(rows))
	}
	if rows[0].Name != "Aspirin Junior" || rows[0].Quantity != 5 {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[0].UnitCost != 12.5 {
		t.Errorf("unit cost = %v, want 12.5", rows[0].UnitCost)
	}
	if rows[1].SKU != "123457" || rows[1].Quantity != 15 {
		t.Errorf("row 1 = %+v", rows[1])
	}
}

func TestParseStockXLSXNotAWorkbook(t *testing.T) {
	if _, err := ParseStockXLSX(bytes.NewReader([]byte("not an xlsx"))); err == nil {
		t.Fatal("expected error for non-workbook input")
	}
}
