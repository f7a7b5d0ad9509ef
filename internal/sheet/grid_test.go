package sheet

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// TestCell acceso fuera de rango devuelve vacío, nunca error
func TestCell(t *testing.T) {
	g := Grid{
		{"a", " b "},
		{"c"},
	}

	tests := []struct {
		name string
		row  int
		col  int
		want string
	}{
		{"celda normal", 0, 0, "a"},
		{"celda con espacios", 0, 1, "b"},
		{"columna fuera de la fila corta", 1, 1, ""},
		{"fila inexistente", 5, 0, ""},
		{"fila negativa", -1, 0, ""},
		{"columna negativa", 0, -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Cell(tt.row, tt.col); got != tt.want {
				t.Errorf("Cell(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

// TestFromCSV filas de ancho variable se leen sin error; las líneas en
// blanco no producen fila (igual que el lector de la hoja de cálculo)
func TestFromCSV(t *testing.T) {
	data := []byte("a,b,c\nd\n\ne,f\n")
	g, err := FromCSV(data)
	if err != nil {
		t.Fatalf("FromCSV failed: %v", err)
	}
	if g.RowCount() != 3 {
		t.Fatalf("RowCount() = %d, want 3", g.RowCount())
	}
	if got := g.Cell(0, 2); got != "c" {
		t.Errorf("Cell(0,2) = %q, want c", got)
	}
	if got := g.Cell(1, 2); got != "" {
		t.Errorf("Cell(1,2) = %q, want \"\"", got)
	}
	if got := g.Cell(2, 0); got != "e" {
		t.Errorf("Cell(2,0) = %q, want e", got)
	}
}

// TestFromXLSX se lee la primera hoja del libro
func TestFromXLSX(t *testing.T) {
	wb := excelize.NewFile()
	fila := []interface{}{"Alcance 1", "", "", "", "x"}
	if err := wb.SetSheetRow("Sheet1", "A3", &fila); err != nil {
		t.Fatalf("SetSheetRow failed: %v", err)
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}

	g, err := FromXLSX(buf.Bytes())
	if err != nil {
		t.Fatalf("FromXLSX failed: %v", err)
	}
	if got := g.Cell(2, 0); got != "Alcance 1" {
		t.Errorf("Cell(2,0) = %q, want Alcance 1", got)
	}
	if got := g.Cell(2, 4); got != "x" {
		t.Errorf("Cell(2,4) = %q, want x", got)
	}
}

// TestFromXLSXCorrupto bytes que no son un libro válido
func TestFromXLSXCorrupto(t *testing.T) {
	if _, err := FromXLSX([]byte("esto no es un zip")); err == nil {
		t.Fatal("FromXLSX con bytes corruptos debería fallar")
	}
}
