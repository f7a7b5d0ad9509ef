package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid tabla cruda sin fila de cabecera, indexada por (fila, columna) desde cero.
// Las filas pueden tener anchos distintos; el acceso fuera de rango devuelve vacío.
type Grid [][]string

// Cell contenido recortado de la celda; fuera de los límites de la hoja devuelve ""
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// RowCount número de filas de la tabla
func (g Grid) RowCount() int {
	return len(g)
}

// FromCSV lee un CSV completo como tabla cruda
func FromCSV(data []byte) (Grid, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // la plantilla tiene filas de ancho variable
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return Grid(records), nil
}

// FromXLSX lee la primera hoja de un libro xlsx como tabla cruda
func FromXLSX(data []byte) (Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return Grid(rows), nil
}
