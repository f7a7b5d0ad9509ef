package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/EmilioGomex/oac-cix-project/internal/model"
)

// CSVFileName nombre del consolidado que descarga la interfaz
const CSVFileName = "resultados_cix_consolidados.csv"

// ConsolidatedCSV todas las evaluaciones listadas, con las mismas columnas
// que la tabla del backend
func ConsolidatedCSV(records []model.Evaluation) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	cols := model.TableColumns()
	if err := w.Write(cols); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for i := range records {
		if err := w.Write(recordValues(&records[i], cols)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// recordValues valores de una evaluación en el orden de las columnas
func recordValues(e *model.Evaluation, cols []string) []string {
	row := e.Row()
	row["id"] = e.ID
	row["created_at"] = e.CreatedAt

	out := make([]string, 0, len(cols))
	for _, col := range cols {
		out = append(out, formatValue(row[col]))
	}
	return out
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprint(t)
	}
}
