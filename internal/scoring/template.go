package scoring

import (
	"strings"

	"github.com/EmilioGomex/oac-cix-project/internal/model"
	"github.com/EmilioGomex/oac-cix-project/internal/sheet"
)

// Metadata metadatos leídos de las celdas fijas de la plantilla (sin fallbacks)
type Metadata struct {
	OrganizationName  string
	ReportingPeriod   string
	DocumentationLink string
}

// TemplateReader lee metadatos y puntuaciones de una tabla cruda.
// Separa la geometría de la plantilla de la aritmética de puntuación, de modo
// que una variante de plantilla nueva es solo otra implementación.
type TemplateReader interface {
	ReadMetadata(g sheet.Grid) Metadata
	ReadScores(g sheet.Grid) map[string]float64
}

// StandardTemplate la disposición fija de la plantilla CIX del OAC:
// metadatos en filas 5-7 columna 1 (índices desde cero), nombres de indicador
// en columnas 0-1, marcas de calificación en columnas 4-7 (N, P, T, E).
type StandardTemplate struct{}

const (
	organizationRow = 5
	periodRow       = 6
	linkRow         = 7
	metadataCol     = 1
)

// ratingCols columnas de calificación, en el mismo orden que model.RatingLevels
var ratingCols = []int{4, 5, 6, 7}

func (StandardTemplate) ReadMetadata(g sheet.Grid) Metadata {
	return Metadata{
		OrganizationName:  g.Cell(organizationRow, metadataCol),
		ReportingPeriod:   g.Cell(periodRow, metadataCol),
		DocumentationLink: g.Cell(linkRow, metadataCol),
	}
}

func (StandardTemplate) ReadScores(g sheet.Grid) map[string]float64 {
	scores := make(map[string]float64, len(model.Indicators))
	for _, name := range model.Indicators {
		scores[name] = scoreIndicator(g, name)
	}
	return scores
}

// scoreIndicator localiza la fila del indicador y devuelve el peso de la primera
// columna de calificación marcada con "x" (gana la de más a la izquierda).
// Sin marca, o indicador ausente, la puntuación es 0.
func scoreIndicator(g sheet.Grid, name string) float64 {
	row := findIndicatorRow(g, name)
	if row < 0 {
		return 0
	}
	for i, col := range ratingCols {
		if strings.EqualFold(g.Cell(row, col), "x") {
			return model.RatingLevels[i].Weight
		}
	}
	return 0
}

// findIndicatorRow primera fila cuyo contenido en la columna 0 o 1 coincide
// exactamente con el nombre del indicador
func findIndicatorRow(g sheet.Grid, name string) int {
	for r := 0; r < g.RowCount(); r++ {
		if g.Cell(r, 0) == name || g.Cell(r, 1) == name {
			return r
		}
	}
	return -1
}
