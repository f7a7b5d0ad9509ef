package scoring

import (
	"strings"

	"github.com/EmilioGomex/oac-cix-project/internal/model"
	"github.com/EmilioGomex/oac-cix-project/internal/sheet"
)

// Valores por defecto cuando la celda de metadatos está vacía
const (
	defaultPeriod = "Unknown"
	defaultLink   = "N/A"
)

// ExtractAndScore procesa un informe con la plantilla estándar y calcula su
// evaluación CIX. Función pura: bytes y nombre idénticos producen un registro
// idéntico (StoredFileURL se asigna después, al subir el archivo).
func ExtractAndScore(data []byte, sourceName string) (*model.Evaluation, error) {
	return ExtractAndScoreWith(StandardTemplate{}, data, sourceName)
}

// ExtractAndScoreWith igual que ExtractAndScore con un lector de plantilla concreto
func ExtractAndScoreWith(tpl TemplateReader, data []byte, sourceName string) (*model.Evaluation, error) {
	grid, err := loadGrid(data, sourceName)
	if err != nil {
		return nil, err
	}

	meta := tpl.ReadMetadata(grid)
	scores := tpl.ReadScores(grid)

	// El promedio siempre divide entre los diez indicadores fijos, no entre
	// los encontrados; los ausentes cuentan como 0. Compatibilidad con los
	// resultados ya almacenados.
	var total float64
	for _, name := range model.Indicators {
		total += scores[name]
	}
	total /= float64(len(model.Indicators))

	org := meta.OrganizationName
	if org == "" {
		org = organizationFromFileName(sourceName)
	}
	period := meta.ReportingPeriod
	if period == "" {
		period = defaultPeriod
	}
	link := meta.DocumentationLink
	if link == "" {
		link = defaultLink
	}

	return &model.Evaluation{
		OrganizationName:  org,
		ReportingPeriod:   period,
		DocumentationLink: link,
		IndicatorScores:   scores,
		TotalScore:        total,
	}, nil
}

// loadGrid despacha por sufijo del nombre de archivo y carga la tabla cruda
func loadGrid(data []byte, sourceName string) (sheet.Grid, error) {
	var (
		grid sheet.Grid
		err  error
	)
	switch {
	case strings.HasSuffix(strings.ToLower(sourceName), ".csv"):
		grid, err = sheet.FromCSV(data)
	case strings.HasSuffix(strings.ToLower(sourceName), ".xlsx"):
		grid, err = sheet.FromXLSX(data)
	default:
		return nil, &UnsupportedFormatError{File: sourceName}
	}
	if err != nil {
		return nil, &MalformedInputError{File: sourceName, Err: err}
	}
	return grid, nil
}

// organizationFromFileName prefijo del nombre antes del primer guión, sin las
// extensiones: "AcmeCorp-2024.xlsx" -> "AcmeCorp"
func organizationFromFileName(name string) string {
	org := strings.SplitN(name, "-", 2)[0]
	org = strings.ReplaceAll(org, ".xlsx", "")
	org = strings.ReplaceAll(org, ".csv", "")
	return org
}
