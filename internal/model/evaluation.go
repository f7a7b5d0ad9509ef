package model

import "strings"

// Evaluation una evaluación CIX persistida (una fila de la tabla evaluations)
type Evaluation struct {
	ID                int64              `json:"id"`
	OrganizationName  string             `json:"organizationName"`
	ReportingPeriod   string             `json:"reportingPeriod"`
	DocumentationLink string             `json:"documentationLink"`
	IndicatorScores   map[string]float64 `json:"indicatorScores"`
	TotalScore        float64            `json:"totalScore"`

	// Asignados después de la extracción
	StoredFileURL string `json:"storedFileUrl"`
	CreatedAt     string `json:"createdAt"` // timestamp asignado por el backend
}

// ScoreFor puntuación de un indicador (0 si no está presente)
func (e *Evaluation) ScoreFor(indicator string) float64 {
	if e.IndicatorScores == nil {
		return 0
	}
	return e.IndicatorScores[indicator]
}

// StoredFileName nombre del objeto en el bucket, derivado de la URL pública
func (e *Evaluation) StoredFileName() string {
	if e.StoredFileURL == "" {
		return ""
	}
	parts := strings.Split(e.StoredFileURL, "/")
	return parts[len(parts)-1]
}

// Row serializa la evaluación como mapa columna -> valor para insertar en la tabla.
// No incluye id ni created_at: los asigna el backend.
func (e *Evaluation) Row() map[string]any {
	row := map[string]any{
		"organization_name":  e.OrganizationName,
		"reporting_period":   e.ReportingPeriod,
		"documentation_link": e.DocumentationLink,
		"total_score":        e.TotalScore,
		"stored_file_url":    e.StoredFileURL,
	}
	for _, name := range Indicators {
		row[ColumnName(name)] = e.ScoreFor(name)
	}
	return row
}
