package model

import "strings"

// ColumnName nombre de columna en la tabla evaluations para un indicador:
// minúsculas, espacios y guiones reemplazados por guión bajo (acentos intactos)
func ColumnName(indicator string) string {
	s := strings.ToLower(indicator)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// TableColumns columnas de la tabla evaluations en orden de exportación
func TableColumns() []string {
	cols := []string{
		"id",
		"organization_name",
		"reporting_period",
		"documentation_link",
		"total_score",
	}
	for _, name := range Indicators {
		cols = append(cols, ColumnName(name))
	}
	return append(cols, "stored_file_url", "created_at")
}
