package model

// Indicators los diez indicadores de la plantilla CIX (orden de presentación).
// Las puntuaciones siempre se promedian sobre los diez, se encuentren o no.
var Indicators = []string{
	"Datos de actividad",
	"Factores de emisión",
	"Alcance 1",
	"Alcance 2",
	"Alcance 3",
	"Categorías excluidas",
	"Consolidación",
	"Auditoría",
	"Compromisos de reducción",
	"Evaluación de incertidumbre",
}

// RatingLevel un nivel de calificación de la plantilla
type RatingLevel struct {
	Code   string  `json:"code"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// RatingLevels niveles en el orden de las columnas de calificación de la plantilla
var RatingLevels = []RatingLevel{
	{Code: "N", Label: "No cumple", Weight: 0},
	{Code: "P", Label: "Cumple parcialmente", Weight: 0.4},
	{Code: "T", Label: "Cumple satisfactoriamente", Weight: 0.8},
	{Code: "E", Label: "Cumple totalmente", Weight: 1},
}
