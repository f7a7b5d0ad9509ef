package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EmilioGomex/oac-cix-project/internal/model"
	"github.com/EmilioGomex/oac-cix-project/internal/store"
)

// StatusResponse estado del sistema y actividad reciente
type StatusResponse struct {
	Version      string        `json:"version"`
	Evaluations  int           `json:"evaluations"`  // filas en el backend
	AverageScore float64       `json:"averageScore"` // CIX promedio del listado
	Processed    int           `json:"processed"`    // subidas completadas (log local)
	Failed       int           `json:"failed"`       // subidas fallidas (log local)
	Recent       []store.Entry `json:"recent"`
}

// IndicatorsResponse vocabulario de la plantilla de evaluación
type IndicatorsResponse struct {
	Indicators []string            `json:"indicators"`
	Ratings    []model.RatingLevel `json:"ratings"`
}

// GetStatus estado del sistema
// GET /api/v1/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Version: h.version,
		Recent:  []store.Entry{},
	}

	// El estado es informativo: si el backend no responde se devuelven ceros
	if records, err := h.svc.List(c.Request.Context(), false); err == nil {
		resp.Evaluations = len(records)
		var sum float64
		for i := range records {
			sum += records[i].TotalScore
		}
		if len(records) > 0 {
			resp.AverageScore = sum / float64(len(records))
		}
	}

	if h.ingest != nil {
		if completed, failed, err := h.ingest.Counts(); err == nil {
			resp.Processed = completed
			resp.Failed = failed
		}
		if entries, err := h.ingest.RecentEntries(10); err == nil && entries != nil {
			resp.Recent = entries
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GetIndicators nombres de indicadores y niveles de calificación
// GET /api/v1/indicators
func (h *Handler) GetIndicators(c *gin.Context) {
	c.JSON(http.StatusOK, IndicatorsResponse{
		Indicators: model.Indicators,
		Ratings:    model.RatingLevels,
	})
}
