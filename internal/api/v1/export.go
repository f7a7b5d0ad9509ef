package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/EmilioGomex/oac-cix-project/internal/export"
)

// ExportEvaluations descarga el consolidado de todas las evaluaciones
// GET /api/v1/evaluations/export?format=csv|xlsx
func (h *Handler) ExportEvaluations(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context(), false)
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		data, err := export.ConsolidatedCSV(records)
		if err != nil {
			h.log.Error("falló la exportación CSV", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo generar el consolidado CSV"})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.CSVFileName))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)

	case "xlsx":
		data, err := export.ConsolidatedXLSX(records)
		if err != nil {
			h.log.Error("falló la exportación XLSX", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo generar el consolidado XLSX"})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.XLSXFileName))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("formato de exportación no soportado: %q", format)})
	}
}
