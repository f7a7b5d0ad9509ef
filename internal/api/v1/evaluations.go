package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/EmilioGomex/oac-cix-project/internal/model"
	"github.com/EmilioGomex/oac-cix-project/internal/scoring"
	"github.com/EmilioGomex/oac-cix-project/internal/supabase"
)

// Tamaño máximo aceptado para un informe subido
const maxUploadBytes = 20 << 20 // 20 MB

// UploadResponse respuesta de una subida procesada
type UploadResponse struct {
	Evaluation *model.Evaluation `json:"evaluation"`
	Message    string            `json:"message"`
}

// ListResponse listado de evaluaciones
type ListResponse struct {
	Evaluations []model.Evaluation `json:"evaluations"`
	Total       int                `json:"total"`
}

// DeleteResponse resultado del borrado
type DeleteResponse struct {
	ID      int64  `json:"id"`
	Warning string `json:"warning,omitempty"`
	Message string `json:"message"`
}

// UploadEvaluation procesa un informe subido y lo guarda en el backend
// POST /api/v1/evaluations  (multipart, campo "file")
func (h *Handler) UploadEvaluation(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no se encontró el archivo en el formulario (campo \"file\")"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "el archivo supera el tamaño máximo permitido (20 MB)"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no se pudo leer el archivo subido"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no se pudo leer el archivo subido"})
		return
	}

	saved, err := h.svc.Process(c.Request.Context(), fileHeader.Filename, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.log.Warn("falló el procesamiento de una subida",
			zap.String("archivo", fileHeader.Filename),
			zap.Error(err))
		status, msg := statusForError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Evaluation: saved,
		Message:    fmt.Sprintf("Evaluación de %q guardada (CIX %.2f)", saved.OrganizationName, saved.TotalScore),
	})
}

// ListEvaluations listado completo, más recientes primero
// GET /api/v1/evaluations?refresh=1
func (h *Handler) ListEvaluations(c *gin.Context) {
	refresh := c.Query("refresh")
	force := refresh == "1" || refresh == "true"

	records, err := h.svc.List(c.Request.Context(), force)
	if err != nil {
		status, msg := statusForError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, ListResponse{Evaluations: records, Total: len(records)})
}

// DeleteEvaluation elimina el archivo del bucket y luego la fila de la tabla
// DELETE /api/v1/evaluations/:id?file=<nombre almacenado>
func (h *Handler) DeleteEvaluation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identificador de evaluación no válido"})
		return
	}

	warning, err := h.svc.Delete(c.Request.Context(), id, c.Query("file"))
	if err != nil {
		status, msg := statusForError(err)
		body := gin.H{"error": msg}
		if warning != "" {
			body["warning"] = warning
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{
		ID:      id,
		Warning: warning,
		Message: "Evaluación eliminada.",
	})
}

// statusForError traduce la taxonomía de errores a códigos HTTP y mensajes
// para el usuario. Los detalles técnicos quedan en el log, no en la respuesta.
func statusForError(err error) (int, string) {
	var unsupported *scoring.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		return http.StatusBadRequest, fmt.Sprintf("Formato no soportado para %q. Sube archivos .csv o .xlsx.", unsupported.File)
	}
	var malformed *scoring.MalformedInputError
	if errors.As(err, &malformed) {
		return http.StatusBadRequest, fmt.Sprintf("No se pudo interpretar el archivo %q. Verifica que siga la plantilla de evaluación.", malformed.File)
	}
	var storageErr *supabase.StorageError
	if errors.As(err, &storageErr) {
		return http.StatusBadGateway, "Error al subir el archivo al almacenamiento."
	}
	var deleteErr *supabase.DeleteError
	if errors.As(err, &deleteErr) {
		return http.StatusBadGateway, "Error al eliminar la evaluación de la base de datos."
	}
	var dbErr *supabase.DbError
	if errors.As(err, &dbErr) {
		return http.StatusBadGateway, "Error al consultar la base de datos de evaluaciones."
	}
	return http.StatusInternalServerError, "Error interno al procesar la solicitud."
}
