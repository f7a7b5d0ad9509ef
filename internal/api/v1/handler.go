package v1

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/EmilioGomex/oac-cix-project/internal/model"
	"github.com/EmilioGomex/oac-cix-project/internal/store"
)

// Service operaciones del catálogo que consume la API
type Service interface {
	Process(ctx context.Context, fileName string, data []byte, contentType string) (*model.Evaluation, error)
	List(ctx context.Context, force bool) ([]model.Evaluation, error)
	Delete(ctx context.Context, id int64, storedFileName string) (string, error)
}

// Handler procesador de la API v1
type Handler struct {
	svc     Service
	ingest  *store.Store // nil si el log local está desactivado
	version string
	log     *zap.Logger
}

// NewHandler crea el handler de la API
func NewHandler(svc Service, ingest *store.Store, version string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		svc:     svc,
		ingest:  ingest,
		version: version,
		log:     log,
	}
}

// RegisterRoutes registra las rutas bajo el grupo /api/v1
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// Estado del sistema
	router.GET("/status", h.GetStatus)

	// Evaluaciones
	router.POST("/evaluations", h.UploadEvaluation)
	router.GET("/evaluations", h.ListEvaluations)
	router.DELETE("/evaluations/:id", h.DeleteEvaluation)

	// Exportación consolidada
	router.GET("/evaluations/export", h.ExportEvaluations)

	// Vocabulario de la plantilla (para la interfaz)
	router.GET("/indicators", h.GetIndicators)
}
