package catalog

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/EmilioGomex/oac-cix-project/internal/metrics"
	"github.com/EmilioGomex/oac-cix-project/internal/model"
	"github.com/EmilioGomex/oac-cix-project/internal/scoring"
	"github.com/EmilioGomex/oac-cix-project/internal/store"
)

// Gateway operaciones del backend alojado que necesita el catálogo
type Gateway interface {
	StoreFile(ctx context.Context, name string, data []byte, contentType string) (string, error)
	SaveRecord(ctx context.Context, eval *model.Evaluation) (*model.Evaluation, error)
	ListRecords(ctx context.Context) ([]model.Evaluation, error)
	DeleteRecord(ctx context.Context, id int64, storedFileName string) (string, error)
}

// Catalog orquesta el flujo extraer -> subir -> guardar y las lecturas del
// listado. Es el único dueño de las cachés y de su invalidación.
type Catalog struct {
	gw      Gateway
	ingest  *store.Store // log local de procesados; nil lo desactiva
	listing *listingCache
	memo    *extractionMemo
	log     *zap.Logger
}

// Options dependencias y parámetros del catálogo
type Options struct {
	Gateway    Gateway
	IngestLog  *store.Store
	ListingTTL time.Duration
	MemoTTL    time.Duration
	Logger     *zap.Logger
}

func New(opts Options) *Catalog {
	if opts.ListingTTL <= 0 {
		opts.ListingTTL = 10 * time.Minute
	}
	if opts.MemoTTL <= 0 {
		opts.MemoTTL = time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Catalog{
		gw:      opts.Gateway,
		ingest:  opts.IngestLog,
		listing: newListingCache(opts.ListingTTL),
		memo:    newExtractionMemo(opts.MemoTTL),
		log:     opts.Logger,
	}
}

// Process extrae la evaluación del archivo, sube el original al bucket, guarda
// la fila e invalida el listado. Sin reintentos: un fallo en cualquier paso
// detiene la operación y no hay recuperación parcial (una subida con guardado
// fallido deja el registro sin guardar; se repite la operación completa).
func (c *Catalog) Process(ctx context.Context, fileName string, data []byte, contentType string) (*model.Evaluation, error) {
	logID := c.logStart(fileName, data)

	eval, err := c.extract(fileName, data)
	if err != nil {
		metrics.ExtractionFailures.WithLabelValues(failureReason(err)).Inc()
		c.logFailure(logID, err)
		return nil, err
	}

	url, err := c.gw.StoreFile(ctx, fileName, data, contentType)
	if err != nil {
		c.logFailure(logID, err)
		return nil, err
	}
	eval.StoredFileURL = url

	saved, err := c.gw.SaveRecord(ctx, eval)
	if err != nil {
		c.logFailure(logID, err)
		return nil, err
	}

	c.listing.invalidate()
	metrics.EvaluationsProcessed.Inc()
	c.logSuccess(logID, saved)
	c.log.Info("evaluación procesada",
		zap.String("file", fileName),
		zap.Int64("id", saved.ID),
		zap.Float64("totalScore", saved.TotalScore))
	return saved, nil
}

// extract extracción con memoización por hash de contenido
func (c *Catalog) extract(fileName string, data []byte) (*model.Evaluation, error) {
	key := memoKey(fileName, data)
	if eval, ok := c.memo.get(key); ok {
		metrics.CacheHits.WithLabelValues("extraction").Inc()
		return eval, nil
	}
	metrics.CacheMisses.WithLabelValues("extraction").Inc()

	eval, err := scoring.ExtractAndScore(data, fileName)
	if err != nil {
		return nil, err
	}
	c.memo.put(key, eval)
	return eval, nil
}

// List listado de evaluaciones con caché de lectura; force la salta y la
// rellena con la respuesta fresca
func (c *Catalog) List(ctx context.Context, force bool) ([]model.Evaluation, error) {
	if !force {
		if records, ok := c.listing.get(); ok {
			metrics.CacheHits.WithLabelValues("listing").Inc()
			return records, nil
		}
		metrics.CacheMisses.WithLabelValues("listing").Inc()
	}

	records, err := c.gw.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	c.listing.put(records)
	return records, nil
}

// Delete elimina archivo y fila e invalida el listado. Si no se conoce el
// nombre del archivo almacenado, se deriva de la URL del registro listado.
// El aviso no fatal del gateway (archivo ya ausente) se propaga al llamador.
func (c *Catalog) Delete(ctx context.Context, id int64, storedFileName string) (string, error) {
	if storedFileName == "" {
		storedFileName = c.lookupStoredFileName(ctx, id)
	}

	warning, err := c.gw.DeleteRecord(ctx, id, storedFileName)
	if err != nil {
		return warning, err
	}

	c.listing.invalidate()
	c.log.Info("evaluación eliminada",
		zap.Int64("id", id), zap.String("file", storedFileName))
	return warning, nil
}

func (c *Catalog) lookupStoredFileName(ctx context.Context, id int64) string {
	records, err := c.List(ctx, false)
	if err != nil {
		return ""
	}
	for i := range records {
		if records[i].ID == id {
			return records[i].StoredFileName()
		}
	}
	return ""
}

// failureReason etiqueta de métrica para un fallo de extracción
func failureReason(err error) string {
	var unsupported *scoring.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		return "unsupported_format"
	}
	var malformed *scoring.MalformedInputError
	if errors.As(err, &malformed) {
		return "malformed_input"
	}
	return "other"
}

// El log de ingesta es diagnóstico: sus fallos se registran y se descartan,
// nunca interrumpen el procesamiento.

func (c *Catalog) logStart(fileName string, data []byte) int64 {
	if c.ingest == nil {
		return 0
	}
	id, err := c.ingest.StartEntry(fileName, int64(len(data)), contentHash(data))
	if err != nil {
		c.log.Warn("no se pudo registrar el inicio en el log de ingesta", zap.Error(err))
		return 0
	}
	return id
}

func (c *Catalog) logFailure(id int64, cause error) {
	if c.ingest == nil || id == 0 {
		return
	}
	if err := c.ingest.FailEntry(id, cause.Error()); err != nil {
		c.log.Warn("no se pudo actualizar el log de ingesta", zap.Error(err))
	}
}

func (c *Catalog) logSuccess(id int64, eval *model.Evaluation) {
	if c.ingest == nil || id == 0 {
		return
	}
	if err := c.ingest.CompleteEntry(id, eval.OrganizationName, eval.TotalScore); err != nil {
		c.log.Warn("no se pudo actualizar el log de ingesta", zap.Error(err))
	}
}
