package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/EmilioGomex/oac-cix-project/internal/model"
)

// listingCache caché de lectura del listado de evaluaciones con TTL fijo.
// La invalidación es explícita: cada alta o borrado la vacía antes de
// responder, y la siguiente lectura vuelve al backend.
type listingCache struct {
	mu        sync.Mutex
	records   []model.Evaluation
	fetchedAt time.Time
	ttl       time.Duration
}

func newListingCache(ttl time.Duration) *listingCache {
	return &listingCache{ttl: ttl}
}

// get copia del listado cacheado si sigue vigente
func (c *listingCache) get() ([]model.Evaluation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fetchedAt.IsZero() || time.Since(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	out := make([]model.Evaluation, len(c.records))
	copy(out, c.records)
	return out, true
}

func (c *listingCache) put(records []model.Evaluation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = make([]model.Evaluation, len(records))
	copy(c.records, records)
	c.fetchedAt = time.Now()
}

func (c *listingCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = nil
	c.fetchedAt = time.Time{}
}

// extractionMemo memoización de extracciones por hash de nombre y contenido.
// ExtractAndScore es pura, así que una entrada idéntica reutiliza el registro
// ya calculado en lugar de volver a leer la hoja.
type extractionMemo struct {
	mu    sync.Mutex
	items map[string]memoEntry
	ttl   time.Duration
}

type memoEntry struct {
	eval      *model.Evaluation
	expiresAt time.Time
}

func newExtractionMemo(ttl time.Duration) *extractionMemo {
	return &extractionMemo{
		items: make(map[string]memoEntry),
		ttl:   ttl,
	}
}

func (m *extractionMemo) get(key string) (*model.Evaluation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purgeExpiredLocked(time.Now())

	v, ok := m.items[key]
	if !ok {
		return nil, false
	}
	return cloneEvaluation(v.eval), true
}

func (m *extractionMemo) put(key string, eval *model.Evaluation) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purgeExpiredLocked(time.Now())

	m.items[key] = memoEntry{
		eval:      cloneEvaluation(eval),
		expiresAt: time.Now().Add(m.ttl),
	}
}

func (m *extractionMemo) purgeExpiredLocked(now time.Time) {
	for k, v := range m.items {
		if now.After(v.expiresAt) {
			delete(m.items, k)
		}
	}
}

// memoKey clave del memo: SHA-256 sobre el nombre del archivo y sus bytes
func memoKey(fileName string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(fileName))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// contentHash SHA-256 solo del contenido, para el log de ingesta
func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// cloneEvaluation copia independiente; las entradas del memo no comparten el
// mapa de puntuaciones con los llamadores
func cloneEvaluation(e *model.Evaluation) *model.Evaluation {
	out := *e
	out.IndicatorScores = make(map[string]float64, len(e.IndicatorScores))
	for k, v := range e.IndicatorScores {
		out.IndicatorScores[k] = v
	}
	return &out
}
