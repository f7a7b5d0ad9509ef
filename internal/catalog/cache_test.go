package catalog

import (
	"testing"
	"time"

	"github.com/EmilioGomex/oac-cix-project/internal/model"
)

// TestListingCacheVigencia la caché responde solo dentro de su TTL
func TestListingCacheVigencia(t *testing.T) {
	fresca := newListingCache(time.Hour)

	if _, ok := fresca.get(); ok {
		t.Fatal("una caché recién creada no debe responder")
	}

	fresca.put([]model.Evaluation{{ID: 1, OrganizationName: "Acme"}})
	records, ok := fresca.get()
	if !ok {
		t.Fatal("la caché dentro del TTL debe responder")
	}
	if len(records) != 1 || records[0].ID != 1 {
		t.Fatalf("records = %+v", records)
	}

	// TTL negativo: todo lo guardado nace caducado
	caducada := newListingCache(-time.Second)
	caducada.put([]model.Evaluation{{ID: 2}})
	if _, ok := caducada.get(); ok {
		t.Fatal("una entrada caducada no debe responder")
	}
}

// TestListingCacheInvalidate la invalidación vacía la caché al instante
func TestListingCacheInvalidate(t *testing.T) {
	c := newListingCache(time.Hour)
	c.put([]model.Evaluation{{ID: 1}})
	c.invalidate()
	if _, ok := c.get(); ok {
		t.Fatal("después de invalidar, la caché no debe responder")
	}
}

// TestListingCacheCopia el llamador recibe una copia, no el respaldo interno
func TestListingCacheCopia(t *testing.T) {
	c := newListingCache(time.Hour)
	c.put([]model.Evaluation{{ID: 1, OrganizationName: "Acme"}})

	records, _ := c.get()
	records[0].OrganizationName = "Mutada"

	otra, _ := c.get()
	if otra[0].OrganizationName != "Acme" {
		t.Fatalf("la mutación del llamador contaminó la caché: %q", otra[0].OrganizationName)
	}
}

// TestExtractionMemo entradas vigentes se reutilizan; las caducadas se purgan
func TestExtractionMemo(t *testing.T) {
	m := newExtractionMemo(time.Hour)

	if _, ok := m.get("k1"); ok {
		t.Fatal("memo vacío no debe responder")
	}

	m.put("k1", &model.Evaluation{OrganizationName: "Acme", IndicatorScores: map[string]float64{"Alcance 1": 0.8}})
	eval, ok := m.get("k1")
	if !ok {
		t.Fatal("entrada recién guardada debe responder")
	}

	// La entrada devuelta es una copia independiente
	eval.IndicatorScores["Alcance 1"] = 0
	otra, _ := m.get("k1")
	if otra.IndicatorScores["Alcance 1"] != 0.8 {
		t.Fatalf("la mutación del llamador contaminó el memo: %v", otra.IndicatorScores["Alcance 1"])
	}

	caducado := newExtractionMemo(-time.Second)
	caducado.put("k1", &model.Evaluation{IndicatorScores: map[string]float64{}})
	if _, ok := caducado.get("k1"); ok {
		t.Fatal("una entrada caducada no debe responder")
	}
}

// TestMemoKey la clave distingue nombre y contenido
func TestMemoKey(t *testing.T) {
	base := memoKey("informe.csv", []byte("abc"))

	if got := memoKey("informe.csv", []byte("abc")); got != base {
		t.Error("la clave debe ser estable para la misma entrada")
	}
	if got := memoKey("otro.csv", []byte("abc")); got == base {
		t.Error("nombres distintos deben producir claves distintas")
	}
	if got := memoKey("informe.csv", []byte("abd")); got == base {
		t.Error("contenidos distintos deben producir claves distintas")
	}
}
