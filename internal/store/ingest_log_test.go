package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := New(filepath.Join(t.TempDir(), "cix.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// TestIngestLogLifecycle inicio, finalización y consulta de entradas
func TestIngestLogLifecycle(t *testing.T) {
	st := newTestStore(t)

	id, err := st.StartEntry("EcoAndina-2024.csv", 1234, "abc123")
	if err != nil {
		t.Fatalf("StartEntry failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("id = %d, want > 0", id)
	}

	entries, err := st.RecentEntries(10)
	if err != nil {
		t.Fatalf("RecentEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Status != "processing" {
		t.Errorf("Status = %q, want processing", e.Status)
	}
	if e.FileName != "EcoAndina-2024.csv" || e.FileSize != 1234 || e.FileHash != "abc123" {
		t.Errorf("entrada = %+v", e)
	}
	if e.CompletedAt != nil {
		t.Error("CompletedAt debe ser nil mientras se procesa")
	}

	if err := st.CompleteEntry(id, "EcoAndina", 0.52); err != nil {
		t.Fatalf("CompleteEntry failed: %v", err)
	}
	entries, err = st.RecentEntries(10)
	if err != nil {
		t.Fatalf("RecentEntries failed: %v", err)
	}
	e = entries[0]
	if e.Status != "completed" {
		t.Errorf("Status = %q, want completed", e.Status)
	}
	if e.Organization != "EcoAndina" || e.TotalScore != 0.52 {
		t.Errorf("entrada completada = %+v", e)
	}
	if e.CompletedAt == nil {
		t.Error("CompletedAt debe fijarse al completar")
	}
}

// TestIngestLogFailure las entradas fallidas conservan el mensaje de error
func TestIngestLogFailure(t *testing.T) {
	st := newTestStore(t)

	id, err := st.StartEntry("datos.txt", 10, "h")
	if err != nil {
		t.Fatalf("StartEntry failed: %v", err)
	}
	if err := st.FailEntry(id, "formato no soportado"); err != nil {
		t.Fatalf("FailEntry failed: %v", err)
	}

	entries, err := st.RecentEntries(10)
	if err != nil {
		t.Fatalf("RecentEntries failed: %v", err)
	}
	if entries[0].Status != "failed" {
		t.Errorf("Status = %q, want failed", entries[0].Status)
	}
	if entries[0].ErrorMessage != "formato no soportado" {
		t.Errorf("ErrorMessage = %q", entries[0].ErrorMessage)
	}
}

// TestIngestLogOrderAndCounts las entradas salen de más reciente a más antigua
func TestIngestLogOrderAndCounts(t *testing.T) {
	st := newTestStore(t)

	primera, err := st.StartEntry("a.csv", 1, "h1")
	if err != nil {
		t.Fatalf("StartEntry failed: %v", err)
	}
	segunda, err := st.StartEntry("b.csv", 2, "h2")
	if err != nil {
		t.Fatalf("StartEntry failed: %v", err)
	}
	tercera, err := st.StartEntry("c.csv", 3, "h3")
	if err != nil {
		t.Fatalf("StartEntry failed: %v", err)
	}

	if err := st.CompleteEntry(primera, "A", 0.1); err != nil {
		t.Fatalf("CompleteEntry failed: %v", err)
	}
	if err := st.CompleteEntry(segunda, "B", 0.2); err != nil {
		t.Fatalf("CompleteEntry failed: %v", err)
	}
	if err := st.FailEntry(tercera, "roto"); err != nil {
		t.Fatalf("FailEntry failed: %v", err)
	}

	entries, err := st.RecentEntries(2)
	if err != nil {
		t.Fatalf("RecentEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2 (limit)", len(entries))
	}
	if entries[0].FileName != "c.csv" || entries[1].FileName != "b.csv" {
		t.Errorf("orden = [%s, %s], want [c.csv, b.csv]", entries[0].FileName, entries[1].FileName)
	}

	completed, failed, err := st.Counts()
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if completed != 2 || failed != 1 {
		t.Errorf("Counts = (%d, %d), want (2, 1)", completed, failed)
	}
}
