package config

import (
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig valores por defecto de la instalación
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != 8090 {
		t.Errorf("Port = %d, want 8090", cfg.Server.Port)
	}
	if cfg.Supabase.Bucket != "evaluaciones-cix-files" {
		t.Errorf("Bucket = %q", cfg.Supabase.Bucket)
	}
	if cfg.Supabase.Table != "evaluations" {
		t.Errorf("Table = %q", cfg.Supabase.Table)
	}
	if cfg.Supabase.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", cfg.Supabase.Timeout())
	}
	if cfg.Cache.ListingTTL() != 10*time.Minute {
		t.Errorf("ListingTTL() = %v, want 10m", cfg.Cache.ListingTTL())
	}
	if cfg.Cache.MemoTTL() != time.Hour {
		t.Errorf("MemoTTL() = %v, want 1h", cfg.Cache.MemoTTL())
	}
}

// TestValidate sin URL o clave del backend el arranque debe detenerse
func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate sin URL debería fallar")
	}
	if !strings.Contains(err.Error(), "URL") {
		t.Errorf("el error debe señalar la URL: %v", err)
	}

	cfg.Supabase.URL = "https://proj.supabase.co"
	err = cfg.Validate()
	if err == nil {
		t.Fatal("Validate sin clave debería fallar")
	}
	if !strings.Contains(err.Error(), "clave") {
		t.Errorf("el error debe señalar la clave: %v", err)
	}

	cfg.Supabase.Key = "clave"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

// TestApplyEnvOverrides las variables de entorno mandan sobre el archivo
func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://env.supabase.co")
	t.Setenv("SUPABASE_KEY", "clave-env")
	t.Setenv("SUPABASE_BUCKET", "bucket-env")

	cfg := DefaultConfig()
	cfg.Supabase.URL = "https://archivo.supabase.co"
	applyEnvOverrides(cfg)

	if cfg.Supabase.URL != "https://env.supabase.co" {
		t.Errorf("URL = %q, want la del entorno", cfg.Supabase.URL)
	}
	if cfg.Supabase.Key != "clave-env" {
		t.Errorf("Key = %q", cfg.Supabase.Key)
	}
	if cfg.Supabase.Bucket != "bucket-env" {
		t.Errorf("Bucket = %q", cfg.Supabase.Bucket)
	}
}

// TestIsPortSpecifiedInToml distingue puerto declarado de puerto por defecto
func TestIsPortSpecifiedInToml(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want bool
	}{
		{"puerto declarado", "[server]\nport = 9000\n", true},
		{"sección sin puerto", "[server]\ndev_mode = true\n", false},
		{"sin sección server", "[supabase]\nurl = \"x\"\n", false},
		{"toml inválido", "esto no es toml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPortSpecifiedInToml([]byte(tt.toml)); got != tt.want {
				t.Errorf("isPortSpecifiedInToml = %v, want %v", got, tt.want)
			}
		})
	}
}
