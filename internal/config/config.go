package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig configuración de la aplicación
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Supabase SupabaseConfig `toml:"supabase"`
	Cache    CacheConfig    `toml:"cache"`
	Data     DataConfig     `toml:"data"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig configuración del servidor HTTP
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// SupabaseConfig conexión con el backend alojado
type SupabaseConfig struct {
	URL            string `toml:"url"`
	Key            string `toml:"key"`
	Bucket         string `toml:"bucket"`
	Table          string `toml:"table"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout tiempo máximo por llamada al backend
func (c SupabaseConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheConfig TTL de las cachés del catálogo
type CacheConfig struct {
	ListingTTLSeconds int `toml:"listing_ttl_seconds"`
	MemoTTLSeconds    int `toml:"memo_ttl_seconds"`
}

// ListingTTL vigencia de la caché del listado
func (c CacheConfig) ListingTTL() time.Duration {
	return time.Duration(c.ListingTTLSeconds) * time.Second
}

// MemoTTL vigencia de las entradas del memo de extracción
func (c CacheConfig) MemoTTL() time.Duration {
	return time.Duration(c.MemoTTLSeconds) * time.Second
}

// DataConfig datos locales (log de ingesta)
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// LogConfig nivel de log
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfigInfo metainformación de la carga de configuración
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig configuración por defecto
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    8090,
			DevMode: false,
		},
		Supabase: SupabaseConfig{
			Bucket:         "evaluaciones-cix-files",
			Table:          "evaluations",
			TimeoutSeconds: 30,
		},
		Cache: CacheConfig{
			ListingTTLSeconds: 600,
			MemoTTLSeconds:    3600,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate lo mínimo para arrancar: sin URL y clave del backend no hay nada
// que hacer, y el arranque se detiene
func (c *AppConfig) Validate() error {
	if c.Supabase.URL == "" {
		return errors.New("falta la URL del backend (SUPABASE_URL o [supabase].url en config.toml)")
	}
	if c.Supabase.Key == "" {
		return errors.New("falta la clave del backend (SUPABASE_KEY o [supabase].key en config.toml)")
	}
	return nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir directorio del ejecutable
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo carga config.toml (junto al ejecutable) sobre los
// defaults y aplica las variables de entorno por encima
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	applyEnvOverrides(config)
	return config, info, nil
}

// LoadConfig carga la configuración desde config.toml
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// applyEnvOverrides las variables de entorno mandan sobre el archivo
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		config.Supabase.URL = v
	}
	if v := os.Getenv("SUPABASE_KEY"); v != "" {
		config.Supabase.Key = v
	}
	if v := os.Getenv("SUPABASE_BUCKET"); v != "" {
		config.Supabase.Bucket = v
	}
}

// EnsureDataDir crea el directorio de datos (junto al ejecutable) y devuelve
// su ruta absoluta
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}
