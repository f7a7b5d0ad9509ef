package supabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client cliente REST del backend alojado: API de tabla (rest/v1) y API de
// almacenamiento (storage/v1). El backend es opaco; solo se habla HTTP con él.
type Client struct {
	http   *resty.Client
	base   string
	bucket string
	table  string
	log    *zap.Logger
}

// Options parámetros de conexión del backend
type Options struct {
	BaseURL string
	Key     string
	Bucket  string
	Table   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// New crea el cliente. BaseURL y Key son obligatorios; el resto tiene defaults
// razonables para la instancia del OAC.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" || opts.Key == "" {
		return nil, fmt.Errorf("supabase: base URL and key are required")
	}
	if opts.Bucket == "" {
		opts.Bucket = "evaluaciones-cix-files"
	}
	if opts.Table == "" {
		opts.Table = "evaluations"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	base := strings.TrimRight(opts.BaseURL, "/")
	httpClient := resty.New().
		SetBaseURL(base).
		SetTimeout(opts.Timeout).
		SetHeader("apikey", opts.Key).
		SetAuthToken(opts.Key)

	return &Client{
		http:   httpClient,
		base:   base,
		bucket: opts.Bucket,
		table:  opts.Table,
		log:    opts.Logger,
	}, nil
}

// DeleteRecord elimina primero el objeto del bucket y después la fila.
// Ambas eliminaciones son independientes: un fallo al borrar el archivo
// (incluido "ya no existe") se devuelve como aviso no fatal y no impide el
// borrado de la fila; nada se revierte.
func (c *Client) DeleteRecord(ctx context.Context, id int64, storedFileName string) (string, error) {
	var warning string
	if storedFileName == "" {
		warning = "el registro no tiene archivo asociado en el almacenamiento"
	} else if err := c.deleteObject(ctx, storedFileName); err != nil {
		warning = fmt.Sprintf("no se pudo eliminar el archivo %q del almacenamiento (puede que ya no exista)", storedFileName)
		c.log.Warn("fallo al eliminar objeto del almacenamiento",
			zap.String("file", storedFileName), zap.Error(err))
	}

	if err := c.deleteRow(ctx, id); err != nil {
		return warning, err
	}
	return warning, nil
}
