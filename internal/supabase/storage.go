package supabase

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/EmilioGomex/oac-cix-project/internal/metrics"
)

// StoreFile sube los bytes al bucket bajo name y devuelve la URL pública
// determinista del objeto. Si el nombre ya existe se sobrescribe en silencio
// (gana la última escritura).
func (c *Client) StoreFile(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "true").
		SetBody(data).
		Post("/storage/v1/object/" + c.bucket + "/" + url.PathEscape(name))
	metrics.ObserveBackend("storage_upload", statusOf(resp, err), time.Since(start))
	if err != nil {
		return "", &StorageError{Op: "upload", File: name, Err: err}
	}
	if resp.IsError() {
		return "", &StorageError{Op: "upload", File: name, Status: resp.StatusCode(), Body: snippet(resp.String())}
	}
	c.log.Info("archivo subido al almacenamiento",
		zap.String("file", name), zap.Int("bytes", len(data)))
	return c.PublicURL(name), nil
}

// PublicURL disposición fija de las URL públicas del bucket
func (c *Client) PublicURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.base, c.bucket, name)
}

// deleteObject borra un objeto del bucket por nombre
func (c *Client) deleteObject(ctx context.Context, name string) error {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/storage/v1/object/" + c.bucket + "/" + url.PathEscape(name))
	metrics.ObserveBackend("storage_delete", statusOf(resp, err), time.Since(start))
	if err != nil {
		return &StorageError{Op: "delete", File: name, Err: err}
	}
	if resp.IsError() {
		return &StorageError{Op: "delete", File: name, Status: resp.StatusCode(), Body: snippet(resp.String())}
	}
	return nil
}
