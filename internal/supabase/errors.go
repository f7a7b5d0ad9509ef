package supabase

import "fmt"

// StorageError fallo de una llamada a la API de almacenamiento del backend
type StorageError struct {
	Op     string
	File   string
	Status int
	Body   string
	Err    error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.File, e.Err)
	}
	return fmt.Sprintf("storage %s %s: status %d: %s", e.Op, e.File, e.Status, e.Body)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// DbError fallo de una llamada a la API de tabla del backend
type DbError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *DbError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("db %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("db %s: status %d: %s", e.Op, e.Status, e.Body)
}

func (e *DbError) Unwrap() error {
	return e.Err
}

// DeleteError fallo al eliminar la fila de una evaluación
type DeleteError struct {
	ID     int64
	Status int
	Body   string
	Err    error
}

func (e *DeleteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("delete evaluation %d: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("delete evaluation %d: status %d: %s", e.ID, e.Status, e.Body)
}

func (e *DeleteError) Unwrap() error {
	return e.Err
}

// snippet recorta cuerpos de respuesta largos para los mensajes de error
func snippet(body string) string {
	const max = 300
	if len(body) > max {
		return body[:max] + "..."
	}
	return body
}
