package scoring

import "fmt"

// UnsupportedFormatError sufijo de archivo no reconocido (solo .csv y .xlsx)
type UnsupportedFormatError struct {
	File string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.File)
}

// MalformedInputError el archivo no se pudo leer o no sigue la estructura esperada.
// Envuelve la causa original; la extracción es todo-o-nada por archivo.
type MalformedInputError struct {
	File string
	Err  error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %s: %v", e.File, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
