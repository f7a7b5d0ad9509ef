package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Entry una fila del log de ingesta
type Entry struct {
	ID           int64      `json:"id"`
	FileName     string     `json:"fileName"`
	FileSize     int64      `json:"fileSize"`
	FileHash     string     `json:"fileHash"`
	Organization string     `json:"organization"`
	TotalScore   float64    `json:"totalScore"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"errorMessage"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt"`
}

// StartEntry registra el inicio de un procesamiento y devuelve su id
func (s *Store) StartEntry(fileName string, fileSize int64, fileHash string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO ingest_log (file_name, file_size, file_hash, status)
		VALUES (?, ?, ?, 'processing')
	`, fileName, fileSize, fileHash)
	if err != nil {
		return 0, fmt.Errorf("failed to create ingest log entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get ingest log id: %w", err)
	}
	return id, nil
}

// CompleteEntry marca la entrada como completada con el resultado
func (s *Store) CompleteEntry(id int64, organization string, totalScore float64) error {
	_, err := s.db.Exec(`
		UPDATE ingest_log SET
			organization = ?,
			total_score = ?,
			status = 'completed',
			error_message = '',
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, organization, totalScore, id)
	if err != nil {
		return fmt.Errorf("failed to update ingest log: %w", err)
	}
	return nil
}

// FailEntry marca la entrada como fallida con el mensaje de error
func (s *Store) FailEntry(id int64, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE ingest_log SET
			status = 'failed',
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update ingest log: %w", err)
	}
	return nil
}

// RecentEntries últimas entradas del log, más recientes primero
func (s *Store) RecentEntries(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, file_name, file_size, file_hash, organization, total_score,
		       status, error_message, started_at, completed_at
		FROM ingest_log
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingest log: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var completed sql.NullTime
		if err := rows.Scan(&e.ID, &e.FileName, &e.FileSize, &e.FileHash,
			&e.Organization, &e.TotalScore, &e.Status, &e.ErrorMessage,
			&e.StartedAt, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan ingest log row: %w", err)
		}
		if completed.Valid {
			t := completed.Time
			e.CompletedAt = &t
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ingest log: %w", err)
	}
	return out, nil
}

// Counts totales de procesados con éxito y fallidos
func (s *Store) Counts() (completed int, failed int, err error) {
	row := s.db.QueryRow(`
		SELECT
			COUNT(CASE WHEN status = 'completed' THEN 1 END),
			COUNT(CASE WHEN status = 'failed' THEN 1 END)
		FROM ingest_log
	`)
	if err := row.Scan(&completed, &failed); err != nil {
		return 0, 0, fmt.Errorf("failed to count ingest log: %w", err)
	}
	return completed, failed, nil
}
