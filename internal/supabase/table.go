package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/EmilioGomex/oac-cix-project/internal/metrics"
	"github.com/EmilioGomex/oac-cix-project/internal/model"
)

// SaveRecord inserta una fila en la tabla de evaluaciones. El backend asigna
// id y created_at; se devuelve la representación guardada. El insert es
// atómico a nivel de fila: un fallo no deja fila parcial.
func (c *Client) SaveRecord(ctx context.Context, eval *model.Evaluation) (*model.Evaluation, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=representation").
		SetBody(eval.Row()).
		Post("/rest/v1/" + c.table)
	metrics.ObserveBackend("table_insert", statusOf(resp, err), time.Since(start))
	if err != nil {
		return nil, &DbError{Op: "insert", Err: err}
	}
	if resp.IsError() {
		return nil, &DbError{Op: "insert", Status: resp.StatusCode(), Body: snippet(resp.String())}
	}

	rows := gjson.Parse(resp.String()).Array()
	if len(rows) == 0 {
		return nil, &DbError{Op: "insert", Status: resp.StatusCode(), Body: "respuesta sin representación de la fila insertada"}
	}
	saved := evaluationFromRow(rows[0])
	c.log.Info("evaluación guardada",
		zap.Int64("id", saved.ID), zap.String("organization", saved.OrganizationName))
	return saved, nil
}

// ListRecords lee la tabla completa ordenada por created_at descendente.
// Tabla vacía devuelve una lista vacía, no un error.
func (c *Client) ListRecords(ctx context.Context) ([]model.Evaluation, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("order", "created_at.desc").
		Get("/rest/v1/" + c.table)
	metrics.ObserveBackend("table_list", statusOf(resp, err), time.Since(start))
	if err != nil {
		return nil, &DbError{Op: "list", Err: err}
	}
	if resp.IsError() {
		return nil, &DbError{Op: "list", Status: resp.StatusCode(), Body: snippet(resp.String())}
	}

	out := make([]model.Evaluation, 0)
	gjson.Parse(resp.String()).ForEach(func(_, row gjson.Result) bool {
		out = append(out, *evaluationFromRow(row))
		return true
	})
	return out, nil
}

// deleteRow borra la fila por id. El backend confirma devolviendo la fila
// eliminada; una respuesta vacía significa que el id no existía.
func (c *Client) deleteRow(ctx context.Context, id int64) error {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", fmt.Sprintf("eq.%d", id)).
		Delete("/rest/v1/" + c.table)
	metrics.ObserveBackend("table_delete", statusOf(resp, err), time.Since(start))
	if err != nil {
		return &DeleteError{ID: id, Err: err}
	}
	if resp.IsError() {
		return &DeleteError{ID: id, Status: resp.StatusCode(), Body: snippet(resp.String())}
	}
	if len(gjson.Parse(resp.String()).Array()) == 0 {
		return &DeleteError{ID: id, Status: resp.StatusCode(), Body: "la fila no existe"}
	}
	return nil
}

// evaluationFromRow reconstruye una evaluación desde una fila JSON del backend
func evaluationFromRow(row gjson.Result) *model.Evaluation {
	scores := make(map[string]float64, len(model.Indicators))
	for _, name := range model.Indicators {
		scores[name] = row.Get(model.ColumnName(name)).Float()
	}
	return &model.Evaluation{
		ID:                row.Get("id").Int(),
		OrganizationName:  row.Get("organization_name").String(),
		ReportingPeriod:   row.Get("reporting_period").String(),
		DocumentationLink: row.Get("documentation_link").String(),
		IndicatorScores:   scores,
		TotalScore:        row.Get("total_score").Float(),
		StoredFileURL:     row.Get("stored_file_url").String(),
		CreatedAt:         row.Get("created_at").String(),
	}
}

// statusOf código HTTP de la respuesta, 0 si la llamada no llegó a completarse
func statusOf(resp *resty.Response, err error) int {
	if err != nil || resp == nil {
		return 0
	}
	return resp.StatusCode()
}
