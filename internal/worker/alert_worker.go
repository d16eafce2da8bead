package worker

// alert_worker.go
// Processes alert jobs from QueueAlertas: persists back-office notifications
// for the admin dashboard feed. Alerts are a projection — losing one never
// affects the sale or payment it references.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"workspacebcn/internal/model"
	"workspacebcn/internal/repository"
)

// AlertJobPayload is the job envelope sent to QueueAlertas.
type AlertJobPayload struct {
	Tipo           string `json:"tipo"` // venta | pago
	ReferenceID    string `json:"reference_id"`
	ReferenceModel string `json:"reference_model"` // Sale | Payment
	Titulo         string `json:"titulo"`
	Mensaje        string `json:"mensaje"`
	Link           string `json:"link"`
	Priority       string `json:"priority"`
}

// AlertWorker persists alert rows from queued jobs.
type AlertWorker struct {
	alertRepo repository.AlertRepository
}

func NewAlertWorker(alertRepo repository.AlertRepository) *AlertWorker {
	return &AlertWorker{alertRepo: alertRepo}
}

// Process creates one Alert row per job.
func (w *AlertWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload AlertJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}

	refID, err := uuid.Parse(payload.ReferenceID)
	if err != nil {
		log.Error().Str("reference_id", payload.ReferenceID).Msg("alert_worker: invalid reference id")
		return nil
	}

	priority := payload.Priority
	if priority == "" {
		priority = "media"
	}

	alert := &model.Alert{
		Type:           payload.Tipo,
		ReferenceID:    refID,
		ReferenceModel: payload.ReferenceModel,
		Title:          payload.Titulo,
		Message:        payload.Mensaje,
		Link:           payload.Link,
		Priority:       priority,
	}
	if err := w.alertRepo.Create(ctx, alert); err != nil {
		return fmt.Errorf("alert_worker: persist alert: %w", err)
	}

	log.Info().
		Str("tipo", payload.Tipo).
		Str("reference_id", payload.ReferenceID).
		Msg("alert_worker: alert created")
	return nil
}
