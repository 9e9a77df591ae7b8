package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventStageChanged  EventType = "lead.stage_changed"
	EventTaskCompleted EventType = "task.completed"
)

// PipelineEvent é o que vai para a fila depois de uma escrita bem sucedida.
type PipelineEvent struct {
	EventID    string    `json:"event_id"`
	Type       EventType `json:"type"`
	LeadID     int       `json:"lead_id"`
	RecordID   int       `json:"record_id,omitempty"`
	FromStage  Stage     `json:"from_stage,omitempty"`
	ToStage    Stage     `json:"to_stage,omitempty"`
	LeadName   string    `json:"lead_name,omitempty"`
	Company    string    `json:"company,omitempty"`
	DealValue  float64   `json:"deal_value,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewStageChangedEvent(lead Lead, from Stage, at time.Time) PipelineEvent {
	return PipelineEvent{
		EventID:    uuid.New().String(),
		Type:       EventStageChanged,
		LeadID:     lead.ID,
		FromStage:  from,
		ToStage:    lead.Stage,
		LeadName:   lead.Name,
		Company:    lead.Company,
		DealValue:  lead.DealValue,
		OccurredAt: at,
	}
}

func NewTaskCompletedEvent(task Task, at time.Time) PipelineEvent {
	return PipelineEvent{
		EventID:    uuid.New().String(),
		Type:       EventTaskCompleted,
		LeadID:     task.LeadID,
		RecordID:   task.ID,
		OccurredAt: at,
	}
}

// IsDealWon: transição para Closed Won vinda de outro estágio.
func (e PipelineEvent) IsDealWon() bool {
	return e.Type == EventStageChanged && e.ToStage == StageClosedWon && e.FromStage != StageClosedWon
}
