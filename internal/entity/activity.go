package entity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RecordType é o discriminador da coleção de atividades + tarefas.
type RecordType string

const (
	TypeCall    RecordType = "call"
	TypeEmail   RecordType = "email"
	TypeMeeting RecordType = "meeting"
	TypeNote    RecordType = "note"
	TypeTask    RecordType = "task"
)

// IsActivity indica os tipos que são interação registrada (não tarefa).
func (t RecordType) IsActivity() bool {
	switch t {
	case TypeCall, TypeEmail, TypeMeeting, TypeNote:
		return true
	default:
		return false
	}
}

type TaskType string

const (
	TaskFollowUp      TaskType = "follow-up"
	TaskMeeting       TaskType = "meeting"
	TaskEmail         TaskType = "email"
	TaskProposal      TaskType = "proposal"
	TaskDemo          TaskType = "demo"
	TaskDocumentation TaskType = "documentation"
	TaskLegalReview   TaskType = "legal-review"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskFollowUp, TaskMeeting, TaskEmail, TaskProposal, TaskDemo, TaskDocumentation, TaskLegalReview:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Record é a união fechada {Activity, Task}. Só os tipos deste pacote a implementam,
// então um type switch sobre Activity e Task é exaustivo.
type Record interface {
	RecordID() int
	LeadRef() int
	RecordType() RecordType
	isRecord()
}

// Activity é uma interação registrada (call, email, meeting, note).
type Activity struct {
	ID          int        `json:"Id"`
	LeadID      int        `json:"leadId"`
	Type        RecordType `json:"type"`
	Date        time.Time  `json:"date"`
	Description string     `json:"description"`
	Duration    int        `json:"duration"`
}

func (a Activity) RecordID() int          { return a.ID }
func (a Activity) LeadRef() int           { return a.LeadID }
func (a Activity) RecordType() RecordType { return a.Type }
func (Activity) isRecord()                {}

func (a *Activity) Validate() error {
	var errs ValidationErrors
	if a.LeadID <= 0 {
		errs = append(errs, ValidationError{"leadId", "is required"})
	}
	if a.Type == "" {
		errs = append(errs, ValidationError{"type", "is required"})
	} else if !a.Type.IsActivity() {
		errs = append(errs, ValidationError{"type", "must be call, email, meeting or note"})
	}
	if !isRequired(a.Description) {
		errs = append(errs, ValidationError{"description", "is required"})
	}
	if a.Date.IsZero() {
		errs = append(errs, ValidationError{"date", "must be a valid date"})
	}
	if a.Duration < 0 {
		errs = append(errs, ValidationError{"duration", "must not be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Task é uma ação de follow-up agendada; completed só vai de false para true.
type Task struct {
	ID          int       `json:"Id"`
	LeadID      int       `json:"leadId"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Completed   bool      `json:"completed"`
	TaskType    TaskType  `json:"taskType"`
	Priority    Priority  `json:"priority"`
}

func (t Task) RecordID() int        { return t.ID }
func (t Task) LeadRef() int         { return t.LeadID }
func (Task) RecordType() RecordType { return TypeTask }
func (Task) isRecord()              {}

// ApplyDefaults preenche taskType e priority quando vierem vazios.
func (t *Task) ApplyDefaults() {
	if t.TaskType == "" {
		t.TaskType = TaskFollowUp
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
}

func (t *Task) Validate() error {
	var errs ValidationErrors
	if t.LeadID <= 0 {
		errs = append(errs, ValidationError{"leadId", "is required"})
	}
	if !isRequired(t.Description) {
		errs = append(errs, ValidationError{"description", "is required"})
	}
	if t.DueDate.IsZero() {
		errs = append(errs, ValidationError{"dueDate", "must be a valid date"})
	}
	if !t.TaskType.IsValid() {
		errs = append(errs, ValidationError{"taskType", "is not a known task type"})
	}
	if !t.Priority.IsValid() {
		errs = append(errs, ValidationError{"priority", "must be low, medium or high"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IsOverdue: pendente e com vencimento antes de now.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDate.Before(now)
}

func (t Task) MarshalJSON() ([]byte, error) {
	type alias Task
	return json.Marshal(struct {
		alias
		Type RecordType `json:"type"`
	}{alias(t), TypeTask})
}

// DecodeRecord lê o discriminador "type" e decodifica no variante certo.
func DecodeRecord(data []byte) (Record, error) {
	var head struct {
		Type RecordType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	switch {
	case head.Type == TypeTask:
		var t Task
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		return t, nil
	case head.Type.IsActivity():
		var a Activity
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown record type %q", head.Type)
	}
}

// Records é a coleção mista como aparece no fixture activities.json.
type Records []Record

func (r *Records) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Records, 0, len(raw))
	for i, item := range raw {
		rec, err := DecodeRecord(item)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, rec)
	}
	*r = out
	return nil
}

// RecordPatch lista os campos atualizáveis de Activity e de Task.
// completed não é atualizável por aqui: use CompleteTask.
type RecordPatch struct {
	LeadID      *int        `json:"leadId,omitempty"`
	Type        *RecordType `json:"type,omitempty"`
	Description *string     `json:"description,omitempty"`

	Date     *time.Time `json:"date,omitempty"`
	Duration *int       `json:"duration,omitempty"`

	DueDate  *time.Time `json:"dueDate,omitempty"`
	TaskType *TaskType  `json:"taskType,omitempty"`
	Priority *Priority  `json:"priority,omitempty"`
}

// ApplyActivity mescla o patch numa Activity, recusando campos de tarefa.
func (p RecordPatch) ApplyActivity(a *Activity) error {
	var errs ValidationErrors
	if p.DueDate != nil {
		errs = append(errs, ValidationError{"dueDate", "is not an activity field"})
	}
	if p.TaskType != nil {
		errs = append(errs, ValidationError{"taskType", "is not an activity field"})
	}
	if p.Priority != nil {
		errs = append(errs, ValidationError{"priority", "is not an activity field"})
	}
	if p.Type != nil && !p.Type.IsActivity() {
		errs = append(errs, ValidationError{"type", "cannot turn an activity into " + string(*p.Type)})
	}
	if len(errs) > 0 {
		return errs
	}

	if p.LeadID != nil {
		a.LeadID = *p.LeadID
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Duration != nil {
		a.Duration = *p.Duration
	}
	return nil
}

// ApplyTask mescla o patch numa Task, recusando campos de atividade.
func (p RecordPatch) ApplyTask(t *Task) error {
	var errs ValidationErrors
	if p.Date != nil {
		errs = append(errs, ValidationError{"date", "is not a task field"})
	}
	if p.Duration != nil {
		errs = append(errs, ValidationError{"duration", "is not a task field"})
	}
	if p.Type != nil && *p.Type != TypeTask {
		errs = append(errs, ValidationError{"type", "cannot turn a task into " + string(*p.Type)})
	}
	if len(errs) > 0 {
		return errs
	}

	if p.LeadID != nil {
		t.LeadID = *p.LeadID
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.TaskType != nil {
		t.TaskType = *p.TaskType
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	return nil
}

type ActivityRepositoryInterface interface {
	GetAll(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, id int) (Record, error)
	GetByLeadID(ctx context.Context, leadID int) ([]Record, error)
	Create(ctx context.Context, activity Activity) (Activity, error)
	CreateTask(ctx context.Context, task Task) (Task, error)
	Update(ctx context.Context, id int, patch RecordPatch) (Record, error)
	Delete(ctx context.Context, id int) error
	CompleteTask(ctx context.Context, id int) (Task, error)
	GetAllTasks(ctx context.Context) ([]Task, error)
	DeleteByLeadID(ctx context.Context, leadID int) ([]Record, error)
	Restore(ctx context.Context, records ...Record) error
}
