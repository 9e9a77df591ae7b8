package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecordDispatchesOnType(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"Id":1,"leadId":1,"type":"call","date":"2024-01-15T10:30:00Z","description":"Discovery call","duration":30}`))
	require.NoError(t, err)
	a, ok := rec.(Activity)
	require.True(t, ok)
	assert.Equal(t, TypeCall, a.Type)
	assert.Equal(t, 30, a.Duration)

	rec, err = DecodeRecord([]byte(`{"Id":8,"leadId":1,"type":"task","description":"Send pricing","dueDate":"2024-01-22T14:00:00Z","completed":false,"taskType":"proposal","priority":"high"}`))
	require.NoError(t, err)
	task, ok := rec.(Task)
	require.True(t, ok)
	assert.Equal(t, TaskProposal, task.TaskType)
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.Equal(t, TypeTask, rec.RecordType())
}

// TestDecodeRecordUnknownType - tipo fora da união é erro
func TestDecodeRecordUnknownType(t *testing.T) {
	_, err := DecodeRecord([]byte(`{"Id":1,"leadId":1,"type":"sms"}`))
	assert.Error(t, err)

	var recs Records
	err = json.Unmarshal([]byte(`[{"Id":1,"leadId":1,"type":"call","date":"2024-01-15T10:30:00Z","description":"x"},{"Id":2,"type":""}]`), &recs)
	assert.ErrorContains(t, err, "record 1")
}

func TestTaskMarshalIncludesDiscriminator(t *testing.T) {
	body, err := json.Marshal(Task{ID: 8, LeadID: 1, Description: "x", TaskType: TaskDemo, Priority: PriorityLow})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, "task", raw["type"])
	assert.Equal(t, "demo", raw["taskType"])

	rec, err := DecodeRecord(body)
	require.NoError(t, err)
	assert.IsType(t, Task{}, rec)
}

func TestTaskApplyDefaults(t *testing.T) {
	task := Task{}
	task.ApplyDefaults()
	assert.Equal(t, TaskFollowUp, task.TaskType)
	assert.Equal(t, PriorityMedium, task.Priority)

	task = Task{TaskType: TaskDemo, Priority: PriorityHigh}
	task.ApplyDefaults()
	assert.Equal(t, TaskDemo, task.TaskType)
	assert.Equal(t, PriorityHigh, task.Priority)
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2024, 1, 23, 12, 0, 0, 0, time.UTC)
	due := now.Add(-time.Hour)

	assert.True(t, Task{DueDate: due}.IsOverdue(now))
	assert.False(t, Task{DueDate: due, Completed: true}.IsOverdue(now))
	assert.False(t, Task{DueDate: now.Add(time.Hour)}.IsOverdue(now))
}

func TestActivityValidate(t *testing.T) {
	a := Activity{LeadID: 1, Type: TypeNote, Date: time.Now(), Description: "ok"}
	assert.NoError(t, a.Validate())

	a = Activity{LeadID: 1, Type: TypeTask, Description: " ", Duration: -5}
	err := a.Validate()
	require.Error(t, err)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 4) // type, description, date, duration
}

// TestRecordPatchRejectsCrossKindFields - campo de tarefa em atividade (e vice-versa)
func TestRecordPatchRejectsCrossKindFields(t *testing.T) {
	due := time.Now()
	prio := PriorityHigh
	a := Activity{ID: 1, LeadID: 1, Type: TypeCall, Description: "call"}
	err := RecordPatch{DueDate: &due, Priority: &prio}.ApplyActivity(&a)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, TypeCall, a.Type)

	duration := 10
	task := Task{ID: 2, LeadID: 1, Description: "t"}
	err = RecordPatch{Duration: &duration}.ApplyTask(&task)
	assert.True(t, IsValidationError(err))

	kind := TypeTask
	err = RecordPatch{Type: &kind}.ApplyActivity(&a)
	assert.True(t, IsValidationError(err))

	kind = TypeMeeting
	err = RecordPatch{Type: &kind}.ApplyTask(&task)
	assert.True(t, IsValidationError(err))
}

func TestRecordPatchApplies(t *testing.T) {
	desc := "updated"
	kind := TypeMeeting
	a := Activity{ID: 1, LeadID: 1, Type: TypeCall, Description: "call"}
	require.NoError(t, RecordPatch{Description: &desc, Type: &kind}.ApplyActivity(&a))
	assert.Equal(t, "updated", a.Description)
	assert.Equal(t, TypeMeeting, a.Type)

	prio := PriorityLow
	task := Task{ID: 2, LeadID: 1, Description: "t", Priority: PriorityHigh}
	require.NoError(t, RecordPatch{Priority: &prio}.ApplyTask(&task))
	assert.Equal(t, PriorityLow, task.Priority)
}

func TestStageChangedEventDealWon(t *testing.T) {
	lead := Lead{ID: 4, Name: "David Thompson", Stage: StageClosedWon, DealValue: 22000}
	ev := NewStageChangedEvent(lead, StageProposal, time.Now())

	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, EventStageChanged, ev.Type)
	assert.Equal(t, StageProposal, ev.FromStage)
	assert.Equal(t, StageClosedWon, ev.ToStage)
	assert.True(t, ev.IsDealWon())

	lead.Stage = StageClosedLost
	assert.False(t, NewStageChangedEvent(lead, StageProposal, time.Now()).IsDealWon())
	assert.False(t, NewTaskCompletedEvent(Task{ID: 8, LeadID: 1}, time.Now()).IsDealWon())
}
