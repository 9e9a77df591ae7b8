package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/ligue-pipeline/internal/entity"
	"github.com/xavierca1/ligue-pipeline/internal/usecase"
)

// testNow = 2024-01-23 12:00 UTC
func sidebarTasks() []entity.Task {
	return []entity.Task{
		{ID: 10, LeadID: 5, Description: "Follow-up call", DueDate: time.Date(2024, 1, 24, 15, 30, 0, 0, time.UTC)},
		{ID: 8, LeadID: 1, Description: "Send pricing", DueDate: time.Date(2024, 1, 22, 14, 0, 0, 0, time.UTC)},
		{ID: 11, LeadID: 4, Description: "Onboarding docs", DueDate: time.Date(2024, 1, 14, 9, 0, 0, 0, time.UTC), Completed: true},
		{ID: 12, LeadID: 7, Description: "Demo", DueDate: time.Date(2024, 1, 23, 18, 0, 0, 0, time.UTC)},
		{ID: 13, LeadID: 7, Description: "Morning check", DueDate: time.Date(2024, 1, 23, 8, 0, 0, 0, time.UTC)},
		{ID: 9, LeadID: 2, Description: "Legal review", DueDate: time.Date(2024, 1, 29, 10, 0, 0, 0, time.UTC)},
	}
}

func taskIDs(tasks []entity.Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestParseTaskView(t *testing.T) {
	v, err := usecase.ParseTaskView("")
	require.NoError(t, err)
	assert.Equal(t, usecase.TaskViewAll, v)

	v, err = usecase.ParseTaskView("overdue")
	require.NoError(t, err)
	assert.Equal(t, usecase.TaskViewOverdue, v)

	_, err = usecase.ParseTaskView("someday")
	assert.True(t, entity.IsValidationError(err))
}

// TestFilterTasksViews - cada view ordenada por vencimento
func TestFilterTasksViews(t *testing.T) {
	tasks := sidebarTasks()

	assert.Equal(t, []int{11, 8, 13, 12, 10, 9}, taskIDs(usecase.FilterTasks(tasks, usecase.TaskViewAll, testNow)))
	assert.Equal(t, []int{8, 13, 12, 10, 9}, taskIDs(usecase.FilterTasks(tasks, usecase.TaskViewPending, testNow)))
	assert.Equal(t, []int{11}, taskIDs(usecase.FilterTasks(tasks, usecase.TaskViewCompleted, testNow)))
	assert.Equal(t, []int{8, 13}, taskIDs(usecase.FilterTasks(tasks, usecase.TaskViewOverdue, testNow)))
}

func TestFilterTasksDoesNotReorderInput(t *testing.T) {
	tasks := sidebarTasks()
	usecase.FilterTasks(tasks, usecase.TaskViewAll, testNow)
	assert.Equal(t, 10, tasks[0].ID)
}

func TestCountTasks(t *testing.T) {
	c := usecase.CountTasks(sidebarTasks(), testNow)
	assert.Equal(t, usecase.TaskCounts{All: 6, Pending: 5, Completed: 1, Overdue: 2}, c)
}

// TestGroupTasksByDue - atrasada vence "hoje"; concluída não é atrasada
func TestGroupTasksByDue(t *testing.T) {
	g := usecase.GroupTasksByDue(sidebarTasks(), testNow)

	assert.Equal(t, []int{8, 13}, taskIDs(g.Overdue))
	assert.Equal(t, []int{12}, taskIDs(g.Today))
	assert.Equal(t, []int{10}, taskIDs(g.Tomorrow))
	assert.Equal(t, []int{11, 9}, taskIDs(g.Upcoming))
	assert.Equal(t, 6, g.Len())
}

func TestUpcomingTasks(t *testing.T) {
	assert.Equal(t, []int{8, 13, 12, 10, 9}, taskIDs(usecase.UpcomingTasks(sidebarTasks())))
	assert.NotNil(t, usecase.UpcomingTasks(nil))
}

func TestLeadTasks(t *testing.T) {
	assert.Equal(t, []int{13, 12}, taskIDs(usecase.LeadTasks(sidebarTasks(), 7)))
	assert.Empty(t, usecase.LeadTasks(sidebarTasks(), 99))
}

// TestLeadActivitiesNewestFirst - só atividades, tarefas ficam de fora
func TestLeadActivitiesNewestFirst(t *testing.T) {
	records := []entity.Record{
		entity.Activity{ID: 1, LeadID: 1, Type: entity.TypeCall, Date: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)},
		entity.Activity{ID: 2, LeadID: 1, Type: entity.TypeEmail, Date: time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)},
		entity.Activity{ID: 3, LeadID: 2, Type: entity.TypeMeeting, Date: time.Date(2024, 1, 18, 9, 0, 0, 0, time.UTC)},
		entity.Task{ID: 8, LeadID: 1, DueDate: time.Date(2024, 1, 22, 14, 0, 0, 0, time.UTC)},
	}

	got := usecase.LeadActivities(records, 1)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 1, got[1].ID)

	activities, tasks := usecase.SplitRecords(records)
	assert.Len(t, activities, 3)
	assert.Len(t, tasks, 1)
}
