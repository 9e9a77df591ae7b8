package usecase

import (
	"sort"
	"time"

	"github.com/xavierca1/ligue-pipeline/internal/entity"
)

// TaskView é o filtro da sidebar de tarefas.
type TaskView string

const (
	TaskViewAll       TaskView = "all"
	TaskViewPending   TaskView = "pending"
	TaskViewCompleted TaskView = "completed"
	TaskViewOverdue   TaskView = "overdue"
)

func ParseTaskView(s string) (TaskView, error) {
	switch v := TaskView(s); v {
	case "":
		return TaskViewAll, nil
	case TaskViewAll, TaskViewPending, TaskViewCompleted, TaskViewOverdue:
		return v, nil
	default:
		return "", entity.ValidationErrors{{Field: "view", Message: "must be all, pending, completed or overdue"}}
	}
}

// FilterTasks devolve as tarefas da view ordenadas por vencimento.
func FilterTasks(tasks []entity.Task, view TaskView, now time.Time) []entity.Task {
	out := make([]entity.Task, 0, len(tasks))
	for _, t := range tasks {
		switch view {
		case TaskViewPending:
			if t.Completed {
				continue
			}
		case TaskViewCompleted:
			if !t.Completed {
				continue
			}
		case TaskViewOverdue:
			if !t.IsOverdue(now) {
				continue
			}
		}
		out = append(out, t)
	}
	sortByDue(out)
	return out
}

type TaskCounts struct {
	All       int `json:"all"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

func CountTasks(tasks []entity.Task, now time.Time) TaskCounts {
	c := TaskCounts{All: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Pending++
		}
		if t.IsOverdue(now) {
			c.Overdue++
		}
	}
	return c
}

// TaskGroups agrupa por vencimento. Atrasada ganha de "hoje".
type TaskGroups struct {
	Overdue  []entity.Task `json:"overdue"`
	Today    []entity.Task `json:"today"`
	Tomorrow []entity.Task `json:"tomorrow"`
	Upcoming []entity.Task `json:"upcoming"`
}

func (g TaskGroups) Len() int {
	return len(g.Overdue) + len(g.Today) + len(g.Tomorrow) + len(g.Upcoming)
}

func GroupTasksByDue(tasks []entity.Task, now time.Time) TaskGroups {
	g := TaskGroups{
		Overdue:  []entity.Task{},
		Today:    []entity.Task{},
		Tomorrow: []entity.Task{},
		Upcoming: []entity.Task{},
	}
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	dayAfter := today.AddDate(0, 0, 2)

	sorted := append([]entity.Task(nil), tasks...)
	sortByDue(sorted)

	for _, t := range sorted {
		due := t.DueDate.In(now.Location())
		switch {
		case t.IsOverdue(now):
			g.Overdue = append(g.Overdue, t)
		case !due.Before(today) && due.Before(tomorrow):
			g.Today = append(g.Today, t)
		case !due.Before(tomorrow) && due.Before(dayAfter):
			g.Tomorrow = append(g.Tomorrow, t)
		default:
			g.Upcoming = append(g.Upcoming, t)
		}
	}
	return g
}

// UpcomingTasks: pendentes, vencimento mais próximo primeiro.
func UpcomingTasks(tasks []entity.Task) []entity.Task {
	out := make([]entity.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	sortByDue(out)
	return out
}

// LeadTasks devolve as tarefas do lead por vencimento.
func LeadTasks(tasks []entity.Task, leadID int) []entity.Task {
	out := make([]entity.Task, 0)
	for _, t := range tasks {
		if t.LeadID == leadID {
			out = append(out, t)
		}
	}
	sortByDue(out)
	return out
}

// LeadActivities devolve só as atividades (não tarefas) do lead, mais recentes primeiro.
func LeadActivities(records []entity.Record, leadID int) []entity.Activity {
	out := make([]entity.Activity, 0)
	for _, rec := range records {
		if rec.LeadRef() != leadID {
			continue
		}
		switch r := rec.(type) {
		case entity.Activity:
			out = append(out, r)
		case entity.Task:
			// tarefas têm a própria lista
		}
	}
	sortActivitiesNewestFirst(out)
	return out
}

// SplitRecords separa a coleção mista nos dois variantes.
func SplitRecords(records []entity.Record) ([]entity.Activity, []entity.Task) {
	var (
		activities []entity.Activity
		tasks      []entity.Task
	)
	for _, rec := range records {
		switch r := rec.(type) {
		case entity.Activity:
			activities = append(activities, r)
		case entity.Task:
			tasks = append(tasks, r)
		}
	}
	return activities, tasks
}

func sortActivitiesNewestFirst(activities []entity.Activity) {
	sort.SliceStable(activities, func(i, j int) bool { return activities[i].Date.After(activities[j].Date) })
}

func sortByDue(tasks []entity.Task) {
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].DueDate.Before(tasks[j].DueDate) })
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
