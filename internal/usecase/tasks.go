package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/ligue-pipeline/internal/entity"
)

type CreateTaskUseCase struct {
	Repo entity.ActivityRepositoryInterface
	Log  logrus.FieldLogger
}

func NewCreateTaskUseCase(repo entity.ActivityRepositoryInterface, log logrus.FieldLogger) *CreateTaskUseCase {
	return &CreateTaskUseCase{Repo: repo, Log: loggerOrStd(log)}
}

func (uc *CreateTaskUseCase) Execute(ctx context.Context, task entity.Task) (entity.Task, error) {
	created, err := uc.Repo.CreateTask(ctx, task)
	if err != nil {
		uc.Log.WithError(err).WithField("operation", "create_task").Warn("❌ falha ao criar tarefa")
		return entity.Task{}, wrap("failed to create task", err)
	}
	uc.Log.WithFields(logrus.Fields{"operation": "create_task", "task_id": created.ID}).Info("📌 tarefa criada")
	return created, nil
}

// CompleteTaskUseCase marca a tarefa como concluída e publica task.completed.
type CompleteTaskUseCase struct {
	Repo      entity.ActivityRepositoryInterface
	Publisher EventPublisher
	Metrics   PipelineMetrics
	Now       Clock
	Log       logrus.FieldLogger
}

func NewCompleteTaskUseCase(
	repo entity.ActivityRepositoryInterface,
	publisher EventPublisher,
	metrics PipelineMetrics,
	log logrus.FieldLogger,
) *CompleteTaskUseCase {
	return &CompleteTaskUseCase{
		Repo:      repo,
		Publisher: publisherOrNop(publisher),
		Metrics:   metricsOrNop(metrics),
		Now:       orNow(nil),
		Log:       loggerOrStd(log),
	}
}

func (uc *CompleteTaskUseCase) Execute(ctx context.Context, id int) (entity.Task, error) {
	log := uc.Log.WithFields(logrus.Fields{"operation": "complete_task", "task_id": id})

	task, err := uc.Repo.CompleteTask(ctx, id)
	if err != nil {
		log.WithError(err).Warn("❌ falha ao concluir tarefa")
		return entity.Task{}, wrap("failed to complete task", err)
	}
	uc.Metrics.TaskCompleted()

	if err := uc.Publisher.PublishEvent(ctx, entity.NewTaskCompletedEvent(task, orNow(uc.Now)())); err != nil {
		log.WithError(err).Error("⚠️ tarefa concluída, mas falha ao publicar evento")
	}
	log.Info("✅ tarefa concluída")
	return task, nil
}

type TaskListOutput struct {
	View   TaskView      `json:"view"`
	Tasks  []entity.Task `json:"tasks"`
	Counts TaskCounts    `json:"counts"`
}

// ListTasksUseCase alimenta a sidebar de tarefas.
type ListTasksUseCase struct {
	Repo entity.ActivityRepositoryInterface
	Now  Clock
}

func (uc *ListTasksUseCase) Execute(ctx context.Context, view TaskView) (TaskListOutput, error) {
	tasks, err := uc.Repo.GetAllTasks(ctx)
	if err != nil {
		return TaskListOutput{}, wrap("failed to load tasks", err)
	}
	now := orNow(uc.Now)()
	return TaskListOutput{
		View:   view,
		Tasks:  FilterTasks(tasks, view, now),
		Counts: CountTasks(tasks, now),
	}, nil
}
