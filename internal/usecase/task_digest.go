package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/ligue-pipeline/internal/entity"
	"golang.org/x/sync/errgroup"
)

// TaskDigest é o resumo das tarefas pendentes agrupadas por vencimento.
type TaskDigest struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Groups      TaskGroups     `json:"groups"`
	Counts      TaskCounts     `json:"counts"`
	LeadNames   map[int]string `json:"leadNames"`
}

type TaskDigestOutput struct {
	Digest    TaskDigest `json:"digest"`
	Recipient string     `json:"recipient"`
	Sent      bool       `json:"sent"`
}

// TaskDigestUseCase monta o digest e entrega pelo DigestSender configurado.
// Sem sender o digest é só devolvido.
type TaskDigestUseCase struct {
	LeadRepo     entity.LeadRepositoryInterface
	ActivityRepo entity.ActivityRepositoryInterface
	Sender       DigestSender
	Recipient    string
	Now          Clock
	Log          logrus.FieldLogger
}

func NewTaskDigestUseCase(
	leadRepo entity.LeadRepositoryInterface,
	activityRepo entity.ActivityRepositoryInterface,
	sender DigestSender,
	recipient string,
	log logrus.FieldLogger,
) *TaskDigestUseCase {
	return &TaskDigestUseCase{
		LeadRepo:     leadRepo,
		ActivityRepo: activityRepo,
		Sender:       sender,
		Recipient:    recipient,
		Now:          orNow(nil),
		Log:          loggerOrStd(log),
	}
}

// Execute envia para `to`, ou para o destinatário padrão quando vazio.
func (uc *TaskDigestUseCase) Execute(ctx context.Context, to string) (TaskDigestOutput, error) {
	const action = "failed to send task digest"
	log := uc.Log.WithField("operation", "task_digest")

	if to == "" {
		to = uc.Recipient
	}

	var (
		leads []entity.Lead
		tasks []entity.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		leads, err = uc.LeadRepo.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = uc.ActivityRepo.GetAllTasks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return TaskDigestOutput{}, wrap(action, err)
	}

	digest := BuildTaskDigest(leads, tasks, orNow(uc.Now)())
	out := TaskDigestOutput{Digest: digest, Recipient: to}

	if uc.Sender == nil {
		log.Info("📭 sem sender configurado, digest não enviado")
		return out, nil
	}
	if to == "" {
		return out, wrap(action, entity.ValidationErrors{{Field: "recipient", Message: "is required"}})
	}
	if err := uc.Sender.SendTaskDigest(ctx, to, digest); err != nil {
		log.WithError(err).Error("❌ falha ao enviar digest")
		return out, wrap(action, err)
	}

	out.Sent = true
	log.WithFields(logrus.Fields{"to": to, "tasks": digest.Groups.Len()}).Info("📬 digest enviado")
	return out, nil
}

// BuildTaskDigest agrupa só as tarefas pendentes.
func BuildTaskDigest(leads []entity.Lead, tasks []entity.Task, now time.Time) TaskDigest {
	names := make(map[int]string, len(leads))
	for _, l := range leads {
		names[l.ID] = l.Name
	}
	return TaskDigest{
		GeneratedAt: now,
		Groups:      GroupTasksByDue(UpcomingTasks(tasks), now),
		Counts:      CountTasks(tasks, now),
		LeadNames:   names,
	}
}
