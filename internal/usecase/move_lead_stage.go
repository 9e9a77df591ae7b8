package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/ligue-pipeline/internal/entity"
)

// MoveLeadStageUseCase trata o drag-and-drop entre colunas do board.
type MoveLeadStageUseCase struct {
	Repo      entity.LeadRepositoryInterface
	Publisher EventPublisher
	Metrics   PipelineMetrics
	Now       Clock
	Log       logrus.FieldLogger
}

func NewMoveLeadStageUseCase(
	repo entity.LeadRepositoryInterface,
	publisher EventPublisher,
	metrics PipelineMetrics,
	log logrus.FieldLogger,
) *MoveLeadStageUseCase {
	return &MoveLeadStageUseCase{
		Repo:      repo,
		Publisher: publisherOrNop(publisher),
		Metrics:   metricsOrNop(metrics),
		Now:       orNow(nil),
		Log:       loggerOrStd(log),
	}
}

// Execute move o lead para target. Mesmo estágio não chama o repositório e
// devolve moved=false. Transições concorrentes não são coordenadas: vence a última escrita.
func (uc *MoveLeadStageUseCase) Execute(ctx context.Context, lead entity.Lead, target entity.Stage) (entity.Lead, bool, error) {
	log := uc.Log.WithFields(logrus.Fields{"operation": "move_lead_stage", "lead_id": lead.ID})

	if !target.IsValid() {
		return lead, false, wrap("failed to update lead",
			entity.ValidationErrors{{Field: "stage", Message: "is not a pipeline stage"}})
	}
	if lead.Stage == target {
		return lead, false, nil
	}

	now := orNow(uc.Now)()
	stage := target
	updated, err := uc.Repo.Update(ctx, lead.ID, entity.LeadPatch{
		Stage:           &stage,
		LastContactDate: &now,
	})
	if err != nil {
		log.WithError(err).Warn("❌ falha ao mover lead")
		return lead, false, wrap("failed to update lead", err)
	}

	uc.Metrics.StageChanged(lead.Stage, updated.Stage)
	log.WithFields(logrus.Fields{"from": lead.Stage, "to": updated.Stage}).Info("🔀 lead movido")

	event := entity.NewStageChangedEvent(updated, lead.Stage, now)
	if err := uc.Publisher.PublishEvent(ctx, event); err != nil {
		// a escrita já aconteceu; o evento perdido só é logado
		log.WithError(err).Error("⚠️ lead movido, mas falha ao publicar evento")
	}
	return updated, true, nil
}

// ExecuteByID carrega o lead e aplica a transição (usado pela API, que só tem o Id).
func (uc *MoveLeadStageUseCase) ExecuteByID(ctx context.Context, id int, target entity.Stage) (entity.Lead, bool, error) {
	lead, err := uc.Repo.GetByID(ctx, id)
	if err != nil {
		return entity.Lead{}, false, wrap("failed to update lead", err)
	}
	return uc.Execute(ctx, lead, target)
}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return NopPublisher
	}
	return p
}

func metricsOrNop(m PipelineMetrics) PipelineMetrics {
	if m == nil {
		return NopMetrics
	}
	return m
}

func loggerOrStd(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return logrus.StandardLogger()
	}
	return l
}
