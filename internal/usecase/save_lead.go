package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/ligue-pipeline/internal/entity"
)

// SaveLeadUseCase é o "salvar" do modal: cria quando Id == 0, senão atualiza.
type SaveLeadUseCase struct {
	Repo    entity.LeadRepositoryInterface
	Metrics PipelineMetrics
	Log     logrus.FieldLogger
}

func NewSaveLeadUseCase(repo entity.LeadRepositoryInterface, metrics PipelineMetrics, log logrus.FieldLogger) *SaveLeadUseCase {
	return &SaveLeadUseCase{
		Repo:    repo,
		Metrics: metricsOrNop(metrics),
		Log:     loggerOrStd(log),
	}
}

func (uc *SaveLeadUseCase) Execute(ctx context.Context, lead entity.Lead) (entity.Lead, error) {
	log := uc.Log.WithField("operation", "save_lead")

	if lead.ID == 0 {
		created, err := uc.Repo.Create(ctx, lead)
		if err != nil {
			log.WithError(err).Warn("❌ falha ao criar lead")
			return entity.Lead{}, wrap("failed to save lead", err)
		}
		uc.Metrics.LeadCreated()
		log.WithField("lead_id", created.ID).Info("✅ lead criado")
		return created, nil
	}

	updated, err := uc.Repo.Update(ctx, lead.ID, entity.LeadPatchFrom(lead))
	if err != nil {
		log.WithError(err).WithField("lead_id", lead.ID).Warn("❌ falha ao salvar lead")
		return entity.Lead{}, wrap("failed to save lead", err)
	}
	return updated, nil
}

// UpdateLeadUseCase aplica um patch parcial. Sem lastContactDate no patch, o
// contato é marcado como agora.
type UpdateLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
	Now  Clock
	Log  logrus.FieldLogger
}

func NewUpdateLeadUseCase(repo entity.LeadRepositoryInterface, log logrus.FieldLogger) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{Repo: repo, Now: orNow(nil), Log: loggerOrStd(log)}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, id int, patch entity.LeadPatch) (entity.Lead, error) {
	if patch.LastContactDate == nil {
		now := orNow(uc.Now)()
		patch.LastContactDate = &now
	}

	updated, err := uc.Repo.Update(ctx, id, patch)
	if err != nil {
		uc.Log.WithError(err).WithFields(logrus.Fields{"operation": "update_lead", "lead_id": id}).
			Warn("❌ falha ao atualizar lead")
		return entity.Lead{}, wrap("failed to update lead", err)
	}
	return updated, nil
}

// GetLeadUseCase existe para a API devolver o mesmo envelope de erro das escritas.
type GetLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func (uc *GetLeadUseCase) Execute(ctx context.Context, id int) (entity.Lead, error) {
	lead, err := uc.Repo.GetByID(ctx, id)
	if err != nil {
		return entity.Lead{}, wrap("failed to load lead", err)
	}
	return lead, nil
}
