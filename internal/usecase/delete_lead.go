package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/ligue-pipeline/internal/entity"
)

type DeleteLeadOutput struct {
	LeadID         int `json:"leadId"`
	RemovedRecords int `json:"removedRecords"`
}

// DeleteLeadUseCase remove o lead e, em cascata, as atividades e tarefas dele.
// Se a cascata falhar, o lead e os registros já removidos são restaurados.
type DeleteLeadUseCase struct {
	LeadRepo     entity.LeadRepositoryInterface
	ActivityRepo entity.ActivityRepositoryInterface
	Log          logrus.FieldLogger
}

func NewDeleteLeadUseCase(
	leadRepo entity.LeadRepositoryInterface,
	activityRepo entity.ActivityRepositoryInterface,
	log logrus.FieldLogger,
) *DeleteLeadUseCase {
	return &DeleteLeadUseCase{
		LeadRepo:     leadRepo,
		ActivityRepo: activityRepo,
		Log:          loggerOrStd(log),
	}
}

func (uc *DeleteLeadUseCase) Execute(ctx context.Context, id int) (DeleteLeadOutput, error) {
	log := uc.Log.WithFields(logrus.Fields{"operation": "delete_lead", "lead_id": id})

	var (
		snapshot entity.Lead
		removed  []entity.Record
	)

	tx := NewTransaction(log)
	tx.AddStep("load_lead",
		func(ctx context.Context) error {
			lead, err := uc.LeadRepo.GetByID(ctx, id)
			snapshot = lead
			return err
		},
		nil,
	)
	tx.AddStep("delete_lead",
		func(ctx context.Context) error {
			return uc.LeadRepo.Delete(ctx, id)
		},
		func(ctx context.Context) error {
			return uc.LeadRepo.Restore(ctx, snapshot)
		},
	)
	tx.AddStep("delete_records",
		func(ctx context.Context) error {
			recs, err := uc.ActivityRepo.DeleteByLeadID(ctx, id)
			removed = recs
			return err
		},
		func(ctx context.Context) error {
			if len(removed) == 0 {
				return nil
			}
			return uc.ActivityRepo.Restore(ctx, removed...)
		},
	)

	if err := tx.Execute(ctx); err != nil {
		log.WithError(err).Warn("❌ falha ao remover lead")
		return DeleteLeadOutput{}, wrap("failed to delete lead", err)
	}

	log.WithField("removed_records", len(removed)).Info("🗑️ lead removido")
	return DeleteLeadOutput{LeadID: id, RemovedRecords: len(removed)}, nil
}
