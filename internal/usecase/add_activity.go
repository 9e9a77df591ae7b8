package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/ligue-pipeline/internal/entity"
)

// AddActivityUseCase registra a atividade e depois atualiza lastContactDate do lead.
// Não é atômico: se o segundo passo falhar, a atividade continua gravada e o erro
// volta junto com ela.
type AddActivityUseCase struct {
	ActivityRepo entity.ActivityRepositoryInterface
	LeadRepo     entity.LeadRepositoryInterface
	Metrics      PipelineMetrics
	Log          logrus.FieldLogger
}

func NewAddActivityUseCase(
	activityRepo entity.ActivityRepositoryInterface,
	leadRepo entity.LeadRepositoryInterface,
	metrics PipelineMetrics,
	log logrus.FieldLogger,
) *AddActivityUseCase {
	return &AddActivityUseCase{
		ActivityRepo: activityRepo,
		LeadRepo:     leadRepo,
		Metrics:      metricsOrNop(metrics),
		Log:          loggerOrStd(log),
	}
}

func (uc *AddActivityUseCase) Execute(ctx context.Context, activity entity.Activity) (entity.Activity, error) {
	log := uc.Log.WithFields(logrus.Fields{"operation": "add_activity", "lead_id": activity.LeadID})

	created, err := uc.ActivityRepo.Create(ctx, activity)
	if err != nil {
		log.WithError(err).Warn("❌ falha ao registrar atividade")
		return entity.Activity{}, wrap("failed to add activity", err)
	}
	uc.Metrics.ActivityLogged(created.Type)

	contact := created.Date
	if _, err := uc.LeadRepo.Update(ctx, created.LeadID, entity.LeadPatch{LastContactDate: &contact}); err != nil {
		log.WithError(err).WithField("activity_id", created.ID).
			Error("⚠️ atividade gravada, mas lastContactDate do lead não foi atualizado")
		return created, wrap("failed to add activity", err)
	}

	log.WithField("activity_id", created.ID).Info("📝 atividade registrada")
	return created, nil
}

// RecordUseCase cobre o CRUD genérico da coleção de atividades + tarefas.
type RecordUseCase struct {
	Repo entity.ActivityRepositoryInterface
	Log  logrus.FieldLogger
}

func NewRecordUseCase(repo entity.ActivityRepositoryInterface, log logrus.FieldLogger) *RecordUseCase {
	return &RecordUseCase{Repo: repo, Log: loggerOrStd(log)}
}

func (uc *RecordUseCase) List(ctx context.Context) ([]entity.Record, error) {
	recs, err := uc.Repo.GetAll(ctx)
	if err != nil {
		return nil, wrap("failed to load activities", err)
	}
	return recs, nil
}

func (uc *RecordUseCase) Get(ctx context.Context, id int) (entity.Record, error) {
	rec, err := uc.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrap("failed to load activity", err)
	}
	return rec, nil
}

// ForLead devolve as atividades do lead (mais recentes primeiro) e as tarefas (por vencimento).
func (uc *RecordUseCase) ForLead(ctx context.Context, leadID int) ([]entity.Activity, []entity.Task, error) {
	recs, err := uc.Repo.GetByLeadID(ctx, leadID)
	if err != nil {
		return nil, nil, wrap("failed to load activities", err)
	}
	_, tasks := SplitRecords(recs)
	return LeadActivities(recs, leadID), LeadTasks(tasks, leadID), nil
}

func (uc *RecordUseCase) Update(ctx context.Context, id int, patch entity.RecordPatch) (entity.Record, error) {
	rec, err := uc.Repo.Update(ctx, id, patch)
	if err != nil {
		uc.Log.WithError(err).WithFields(logrus.Fields{"operation": "update_activity", "record_id": id}).
			Warn("❌ falha ao atualizar atividade")
		return nil, wrap("failed to update activity", err)
	}
	return rec, nil
}

func (uc *RecordUseCase) Delete(ctx context.Context, id int) error {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		return wrap("failed to delete activity", err)
	}
	return nil
}
