package usecase

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/ligue-pipeline/internal/entity"
	"golang.org/x/sync/errgroup"
)

type LoadPipelineInput struct {
	Search  string
	Filters LeadFilters
}

type LoadPipelineOutput struct {
	Leads         []entity.Lead     `json:"leads"`
	Columns       []StageColumn     `json:"columns"`
	Stats         PipelineStats     `json:"stats"`
	Activities    []entity.Activity `json:"activities"`
	UpcomingTasks []entity.Task     `json:"upcomingTasks"`
	TaskCounts    TaskCounts        `json:"taskCounts"`
}

// LoadPipelineUseCase carrega leads, atividades e tarefas em paralelo e monta o board.
type LoadPipelineUseCase struct {
	LeadRepo     entity.LeadRepositoryInterface
	ActivityRepo entity.ActivityRepositoryInterface
	Now          Clock
	Log          logrus.FieldLogger
}

func NewLoadPipelineUseCase(
	leadRepo entity.LeadRepositoryInterface,
	activityRepo entity.ActivityRepositoryInterface,
	log logrus.FieldLogger,
) *LoadPipelineUseCase {
	return &LoadPipelineUseCase{
		LeadRepo:     leadRepo,
		ActivityRepo: activityRepo,
		Now:          orNow(nil),
		Log:          loggerOrStd(log),
	}
}

func (uc *LoadPipelineUseCase) Execute(ctx context.Context, input LoadPipelineInput) (LoadPipelineOutput, error) {
	const action = "failed to load pipeline data"

	// faixa inválida falha antes de pagar a latência dos repositórios
	if input.Filters.DealValue != "" {
		if _, err := ParseDealRange(input.Filters.DealValue); err != nil {
			return LoadPipelineOutput{}, wrap(action, err)
		}
	}

	var (
		leads   []entity.Lead
		records []entity.Record
		tasks   []entity.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		leads, err = uc.LeadRepo.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = uc.ActivityRepo.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = uc.ActivityRepo.GetAllTasks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.Log.WithError(err).WithField("operation", "load_pipeline").Error("❌ falha ao carregar o funil")
		return LoadPipelineOutput{}, wrap(action, err)
	}

	filtered, err := FilterLeads(leads, input.Search, input.Filters)
	if err != nil {
		return LoadPipelineOutput{}, wrap(action, err)
	}

	activities, _ := SplitRecords(records)
	if activities == nil {
		activities = []entity.Activity{}
	}
	sortActivitiesNewestFirst(activities)

	return LoadPipelineOutput{
		Leads:         filtered,
		Columns:       GroupByStage(filtered),
		Stats:         ComputeStats(filtered),
		Activities:    activities,
		UpcomingTasks: UpcomingTasks(tasks),
		TaskCounts:    CountTasks(tasks, orNow(uc.Now)()),
	}, nil
}

// ListLeads devolve só a lista filtrada, sem montar o board.
func (uc *LoadPipelineUseCase) ListLeads(ctx context.Context, input LoadPipelineInput) ([]entity.Lead, error) {
	const action = "failed to load leads"

	if input.Filters.DealValue != "" {
		if _, err := ParseDealRange(input.Filters.DealValue); err != nil {
			return nil, wrap(action, err)
		}
	}
	leads, err := uc.LeadRepo.GetAll(ctx)
	if err != nil {
		return nil, wrap(action, err)
	}
	filtered, err := FilterLeads(leads, input.Search, input.Filters)
	if err != nil {
		return nil, wrap(action, err)
	}
	return filtered, nil
}
