package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-pipeline/internal/config"
	"github.com/xavierca1/ligue-pipeline/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-pipeline/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-pipeline/internal/infra/mail"
	"github.com/xavierca1/ligue-pipeline/internal/infra/memory"
	"github.com/xavierca1/ligue-pipeline/internal/infra/queue"
	"github.com/xavierca1/ligue-pipeline/internal/usecase"
)

type app struct {
	cfg          config.Config
	log          *logrus.Logger
	leadRepo     *memory.LeadRepository
	activityRepo *memory.ActivityRepository
	publisher    usecase.EventPublisher
	mailSender   *mail.EmailSender
	rabbitMQ     *queue.RabbitMQ
	limiter      *middleware.RateLimiter
}

// newRouter monta use cases e handlers em cima dos repositórios.
func newRouter(a app) http.Handler {
	metrics := middleware.PipelineMetrics{}
	ucLog := a.log.WithField("layer", "usecase")
	httpLog := a.log.WithField("layer", "http")

	var digestSender usecase.DigestSender
	if a.mailSender != nil {
		digestSender = a.mailSender
	}

	leads := &handlers.LeadHandler{
		Pipeline: usecase.NewLoadPipelineUseCase(a.leadRepo, a.activityRepo, ucLog),
		Get:      &usecase.GetLeadUseCase{Repo: a.leadRepo},
		Save:     usecase.NewSaveLeadUseCase(a.leadRepo, metrics, ucLog),
		Update:   usecase.NewUpdateLeadUseCase(a.leadRepo, ucLog),
		Delete:   usecase.NewDeleteLeadUseCase(a.leadRepo, a.activityRepo, ucLog),
		Move:     usecase.NewMoveLeadStageUseCase(a.leadRepo, a.publisher, metrics, ucLog),
		Log:      httpLog,
	}
	activities := &handlers.ActivityHandler{
		Records: usecase.NewRecordUseCase(a.activityRepo, ucLog),
		Add:     usecase.NewAddActivityUseCase(a.activityRepo, a.leadRepo, metrics, ucLog),
		Log:     httpLog,
	}
	tasks := &handlers.TaskHandler{
		List:     &usecase.ListTasksUseCase{Repo: a.activityRepo},
		Create:   usecase.NewCreateTaskUseCase(a.activityRepo, ucLog),
		Complete: usecase.NewCompleteTaskUseCase(a.activityRepo, a.publisher, metrics, ucLog),
		Digest:   usecase.NewTaskDigestUseCase(a.leadRepo, a.activityRepo, digestSender, a.cfg.DigestRecipient, ucLog),
		Log:      httpLog,
	}

	var health *handlers.HealthHandler
	if a.rabbitMQ != nil {
		health = handlers.NewHealthHandler(a.rabbitMQ.Conn, a.cfg.Mail.Enabled(), stores(a))
	} else {
		health = handlers.NewHealthHandler(nil, a.cfg.Mail.Enabled(), stores(a))
	}

	return handlers.NewRouter(handlers.RouterConfig{
		Leads:       leads,
		Activities:  activities,
		Tasks:       tasks,
		Health:      health,
		RateLimiter: a.limiter,
		CORSOrigins: a.cfg.CORSOrigins,
	})
}

func stores(a app) map[string]handlers.Sizer {
	return map[string]handlers.Sizer{
		"leads":   a.leadRepo,
		"records": a.activityRepo,
	}
}
