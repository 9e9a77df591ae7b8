package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-pipeline/internal/entity"
)

// EventPublisher publica eventos do funil (RabbitMQ em produção).
type EventPublisher interface {
	PublishEvent(ctx context.Context, event entity.PipelineEvent) error
}

// PipelineMetrics recebe os contadores de domínio.
type PipelineMetrics interface {
	LeadCreated()
	StageChanged(from, to entity.Stage)
	ActivityLogged(kind entity.RecordType)
	TaskCompleted()
}

// DigestSender entrega o resumo de tarefas (email em produção).
type DigestSender interface {
	SendTaskDigest(ctx context.Context, to string, digest TaskDigest) error
}

// Clock permite fixar "agora" nos testes.
type Clock func() time.Time

type nopPublisher struct{}

func (nopPublisher) PublishEvent(context.Context, entity.PipelineEvent) error { return nil }

type nopMetrics struct{}

func (nopMetrics) LeadCreated()                            {}
func (nopMetrics) StageChanged(entity.Stage, entity.Stage) {}
func (nopMetrics) ActivityLogged(entity.RecordType)        {}
func (nopMetrics) TaskCompleted()                          {}

// NopPublisher é usado quando a fila não está configurada.
var NopPublisher EventPublisher = nopPublisher{}

var NopMetrics PipelineMetrics = nopMetrics{}

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
