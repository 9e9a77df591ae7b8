package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/xavierca1/ligue-pipeline/internal/entity"
)

// DealWonNotifier avisa o time quando um negócio é fechado.
type DealWonNotifier interface {
	SendDealWon(ctx context.Context, event entity.PipelineEvent) error
}

var ErrMalformedEvent = errors.New("malformed event")

type Worker struct {
	Channel  *amqp.Channel
	Notifier DealWonNotifier
	Log      logrus.FieldLogger
}

func NewWorker(ch *amqp.Channel, notifier DealWonNotifier, log logrus.FieldLogger) *Worker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Worker{Channel: ch, Notifier: notifier, Log: log}
}

// Start consome a fila até ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor: %w", err)
	}

	w.Log.WithField("queue", queueName).Info("👂 worker aguardando eventos")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	log := w.Log.WithField("message_id", d.MessageId)

	if err := w.Process(ctx, d.Body); err != nil {
		// sem requeue: a mensagem vai para a DLQ em vez de travar a fila
		log.WithError(err).Error("❌ [WORKER] evento rejeitado")
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

// Process trata um corpo de mensagem. Só deal won gera efeito; o resto é logado.
func (w *Worker) Process(ctx context.Context, body []byte) error {
	var event entity.PipelineEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if event.Type == "" {
		return fmt.Errorf("%w: missing type", ErrMalformedEvent)
	}

	log := w.Log.WithFields(logrus.Fields{"event_id": event.EventID, "type": event.Type, "lead_id": event.LeadID})

	switch {
	case event.IsDealWon():
		if w.Notifier == nil {
			log.Warn("⚠️ deal won sem notificador configurado")
			return nil
		}
		if err := w.Notifier.SendDealWon(ctx, event); err != nil {
			return fmt.Errorf("falha ao notificar deal won: %w", err)
		}
		log.Info("🏆 deal won notificado")
	default:
		log.Debug("📥 [WORKER] evento recebido")
	}
	return nil
}
