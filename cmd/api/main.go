package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-pipeline/internal/config"
	"github.com/xavierca1/ligue-pipeline/internal/infra/fixture"
	"github.com/xavierca1/ligue-pipeline/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-pipeline/internal/infra/mail"
	"github.com/xavierca1/ligue-pipeline/internal/infra/memory"
	"github.com/xavierca1/ligue-pipeline/internal/infra/queue"
	"github.com/xavierca1/ligue-pipeline/internal/usecase"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.JSONFormatter{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Fixtures + repositórios em memória
	seed, err := fixture.Load(cfg.FixturesDir)
	if err != nil {
		log.WithError(err).Fatal("❌ falha ao carregar fixtures")
	}
	latency := memory.NewLatency(memory.DefaultDelays, cfg.EffectiveLatencyScale())
	leadRepo := memory.NewLeadRepository(seed.Leads, latency)
	activityRepo := memory.NewActivityRepository(seed.Records, latency)
	log.WithFields(logrus.Fields{"leads": leadRepo.Len(), "records": activityRepo.Len()}).Info("🌱 fixtures carregados")

	// 2. Email (opcional)
	var mailSender *mail.EmailSender
	if cfg.Mail.Enabled() {
		mailSender = mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
	}

	// 3. Fila (opcional)
	var (
		publisher usecase.EventPublisher = usecase.NopPublisher
		rabbitMQ  *queue.RabbitMQ
	)
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.WithError(err).Fatal("❌ falha ao conectar no RabbitMQ")
		}
		defer rabbitMQ.Close()
		publisher = queue.NewProducer(rabbitMQ.Ch)

		var notifier queue.DealWonNotifier
		if mailSender != nil && cfg.DigestRecipient != "" {
			notifier = mail.DealWonSender{EmailSender: mailSender, To: cfg.DigestRecipient}
		}
		worker := queue.NewWorker(rabbitMQ.Ch, notifier, log.WithField("component", "worker"))
		go func() {
			if err := worker.Start(ctx, queue.QueueName); err != nil {
				log.WithError(err).Error("❌ worker parou")
			}
		}()
	} else {
		log.Info("📭 RABBITMQ_URL vazio, eventos desligados")
	}

	// 4. Use cases + handlers
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitWindow)
	defer limiter.Stop()

	router := newRouter(app{
		cfg:          cfg,
		log:          log,
		leadRepo:     leadRepo,
		activityRepo: activityRepo,
		publisher:    publisher,
		mailSender:   mailSender,
		rabbitMQ:     rabbitMQ,
		limiter:      limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.WithField("port", cfg.Port).Info("🔥 Pipeline API rodando")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("❌ servidor caiu")
	}
}
