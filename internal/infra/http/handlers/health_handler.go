package handlers

import (
	"net/http"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Sizer é implementado pelos repositórios em memória.
type Sizer interface {
	Len() int
}

type HealthHandler struct {
	RabbitMQ    *amqp091.Connection
	MailEnabled bool
	Stores      map[string]Sizer
	StartTime   time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
	Records      map[string]int    `json:"records"`
}

func NewHealthHandler(rabbitMQ *amqp091.Connection, mailEnabled bool, stores map[string]Sizer) *HealthHandler {
	return &HealthHandler{
		RabbitMQ:    rabbitMQ,
		MailEnabled: mailEnabled,
		Stores:      stores,
		StartTime:   time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	if h.MailEnabled {
		deps["smtp"] = "configured"
	} else {
		deps["smtp"] = "not configured"
	}

	records := make(map[string]int, len(h.Stores))
	for name, s := range h.Stores {
		records[name] = s.Len()
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
		Records:      records,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
