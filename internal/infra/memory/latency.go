package memory

import (
	"context"
	"time"
)

// Op identifica a operação de repositório para escolher o atraso simulado.
type Op string

const (
	OpLeadGetAll        Op = "lead.getAll"
	OpLeadGetByID       Op = "lead.getById"
	OpLeadCreate        Op = "lead.create"
	OpLeadUpdate        Op = "lead.update"
	OpLeadDelete        Op = "lead.delete"
	OpActivityGetAll    Op = "activity.getAll"
	OpActivityGetByID   Op = "activity.getById"
	OpActivityGetByLead Op = "activity.getByLeadId"
	OpActivityCreate    Op = "activity.create"
	OpActivityUpdate    Op = "activity.update"
	OpActivityDelete    Op = "activity.delete"
	OpTaskCreate        Op = "task.create"
	OpTaskComplete      Op = "task.complete"
	OpTaskGetAll        Op = "task.getAll"
)

// DefaultDelays imita a latência de rede do serviço mock do dashboard.
var DefaultDelays = map[Op]time.Duration{
	OpLeadGetAll:        300 * time.Millisecond,
	OpLeadGetByID:       200 * time.Millisecond,
	OpLeadCreate:        400 * time.Millisecond,
	OpLeadUpdate:        300 * time.Millisecond,
	OpLeadDelete:        200 * time.Millisecond,
	OpActivityGetAll:    250 * time.Millisecond,
	OpActivityGetByID:   200 * time.Millisecond,
	OpActivityGetByLead: 200 * time.Millisecond,
	OpActivityCreate:    300 * time.Millisecond,
	OpActivityUpdate:    250 * time.Millisecond,
	OpActivityDelete:    200 * time.Millisecond,
	OpTaskCreate:        300 * time.Millisecond,
	OpTaskComplete:      250 * time.Millisecond,
	OpTaskGetAll:        250 * time.Millisecond,
}

// Latency simula o atraso de rede antes de cada operação.
// O valor zero (ou nil) não espera nada, que é o que os testes usam.
type Latency struct {
	delays map[Op]time.Duration
	scale  float64
}

func NewLatency(delays map[Op]time.Duration, scale float64) *Latency {
	return &Latency{delays: delays, scale: scale}
}

// NoLatency desliga o atraso.
func NoLatency() *Latency {
	return &Latency{}
}

func (l *Latency) Delay(op Op) time.Duration {
	if l == nil || l.scale <= 0 {
		return 0
	}
	return time.Duration(float64(l.delays[op]) * l.scale)
}

// Wait bloqueia pelo atraso de op. Cancelar ctx durante a espera impede a operação
// de acontecer; depois que ela começa não há como abortar.
func (l *Latency) Wait(ctx context.Context, op Op) error {
	d := l.Delay(op)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
