package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Transaction executa operações em ordem; se uma falha, roda as compensações das
// anteriores em ordem reversa. Não há atomicidade real: uma compensação que falha
// só é logada.
type Transaction struct {
	operations    []Operation
	compensations []Compensation
	log           logrus.FieldLogger
}

type Operation struct {
	Name string
	Fn   func(context.Context) error
}

type Compensation struct {
	Name string
	Fn   func(context.Context) error
}

func NewTransaction(log logrus.FieldLogger) *Transaction {
	return &Transaction{
		operations:    []Operation{},
		compensations: []Compensation{},
		log:           log,
	}
}

// AddStep registra a operação e a compensação correspondente (fn nil = nada a desfazer).
func (t *Transaction) AddStep(name string, op, compensate func(context.Context) error) {
	t.operations = append(t.operations, Operation{name, op})
	if compensate == nil {
		compensate = func(context.Context) error { return nil }
	}
	t.compensations = append(t.compensations, Compensation{"undo_" + name, compensate})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		if err := op.Fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", op.Name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAtIndex int) {
	// a compensação precisa rodar mesmo se o ctx da operação já foi cancelado
	ctx = context.WithoutCancel(ctx)

	for i := failedAtIndex - 1; i >= 0; i-- {
		comp := t.compensations[i]
		if err := comp.Fn(ctx); err != nil {
			t.log.WithError(err).WithField("compensation", comp.Name).
				Error("⚠️ compensação falhou, estado pode ficar inconsistente")
		}
	}
}
