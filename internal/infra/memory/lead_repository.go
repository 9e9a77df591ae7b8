package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/xavierca1/ligue-pipeline/internal/entity"
)

// LeadRepository guarda os leads em memória. Cada leitura devolve cópias.
type LeadRepository struct {
	mu      sync.RWMutex
	leads   []entity.Lead
	lastID  int // maior Id já atribuído ou semeado; ids nunca são reaproveitados
	latency *Latency
	now     func() time.Time
}

func NewLeadRepository(seed []entity.Lead, latency *Latency) *LeadRepository {
	r := &LeadRepository{
		leads:   make([]entity.Lead, 0, len(seed)),
		latency: latency,
		now:     time.Now,
	}
	for _, l := range seed {
		r.leads = append(r.leads, l.Clone())
		if l.ID > r.lastID {
			r.lastID = l.ID
		}
	}
	return r
}

// WithClock troca o relógio usado para createdAt/lastContactDate.
func (r *LeadRepository) WithClock(now func() time.Time) *LeadRepository {
	r.now = now
	return r
}

func (r *LeadRepository) GetAll(ctx context.Context) ([]entity.Lead, error) {
	if err := r.latency.Wait(ctx, OpLeadGetAll); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		out = append(out, l.Clone())
	}
	return out, nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id int) (entity.Lead, error) {
	if err := r.latency.Wait(ctx, OpLeadGetByID); err != nil {
		return entity.Lead{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return entity.Lead{}, entity.NotFound("lead", id)
	}
	return r.leads[i].Clone(), nil
}

func (r *LeadRepository) Create(ctx context.Context, lead entity.Lead) (entity.Lead, error) {
	if err := r.latency.Wait(ctx, OpLeadCreate); err != nil {
		return entity.Lead{}, err
	}

	newLead := lead.Clone()
	if newLead.Stage == "" {
		newLead.Stage = entity.StageNewLead
	}
	if err := newLead.Validate(); err != nil {
		return entity.Lead{}, err
	}

	now := r.now().UTC()
	if newLead.CreatedAt.IsZero() {
		newLead.CreatedAt = now
	}
	if newLead.LastContactDate.IsZero() {
		newLead.LastContactDate = now
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID = max(r.lastID, r.maxID()) + 1
	newLead.ID = r.lastID
	r.leads = append(r.leads, newLead)

	return newLead.Clone(), nil
}

func (r *LeadRepository) Update(ctx context.Context, id int, patch entity.LeadPatch) (entity.Lead, error) {
	if err := r.latency.Wait(ctx, OpLeadUpdate); err != nil {
		return entity.Lead{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return entity.Lead{}, entity.NotFound("lead", id)
	}

	updated := r.leads[i].Clone()
	patch.Apply(&updated)
	updated.ID = id
	if err := updated.Validate(); err != nil {
		return entity.Lead{}, err
	}

	r.leads[i] = updated
	return updated.Clone(), nil
}

func (r *LeadRepository) Delete(ctx context.Context, id int) error {
	if err := r.latency.Wait(ctx, OpLeadDelete); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return entity.NotFound("lead", id)
	}
	r.leads = append(r.leads[:i], r.leads[i+1:]...)
	return nil
}

// Restore reinsere um lead apagado mantendo o Id. Sem atraso simulado: é compensação.
func (r *LeadRepository) Restore(ctx context.Context, lead entity.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if lead.ID <= 0 {
		return fmt.Errorf("restore lead: invalid id %d", lead.ID)
	}
	if r.indexOf(lead.ID) >= 0 {
		return fmt.Errorf("restore lead: id %d already exists", lead.ID)
	}

	r.leads = append(r.leads, lead.Clone())
	sort.SliceStable(r.leads, func(i, j int) bool { return r.leads[i].ID < r.leads[j].ID })
	if lead.ID > r.lastID {
		r.lastID = lead.ID
	}
	return nil
}

// Len é usado pelo health check.
func (r *LeadRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.leads)
}

func (r *LeadRepository) indexOf(id int) int {
	for i, l := range r.leads {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (r *LeadRepository) maxID() int {
	m := 0
	for _, l := range r.leads {
		if l.ID > m {
			m = l.ID
		}
	}
	return m
}
