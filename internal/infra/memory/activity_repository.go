package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/xavierca1/ligue-pipeline/internal/entity"
)

// ActivityRepository guarda atividades e tarefas na mesma coleção e no mesmo espaço de ids.
type ActivityRepository struct {
	mu      sync.RWMutex
	records []entity.Record
	lastID  int
	latency *Latency
	now     func() time.Time
}

func NewActivityRepository(seed []entity.Record, latency *Latency) *ActivityRepository {
	r := &ActivityRepository{
		records: make([]entity.Record, 0, len(seed)),
		latency: latency,
		now:     time.Now,
	}
	for _, rec := range seed {
		r.records = append(r.records, rec)
		if rec.RecordID() > r.lastID {
			r.lastID = rec.RecordID()
		}
	}
	return r
}

func (r *ActivityRepository) WithClock(now func() time.Time) *ActivityRepository {
	r.now = now
	return r
}

// Activity e Task não têm ponteiros, então copiar o valor já desacopla do estado interno.
func (r *ActivityRepository) GetAll(ctx context.Context) ([]entity.Record, error) {
	if err := r.latency.Wait(ctx, OpActivityGetAll); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, id int) (entity.Record, error) {
	if err := r.latency.Wait(ctx, OpActivityGetByID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, entity.NotFound("activity", id)
	}
	return r.records[i], nil
}

func (r *ActivityRepository) GetByLeadID(ctx context.Context, leadID int) ([]entity.Record, error) {
	if err := r.latency.Wait(ctx, OpActivityGetByLead); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []entity.Record
	for _, rec := range r.records {
		if rec.LeadRef() == leadID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *ActivityRepository) Create(ctx context.Context, activity entity.Activity) (entity.Activity, error) {
	if err := r.latency.Wait(ctx, OpActivityCreate); err != nil {
		return entity.Activity{}, err
	}

	if activity.Date.IsZero() {
		activity.Date = r.now().UTC()
	}
	if err := activity.Validate(); err != nil {
		return entity.Activity{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	activity.ID = r.nextID()
	r.records = append(r.records, activity)
	return activity, nil
}

func (r *ActivityRepository) CreateTask(ctx context.Context, task entity.Task) (entity.Task, error) {
	if err := r.latency.Wait(ctx, OpTaskCreate); err != nil {
		return entity.Task{}, err
	}

	task.Completed = false
	task.ApplyDefaults()
	if err := task.Validate(); err != nil {
		return entity.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	task.ID = r.nextID()
	r.records = append(r.records, task)
	return task, nil
}

func (r *ActivityRepository) Update(ctx context.Context, id int, patch entity.RecordPatch) (entity.Record, error) {
	if err := r.latency.Wait(ctx, OpActivityUpdate); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, entity.NotFound("activity", id)
	}

	var updated entity.Record
	switch rec := r.records[i].(type) {
	case entity.Activity:
		if err := patch.ApplyActivity(&rec); err != nil {
			return nil, err
		}
		rec.ID = id
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		updated = rec
	case entity.Task:
		if err := patch.ApplyTask(&rec); err != nil {
			return nil, err
		}
		rec.ID = id
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		updated = rec
	default:
		return nil, fmt.Errorf("activity %d: unexpected record %T", id, rec)
	}

	r.records[i] = updated
	return updated, nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id int) error {
	if err := r.latency.Wait(ctx, OpActivityDelete); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return entity.NotFound("activity", id)
	}
	r.records = append(r.records[:i], r.records[i+1:]...)
	return nil
}

// CompleteTask marca a tarefa como concluída. Concluir de novo não é erro.
func (r *ActivityRepository) CompleteTask(ctx context.Context, id int) (entity.Task, error) {
	if err := r.latency.Wait(ctx, OpTaskComplete); err != nil {
		return entity.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return entity.Task{}, entity.NotFound("task", id)
	}
	task, ok := r.records[i].(entity.Task)
	if !ok {
		return entity.Task{}, entity.NotFound("task", id)
	}

	task.Completed = true
	r.records[i] = task
	return task, nil
}

func (r *ActivityRepository) GetAllTasks(ctx context.Context) ([]entity.Task, error) {
	if err := r.latency.Wait(ctx, OpTaskGetAll); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []entity.Task
	for _, rec := range r.records {
		if t, ok := rec.(entity.Task); ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// DeleteByLeadID remove tudo que pertence ao lead e devolve o que foi removido
// (para a transação poder restaurar).
func (r *ActivityRepository) DeleteByLeadID(ctx context.Context, leadID int) ([]entity.Record, error) {
	if err := r.latency.Wait(ctx, OpActivityDelete); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []entity.Record
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.LeadRef() == leadID {
			removed = append(removed, rec)
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	return removed, nil
}

func (r *ActivityRepository) Restore(ctx context.Context, records ...entity.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range records {
		if rec.RecordID() <= 0 {
			return fmt.Errorf("restore activity: invalid id %d", rec.RecordID())
		}
		if r.indexOf(rec.RecordID()) >= 0 {
			return fmt.Errorf("restore activity: id %d already exists", rec.RecordID())
		}
	}
	for _, rec := range records {
		r.records = append(r.records, rec)
		if rec.RecordID() > r.lastID {
			r.lastID = rec.RecordID()
		}
	}
	sort.SliceStable(r.records, func(i, j int) bool { return r.records[i].RecordID() < r.records[j].RecordID() })
	return nil
}

func (r *ActivityRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// nextID precisa do lock de escrita.
func (r *ActivityRepository) nextID() int {
	for _, rec := range r.records {
		if rec.RecordID() > r.lastID {
			r.lastID = rec.RecordID()
		}
	}
	r.lastID++
	return r.lastID
}

func (r *ActivityRepository) indexOf(id int) int {
	for i, rec := range r.records {
		if rec.RecordID() == id {
			return i
		}
	}
	return -1
}
