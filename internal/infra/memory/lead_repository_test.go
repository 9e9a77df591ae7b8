package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/ligue-pipeline/internal/entity"
)

var fixedNow = time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

func seedLeads() []entity.Lead {
	return []entity.Lead{
		{ID: 1, Name: "Sarah Johnson", Company: "Acme Corp", Email: "sarah@acme.com", DealValue: 15000, Stage: entity.StageQualified, Source: entity.SourceWebsite},
		{ID: 2, Name: "Michael Chen", Company: "TechStart Inc", Email: "michael@techstart.io", DealValue: 8500, Stage: entity.StageProposal, Source: entity.SourceReferral},
		{ID: 3, Name: "Emily Rodriguez", Company: "Global Solutions", Email: "emily@global.com", DealValue: 3200, Stage: entity.StageNewLead, Source: entity.SourceSocialMedia},
	}
}

func newTestLeadRepo() *LeadRepository {
	return NewLeadRepository(seedLeads(), NoLatency()).WithClock(func() time.Time { return fixedNow })
}

func TestLeadRepositoryGetAll(t *testing.T) {
	repo := newTestLeadRepo()

	leads, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, leads, 3)
	assert.Equal(t, "Sarah Johnson", leads[0].Name)
}

// TestLeadRepositoryReadsAreDetached - mexer no retorno não altera o repositório
func TestLeadRepositoryReadsAreDetached(t *testing.T) {
	ctx := context.Background()
	repo := newTestLeadRepo()

	leads, err := repo.GetAll(ctx)
	require.NoError(t, err)
	leads[0].Name = "Mutated"

	lead, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Sarah Johnson", lead.Name)
}

func TestLeadRepositoryGetByIDNotFound(t *testing.T) {
	_, err := newTestLeadRepo().GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

// TestLeadRepositoryCreateAssignsNextID - Id = maior + 1, stage e datas padrão
func TestLeadRepositoryCreateAssignsNextID(t *testing.T) {
	ctx := context.Background()
	repo := newTestLeadRepo()

	created, err := repo.Create(ctx, entity.Lead{ID: 77, Name: "New Person", Email: "new@person.com"})
	require.NoError(t, err)

	assert.Equal(t, 4, created.ID)
	assert.Equal(t, entity.StageNewLead, created.Stage)
	assert.Equal(t, fixedNow, created.CreatedAt)
	assert.Equal(t, fixedNow, created.LastContactDate)

	got, err := repo.GetByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestLeadRepositoryCreateOnEmptyStartsAtOne(t *testing.T) {
	repo := NewLeadRepository(nil, NoLatency())

	created, err := repo.Create(context.Background(), entity.Lead{Name: "First", Email: "first@x.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
}

// TestLeadRepositoryIDsNeverReused - apagar o maior Id não libera o número
func TestLeadRepositoryIDsNeverReused(t *testing.T) {
	ctx := context.Background()
	repo := newTestLeadRepo()

	require.NoError(t, repo.Delete(ctx, 3))

	created, err := repo.Create(ctx, entity.Lead{Name: "After Delete", Email: "after@x.com"})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)
}

func TestLeadRepositoryCreateValidates(t *testing.T) {
	repo := newTestLeadRepo()

	_, err := repo.Create(context.Background(), entity.Lead{Name: "", Email: "bad"})
	assert.True(t, entity.IsValidationError(err))
	assert.Equal(t, 3, repo.Len())
}

// TestLeadRepositoryUpdateKeepsID - patch não troca o Id e os outros campos ficam
func TestLeadRepositoryUpdateKeepsID(t *testing.T) {
	ctx := context.Background()
	repo := newTestLeadRepo()

	stage := entity.StageProposal
	updated, err := repo.Update(ctx, 1, entity.LeadPatch{Stage: &stage})
	require.NoError(t, err)

	assert.Equal(t, 1, updated.ID)
	assert.Equal(t, entity.StageProposal, updated.Stage)
	assert.Equal(t, "Acme Corp", updated.Company)
	assert.Equal(t, 15000.0, updated.DealValue)
}

func TestLeadRepositoryUpdateRejectsInvalidMerge(t *testing.T) {
	ctx := context.Background()
	repo := newTestLeadRepo()

	stage := entity.Stage("Negotiation")
	_, err := repo.Update(ctx, 1, entity.LeadPatch{Stage: &stage})
	assert.True(t, entity.IsValidationError(err))

	lead, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StageQualified, lead.Stage)
}

func TestLeadRepositoryUpdateNotFound(t *testing.T) {
	name := "x"
	_, err := newTestLeadRepo().Update(context.Background(), 42, entity.LeadPatch{Name: &name})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestLeadRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestLeadRepo()

	require.NoError(t, repo.Delete(ctx, 2))

	_, err := repo.GetByID(ctx, 2)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 2), entity.ErrNotFound)
	assert.Equal(t, 2, repo.Len())
}

func TestLeadRepositoryRestore(t *testing.T) {
	ctx := context.Background()
	repo := newTestLeadRepo()

	lead, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, 2))
	require.NoError(t, repo.Restore(ctx, lead))

	leads, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, []int{leads[0].ID, leads[1].ID, leads[2].ID})

	assert.Error(t, repo.Restore(ctx, lead), "Id já existe")
}

// TestLeadRepositoryLatencyCancel - cancelar durante a espera impede a escrita
func TestLeadRepositoryLatencyCancel(t *testing.T) {
	repo := NewLeadRepository(seedLeads(), NewLatency(map[Op]time.Duration{OpLeadDelete: time.Second}, 1))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := repo.Delete(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 3, repo.Len())
}

func TestLeadRepositoryConcurrentCreates(t *testing.T) {
	repo := newTestLeadRepo()

	var wg sync.WaitGroup
	ids := make(chan int, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l, err := repo.Create(context.Background(), entity.Lead{Name: "Concurrent", Email: "c@x.com"})
			if err == nil {
				ids <- l.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		assert.False(t, seen[id], "id %d repetido", id)
		seen[id] = true
	}
	assert.Len(t, seen, 20)
}
