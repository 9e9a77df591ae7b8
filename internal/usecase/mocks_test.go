package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-pipeline/internal/entity"
	"github.com/xavierca1/ligue-pipeline/internal/usecase"
)

var testNow = time.Date(2024, 1, 23, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// ============ MOCKS ============

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) GetAll(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id int) (entity.Lead, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Create(ctx context.Context, lead entity.Lead) (entity.Lead, error) {
	args := m.Called(ctx, lead)
	return args.Get(0).(entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, id int, patch entity.LeadPatch) (entity.Lead, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLeadRepository) Restore(ctx context.Context, lead entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) GetAll(ctx context.Context) ([]entity.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Record), args.Error(1)
}

func (m *MockActivityRepository) GetByID(ctx context.Context, id int) (entity.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.Record), args.Error(1)
}

func (m *MockActivityRepository) GetByLeadID(ctx context.Context, leadID int) ([]entity.Record, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Record), args.Error(1)
}

func (m *MockActivityRepository) Create(ctx context.Context, activity entity.Activity) (entity.Activity, error) {
	args := m.Called(ctx, activity)
	return args.Get(0).(entity.Activity), args.Error(1)
}

func (m *MockActivityRepository) CreateTask(ctx context.Context, task entity.Task) (entity.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(entity.Task), args.Error(1)
}

func (m *MockActivityRepository) Update(ctx context.Context, id int, patch entity.RecordPatch) (entity.Record, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.Record), args.Error(1)
}

func (m *MockActivityRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockActivityRepository) CompleteTask(ctx context.Context, id int) (entity.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.Task), args.Error(1)
}

func (m *MockActivityRepository) GetAllTasks(ctx context.Context) ([]entity.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Task), args.Error(1)
}

func (m *MockActivityRepository) DeleteByLeadID(ctx context.Context, leadID int) ([]entity.Record, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Record), args.Error(1)
}

func (m *MockActivityRepository) Restore(ctx context.Context, records ...entity.Record) error {
	return m.Called(ctx, records).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEvent(ctx context.Context, event entity.PipelineEvent) error {
	return m.Called(ctx, event).Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) LeadCreated()                          { m.Called() }
func (m *MockMetrics) StageChanged(from, to entity.Stage)    { m.Called(from, to) }
func (m *MockMetrics) ActivityLogged(kind entity.RecordType) { m.Called(kind) }
func (m *MockMetrics) TaskCompleted()                        { m.Called() }

type MockDigestSender struct {
	mock.Mock
}

func (m *MockDigestSender) SendTaskDigest(ctx context.Context, to string, digest usecase.TaskDigest) error {
	return m.Called(ctx, to, digest).Error(0)
}

var (
	_ entity.LeadRepositoryInterface     = (*MockLeadRepository)(nil)
	_ entity.ActivityRepositoryInterface = (*MockActivityRepository)(nil)
	_ usecase.EventPublisher             = (*MockPublisher)(nil)
	_ usecase.PipelineMetrics            = (*MockMetrics)(nil)
	_ usecase.DigestSender               = (*MockDigestSender)(nil)
)
