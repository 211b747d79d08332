package recommendations

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freight-exchange/freight-exchange-backend/internal/loads"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateRecommendation(ctx context.Context, rec *Recommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRepository) GetRecommendationByID(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Recommendation), args.Error(1)
}

func (m *MockRepository) ListRecommendations(ctx context.Context, loadID *uuid.UUID) ([]Recommendation, error) {
	args := m.Called(ctx, loadID)
	return args.Get(0).([]Recommendation), args.Error(1)
}

func (m *MockRepository) UpdateRecommendation(ctx context.Context, rec *Recommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

type MockLoadRepository struct {
	mock.Mock
}

func (m *MockLoadRepository) CreateLoad(ctx context.Context, load *loads.Load) error {
	args := m.Called(ctx, load)
	return args.Error(0)
}

func (m *MockLoadRepository) GetLoadByID(ctx context.Context, id uuid.UUID) (*loads.Load, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loads.Load), args.Error(1)
}

func (m *MockLoadRepository) ListLoads(ctx context.Context, status *loads.LoadStatus, ownerID *uuid.UUID) ([]loads.Load, error) {
	args := m.Called(ctx, status, ownerID)
	return args.Get(0).([]loads.Load), args.Error(1)
}

func (m *MockLoadRepository) UpdateLoad(ctx context.Context, load *loads.Load) error {
	args := m.Called(ctx, load)
	return args.Error(0)
}

func (m *MockLoadRepository) DeleteLoad(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestAcceptLinksLoad(t *testing.T) {
	repo := new(MockRepository)
	loadRepo := new(MockLoadRepository)
	service := NewService(repo, loadRepo, zap.NewNop())

	ctx := context.Background()
	fleetID := uuid.New()
	load := &loads.Load{ID: uuid.New(), Status: loads.StatusListed}
	rec := &Recommendation{ID: uuid.New(), LoadID: load.ID, FleetID: &fleetID, Status: StatusPending}

	repo.On("GetRecommendationByID", ctx, rec.ID).Return(rec, nil)
	repo.On("UpdateRecommendation", ctx, rec).Return(nil)
	loadRepo.On("GetLoadByID", ctx, load.ID).Return(load, nil)
	loadRepo.On("UpdateLoad", ctx, load).Return(nil)

	accepted, err := service.Accept(ctx, rec.ID)

	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, accepted.Status)
	assert.Equal(t, loads.StatusMatched, load.Status)
	assert.Equal(t, &rec.ID, load.RecommendationID)
	assert.Equal(t, &fleetID, load.MatchedFleetID)
}

func TestAcceptRejectsNonPending(t *testing.T) {
	repo := new(MockRepository)
	loadRepo := new(MockLoadRepository)
	service := NewService(repo, loadRepo, zap.NewNop())

	ctx := context.Background()
	rec := &Recommendation{ID: uuid.New(), LoadID: uuid.New(), Status: StatusRejected}

	repo.On("GetRecommendationByID", ctx, rec.ID).Return(rec, nil)

	_, err := service.Accept(ctx, rec.ID)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "UpdateRecommendation", ctx, mock.Anything)
}

func TestRejectRecommendation(t *testing.T) {
	repo := new(MockRepository)
	loadRepo := new(MockLoadRepository)
	service := NewService(repo, loadRepo, zap.NewNop())

	ctx := context.Background()
	rec := &Recommendation{ID: uuid.New(), LoadID: uuid.New(), Status: StatusPending}

	repo.On("GetRecommendationByID", ctx, rec.ID).Return(rec, nil)
	repo.On("UpdateRecommendation", ctx, rec).Return(nil)

	rejected, err := service.Reject(ctx, rec.ID)

	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
	loadRepo.AssertNotCalled(t, "UpdateLoad", ctx, mock.Anything)
}
