package ai

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freight-exchange/freight-exchange-backend/internal/fleet"
	"freight-exchange/freight-exchange-backend/internal/loads"
	"freight-exchange/freight-exchange-backend/internal/matching"
	"freight-exchange/freight-exchange-backend/internal/recommendations"
	"freight-exchange/freight-exchange-backend/pkg/distance"
)

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

type MockTruckRepository struct {
	mock.Mock
}

func (m *MockTruckRepository) CreateTruck(ctx context.Context, truck *fleet.Truck) error {
	args := m.Called(ctx, truck)
	return args.Error(0)
}

func (m *MockTruckRepository) GetTruckByID(ctx context.Context, id uuid.UUID) (*fleet.Truck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Truck), args.Error(1)
}

func (m *MockTruckRepository) ListTrucks(ctx context.Context, fleetID *uuid.UUID) ([]fleet.Truck, error) {
	args := m.Called(ctx, fleetID)
	return args.Get(0).([]fleet.Truck), args.Error(1)
}

func (m *MockTruckRepository) UpdateTruck(ctx context.Context, truck *fleet.Truck) error {
	args := m.Called(ctx, truck)
	return args.Error(0)
}

func (m *MockTruckRepository) DeleteTruck(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRecommendationRepository struct {
	mock.Mock
}

func (m *MockRecommendationRepository) CreateRecommendation(ctx context.Context, rec *recommendations.Recommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecommendationRepository) GetRecommendationByID(ctx context.Context, id uuid.UUID) (*recommendations.Recommendation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recommendations.Recommendation), args.Error(1)
}

func (m *MockRecommendationRepository) ListRecommendations(ctx context.Context, loadID *uuid.UUID) ([]recommendations.Recommendation, error) {
	args := m.Called(ctx, loadID)
	return args.Get(0).([]recommendations.Recommendation), args.Error(1)
}

func (m *MockRecommendationRepository) UpdateRecommendation(ctx context.Context, rec *recommendations.Recommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func newTestService(loadRepo *MockLoadRepository, truckRepo *MockTruckRepository, recRepo *MockRecommendationRepository) Service {
	est := distance.NewTableEstimator()
	synth := matching.NewSynthesizer(est, matching.NewRuleChecker(), nil)
	return NewService(loadRepo, truckRepo, recRepo, synth, est, zap.NewNop())
}

func TestDiscoverFleetsMatchesLoad(t *testing.T) {
	loadRepo := new(MockLoadRepository)
	truckRepo := new(MockTruckRepository)
	recRepo := new(MockRecommendationRepository)
	service := newTestService(loadRepo, truckRepo, recRepo)

	ctx := context.Background()
	loadID := uuid.New()
	load := &loads.Load{
		ID:          loadID,
		Origin:      "Pune",
		Destination: "Bangalore",
		LoadType:    "Steel Coils",
		WeightKg:    12000,
		Status:      loads.StatusListed,
	}
	trucks := []fleet.Truck{
		{ID: uuid.New(), CapacityKg: 16000, CurrentLocation: "Satara", IdleHours: 4},
		{ID: uuid.New(), CapacityKg: 16000, CurrentLocation: "Mumbai", IdleHours: 10},
	}

	loadRepo.On("GetLoadByID", ctx, loadID).Return(load, nil)
	truckRepo.On("ListTrucks", ctx, (*uuid.UUID)(nil)).Return(trucks, nil)
	recRepo.On("CreateRecommendation", ctx, mock.AnythingOfType("*recommendations.Recommendation")).Return(nil)
	loadRepo.On("UpdateLoad", ctx, load).Return(nil)

	recs, err := service.DiscoverFleets(ctx, loadID)

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, loads.StatusMatched, load.Status)
	assert.Equal(t, &recs[0].ID, load.RecommendationID)
	recRepo.AssertNumberOfCalls(t, "CreateRecommendation", 2)
}

func TestDiscoverFleetsNoFeasibleMatch(t *testing.T) {
	loadRepo := new(MockLoadRepository)
	truckRepo := new(MockTruckRepository)
	recRepo := new(MockRecommendationRepository)
	service := newTestService(loadRepo, truckRepo, recRepo)

	ctx := context.Background()
	loadID := uuid.New()
	load := &loads.Load{
		ID:          loadID,
		Origin:      "Pune",
		Destination: "Bangalore",
		LoadType:    "Steel Coils",
		WeightKg:    12000,
		Status:      loads.StatusListed,
	}

	// Bangalore is 840 km from the Pune pickup, far outside the detour band.
	trucks := []fleet.Truck{
		{ID: uuid.New(), CapacityKg: 16000, CurrentLocation: "Bangalore", IdleHours: 4},
	}

	loadRepo.On("GetLoadByID", ctx, loadID).Return(load, nil)
	truckRepo.On("ListTrucks", ctx, (*uuid.UUID)(nil)).Return(trucks, nil)

	recs, err := service.DiscoverFleets(ctx, loadID)

	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, loads.StatusListed, load.Status)
	loadRepo.AssertNotCalled(t, "UpdateLoad", ctx, load)
}

func TestPredictPriceBand(t *testing.T) {
	service := newTestService(new(MockLoadRepository), new(MockTruckRepository), new(MockRecommendationRepository))

	prediction, err := service.PredictPrice(context.Background(), "Pune", "Bangalore")

	require.NoError(t, err)
	assert.Equal(t, 42000, prediction.Min)       // 840 × 50
	assert.Equal(t, 50400, prediction.Max)       // 840 × 60
	assert.Equal(t, 46200, prediction.Predicted) // midpoint
}

func TestPredictPriceUnknownCorridorUsesFallback(t *testing.T) {
	service := newTestService(new(MockLoadRepository), new(MockTruckRepository), new(MockRecommendationRepository))

	prediction, err := service.PredictPrice(context.Background(), "Kochi", "Shillong")

	require.NoError(t, err)
	assert.Equal(t, 25000, prediction.Min) // 500 km fallback × 50
	assert.Equal(t, 30000, prediction.Max)
}
