package negotiations

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"freight-exchange/freight-exchange-backend/internal/loads"
	"freight-exchange/freight-exchange-backend/internal/recommendations"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateNegotiation(ctx context.Context, negotiation *Negotiation) error {
	args := m.Called(ctx, negotiation)
	return args.Error(0)
}

func (m *MockRepository) GetNegotiationByID(ctx context.Context, id uuid.UUID) (*Negotiation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Negotiation), args.Error(1)
}

func (m *MockRepository) ListNegotiations(ctx context.Context) ([]Negotiation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Negotiation), args.Error(1)
}

func (m *MockRepository) UpdateNegotiation(ctx context.Context, negotiation *Negotiation) error {
	args := m.Called(ctx, negotiation)
	return args.Error(0)
}

func (m *MockRepository) AppendOffers(ctx context.Context, negotiationID uuid.UUID, offers []Offer) error {
	args := m.Called(ctx, negotiationID, offers)
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

func TestCreateNegotiationMovesLoadToNegotiating(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRecRepo := new(MockRecommendationRepository)
	mockLoadRepo := new(MockLoadRepository)

	service := NewService(mockRepo, mockRecRepo, mockLoadRepo, zap.NewNop())

	ctx := context.Background()
	recID := uuid.New()
	loadID := uuid.New()
	rec := &recommendations.Recommendation{ID: recID, LoadID: loadID}
	load := &loads.Load{ID: loadID, Status: loads.StatusMatched}

	mockRecRepo.On("GetRecommendationByID", ctx, recID).Return(rec, nil)
	mockRepo.On("CreateNegotiation", ctx, mock.AnythingOfType("*negotiations.Negotiation")).Return(nil)
	mockLoadRepo.On("GetLoadByID", ctx, loadID).Return(load, nil)
	mockLoadRepo.On("UpdateLoad", ctx, mock.AnythingOfType("*loads.Load")).Return(nil)

	negotiation, err := service.CreateNegotiation(ctx, recID,
		Agent{ID: "buyer_agent", MinPrice: 36000, MaxPrice: 49500},
		Agent{ID: "seller_agent", MinPrice: 40500, MaxPrice: 54000})

	require.NoError(t, err)
	assert.Equal(t, StatusActive, negotiation.Status)
	assert.Equal(t, 0, negotiation.CurrentRound)
	assert.Equal(t, loads.StatusNegotiating, load.Status)
	assert.Equal(t, &negotiation.ID, load.NegotiationID)

	mockRepo.AssertExpectations(t)
	mockLoadRepo.AssertExpectations(t)
}

func TestStartNegotiationConvergesAndApprovesLoad(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRecRepo := new(MockRecommendationRepository)
	mockLoadRepo := new(MockLoadRepository)

	service := NewService(mockRepo, mockRecRepo, mockLoadRepo, zap.NewNop())

	ctx := context.Background()
	negID := uuid.New()
	recID := uuid.New()
	loadID := uuid.New()

	negotiation := &Negotiation{
		ID:               negID,
		RecommendationID: recID,
		BuyerAgent:       Agent{ID: "buyer_agent", Name: "Load Owner AI", MinPrice: 36000, MaxPrice: 49500, ConcessionRate: 2},
		SellerAgent:      Agent{ID: "seller_agent", Name: "Fleet AI", MinPrice: 40500, MaxPrice: 54000, ConcessionRate: 2},
		Status:           StatusActive,
	}
	rec := &recommendations.Recommendation{ID: recID, LoadID: loadID}
	load := &loads.Load{ID: loadID, Status: loads.StatusNegotiating}

	mockRepo.On("GetNegotiationByID", ctx, negID).Return(negotiation, nil)
	mockRepo.On("AppendOffers", ctx, negID, mock.AnythingOfType("[]negotiations.Offer")).Return(nil)
	mockRepo.On("UpdateNegotiation", ctx, negotiation).Return(nil)
	mockRecRepo.On("GetRecommendationByID", ctx, recID).Return(rec, nil)
	mockLoadRepo.On("GetLoadByID", ctx, loadID).Return(load, nil)
	mockLoadRepo.On("UpdateLoad", ctx, load).Return(nil)

	result, err := service.StartNegotiation(ctx, negID)

	require.NoError(t, err)
	assert.Equal(t, StatusConverged, result.Status)
	require.NotNil(t, result.FinalizedPrice)

	last := result.Offers[len(result.Offers)-1]
	prev := result.Offers[len(result.Offers)-2]
	expected := int(math.Round(float64(prev.Price+last.Price) / 2))
	assert.Equal(t, expected, *result.FinalizedPrice)
	assert.Equal(t, last.Round, result.CurrentRound)

	assert.Equal(t, loads.StatusApproved, load.Status)
	assert.Equal(t, result.FinalizedPrice, load.FinalizedPrice)

	mockRepo.AssertExpectations(t)
	mockRecRepo.AssertExpectations(t)
	mockLoadRepo.AssertExpectations(t)
}

func TestStartNegotiationStaysActiveWhenBoundsNeverMeet(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRecRepo := new(MockRecommendationRepository)
	mockLoadRepo := new(MockLoadRepository)

	service := NewService(mockRepo, mockRecRepo, mockLoadRepo, zap.NewNop())

	ctx := context.Background()
	negID := uuid.New()

	negotiation := &Negotiation{
		ID:               negID,
		RecommendationID: uuid.New(),
		BuyerAgent:       Agent{ID: "buyer_agent", MinPrice: 20000, MaxPrice: 40000, ConcessionRate: 2},
		SellerAgent:      Agent{ID: "seller_agent", MinPrice: 45000, MaxPrice: 60000, ConcessionRate: 2},
		Status:           StatusActive,
	}

	mockRepo.On("GetNegotiationByID", ctx, negID).Return(negotiation, nil)
	mockRepo.On("AppendOffers", ctx, negID, mock.AnythingOfType("[]negotiations.Offer")).Return(nil)
	mockRepo.On("UpdateNegotiation", ctx, negotiation).Return(nil)

	result, err := service.StartNegotiation(ctx, negID)

	require.NoError(t, err)
	assert.Equal(t, StatusActive, result.Status)
	assert.Nil(t, result.FinalizedPrice)
	assert.Equal(t, 100, result.CurrentRound)

	mockRepo.AssertExpectations(t)
}

func TestStartNegotiationRejectsTerminalNegotiation(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockRecommendationRepository), new(MockLoadRepository), zap.NewNop())

	ctx := context.Background()
	negID := uuid.New()
	mockRepo.On("GetNegotiationByID", ctx, negID).Return(&Negotiation{ID: negID, Status: StatusConverged}, nil)

	_, err := service.StartNegotiation(ctx, negID)
	assert.Error(t, err)
}
