package negotiations

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"freight-exchange/freight-exchange-backend/internal/loads"
	"freight-exchange/freight-exchange-backend/internal/recommendations"
)

type Service interface {
	CreateNegotiation(ctx context.Context, recommendationID uuid.UUID, buyer, seller Agent) (*Negotiation, error)
	GetNegotiation(ctx context.Context, id uuid.UUID) (*Negotiation, error)
	ListNegotiations(ctx context.Context) ([]Negotiation, error)
	StartNegotiation(ctx context.Context, id uuid.UUID) (*Negotiation, error)
}

type negotiationService struct {
	repo     Repository
	recRepo  recommendations.Repository
	loadRepo loads.Repository
	logger   *zap.Logger
}

func NewService(repo Repository, recRepo recommendations.Repository, loadRepo loads.Repository, logger *zap.Logger) Service {
	return &negotiationService{
		repo:     repo,
		recRepo:  recRepo,
		loadRepo: loadRepo,
		logger:   logger,
	}
}

// CreateNegotiation opens a bargaining session over an accepted recommendation and
// moves the underlying load into the negotiating state.
func (s *negotiationService) CreateNegotiation(ctx context.Context, recommendationID uuid.UUID, buyer, seller Agent) (*Negotiation, error) {
	rec, err := s.recRepo.GetRecommendationByID(ctx, recommendationID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("recommendation not found")
	}

	negotiation := &Negotiation{
		ID:               uuid.New(),
		RecommendationID: recommendationID,
		BuyerAgent:       buyer,
		SellerAgent:      seller,
		Offers:           []Offer{},
		Status:           StatusActive,
		CurrentRound:     0,
		CreatedAt:        time.Now(),
	}

	if err := s.repo.CreateNegotiation(ctx, negotiation); err != nil {
		return nil, err
	}

	load, err := s.loadRepo.GetLoadByID(ctx, rec.LoadID)
	if err != nil {
		return nil, err
	}
	if load != nil {
		load.Status = loads.StatusNegotiating
		load.NegotiationID = &negotiation.ID
		if err := s.loadRepo.UpdateLoad(ctx, load); err != nil {
			return nil, err
		}
	}

	return negotiation, nil
}

func (s *negotiationService) GetNegotiation(ctx context.Context, id uuid.UUID) (*Negotiation, error) {
	return s.repo.GetNegotiationByID(ctx, id)
}

func (s *negotiationService) ListNegotiations(ctx context.Context) ([]Negotiation, error) {
	return s.repo.ListNegotiations(ctx)
}

// StartNegotiation runs the bargaining simulation for an active negotiation. The buyer
// opens at its floor and the seller counters at its ceiling. The finalized price is the
// rounded average of the last two offers, a smoothing step over the converged offer's
// own price. Status is derived from the offer history rather than assumed converged, so
// a run that exhausts the round cap stays active.
func (s *negotiationService) StartNegotiation(ctx context.Context, id uuid.UUID) (*Negotiation, error) {
	negotiation, err := s.repo.GetNegotiationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if negotiation == nil {
		return nil, fmt.Errorf("negotiation not found")
	}
	if negotiation.Status != StatusActive {
		return nil, fmt.Errorf("negotiation already %s", negotiation.Status)
	}
	if len(negotiation.Offers) > 0 {
		return nil, fmt.Errorf("negotiation already has offers")
	}

	offers := SimulateNegotiation(
		negotiation.BuyerAgent,
		negotiation.SellerAgent,
		negotiation.BuyerAgent.MinPrice,
		negotiation.SellerAgent.MaxPrice,
	)

	negotiation.Offers = offers
	negotiation.CurrentRound = offers[len(offers)-1].Round
	negotiation.Status = StatusOf(negotiation)

	if negotiation.Status == StatusConverged {
		last := offers[len(offers)-1]
		prev := last
		if len(offers) > 1 {
			prev = offers[len(offers)-2]
		}
		finalized := int(math.Round(float64(prev.Price+last.Price) / 2))
		negotiation.FinalizedPrice = &finalized
	}

	if err := s.repo.AppendOffers(ctx, negotiation.ID, offers); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateNegotiation(ctx, negotiation); err != nil {
		return nil, err
	}

	s.logger.Info("negotiation run complete",
		zap.String("negotiation_id", negotiation.ID.String()),
		zap.String("status", string(negotiation.Status)),
		zap.Int("rounds", negotiation.CurrentRound),
		zap.Int("offers", len(offers)))

	if negotiation.Status == StatusConverged {
		if err := s.approveLoad(ctx, negotiation); err != nil {
			return nil, err
		}
	}

	return negotiation, nil
}

func (s *negotiationService) approveLoad(ctx context.Context, negotiation *Negotiation) error {
	rec, err := s.recRepo.GetRecommendationByID(ctx, negotiation.RecommendationID)
	if err != nil || rec == nil {
		return err
	}
	load, err := s.loadRepo.GetLoadByID(ctx, rec.LoadID)
	if err != nil || load == nil {
		return err
	}

	load.Status = loads.StatusApproved
	load.FinalizedPrice = negotiation.FinalizedPrice
	return s.loadRepo.UpdateLoad(ctx, load)
}
