package fleet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service interface {
	RegisterTruck(ctx context.Context, truck *Truck) (*Truck, error)
	GetTruck(ctx context.Context, id uuid.UUID) (*Truck, error)
	ListTrucks(ctx context.Context, fleetID *uuid.UUID) ([]Truck, error)
	UpdateTruck(ctx context.Context, truck *Truck) error
	UpdateLocation(ctx context.Context, id uuid.UUID, location string, idleHours float64) (*Truck, error)
	DeleteTruck(ctx context.Context, id uuid.UUID) error
}

type fleetService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &fleetService{repo: repo}
}

func (s *fleetService) RegisterTruck(ctx context.Context, truck *Truck) (*Truck, error) {
	if truck.ID == uuid.Nil {
		truck.ID = uuid.New()
	}
	truck.CreatedAt = time.Now()
	if err := s.repo.CreateTruck(ctx, truck); err != nil {
		return nil, err
	}
	return truck, nil
}

func (s *fleetService) GetTruck(ctx context.Context, id uuid.UUID) (*Truck, error) {
	return s.repo.GetTruckByID(ctx, id)
}

func (s *fleetService) ListTrucks(ctx context.Context, fleetID *uuid.UUID) ([]Truck, error) {
	return s.repo.ListTrucks(ctx, fleetID)
}

func (s *fleetService) UpdateTruck(ctx context.Context, truck *Truck) error {
	return s.repo.UpdateTruck(ctx, truck)
}

func (s *fleetService) UpdateLocation(ctx context.Context, id uuid.UUID, location string, idleHours float64) (*Truck, error) {
	truck, err := s.repo.GetTruckByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if truck == nil {
		return nil, fmt.Errorf("truck not found")
	}

	truck.CurrentLocation = location
	truck.IdleHours = idleHours
	if err := s.repo.UpdateTruck(ctx, truck); err != nil {
		return nil, err
	}
	return truck, nil
}

func (s *fleetService) DeleteTruck(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTruck(ctx, id)
}
