package kpis

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler refreshes KPI snapshots on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	service Service
	spec    string
	logger  *zap.Logger
	mu      sync.Mutex
	running bool
}

func NewScheduler(service Service, spec string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		service: service,
		spec:    spec,
		logger:  logger,
	}
}

// Start registers the refresh job and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("kpi scheduler already running")
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		if _, err := s.service.Refresh(ctx); err != nil {
			s.logger.Error("scheduled kpi refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid kpi refresh schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("kpi scheduler started", zap.String("schedule", s.spec))
	return nil
}

// Stop halts the cron loop, waiting for a running refresh to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("kpi scheduler stopped")
}
