// Package scheduler triggers anonymity recalculation on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"zenlit/config"
	"zenlit/internal/delivery"
	deliverycontext "zenlit/internal/delivery/context"
	domainerrors "zenlit/internal/domain/errors"
	"zenlit/internal/errors"
	"zenlit/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type schedulerServer struct {
	interval    time.Duration
	logger      *slog.Logger
	anonymityUC usecase.AnonymityUsecase

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// ServerParams holds dependencies for the scheduler
type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	AnonymityUC usecase.AnonymityUsecase
}

// NewServer creates the periodic recalculation delivery. It is idle when anonymity.interval is 0.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	var interval time.Duration
	if params.Cfg.Anonymity != nil {
		interval = params.Cfg.Anonymity.Interval
	}

	srv := newSchedulerServer(interval, params.Logger, params.AnonymityUC)

	params.Lc.Append(fx.Hook{
		OnStop: srv.shutdown,
	})

	return srv, nil
}

func newSchedulerServer(interval time.Duration, logger *slog.Logger, anonymityUC usecase.AnonymityUsecase) *schedulerServer {
	return &schedulerServer{
		interval:    interval,
		logger:      logger.With(slog.String("component", "scheduler")),
		anonymityUC: anonymityUC,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Serve blocks until ctx is done or the app stops, running one recalculation per tick.
func (s *schedulerServer) Serve(ctx context.Context) error {
	defer close(s.done)

	if s.interval <= 0 {
		s.logger.Info("Periodic anonymity recalculation disabled")

		return nil
	}

	s.logger.Info("Starting anonymity scheduler", slog.Duration("interval", s.interval))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one recalculation. Failures are logged; the next tick is the retry.
func (s *schedulerServer) tick(ctx context.Context) {
	requestID := uuid.NewString()
	logger := s.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithLogger(deliverycontext.WithRequestID(ctx, requestID), logger)

	result, err := s.anonymityUC.RecalculateAll(ctx)
	switch {
	case errors.Is(err, domainerrors.ErrRecalculationInProgress):
		logger.Info("Skipping scheduled recalculation, another run is in progress")
	case err != nil:
		logger.Error("Scheduled recalculation failed", slog.Any("error", err))
	default:
		logger.Info("Scheduled recalculation done", slog.Int("updated", result.Updated))
	}
}

// shutdown stops the ticker loop and waits for an in-flight run to observe cancellation.
func (s *schedulerServer) shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "scheduler did not stop in time")
	}
}
