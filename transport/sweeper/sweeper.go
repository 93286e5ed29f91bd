package sweeper

import (
	"context"
	"time"

	"venuebook/config"
	bookingService "venuebook/internal/domains/booking/service"

	"github.com/rs/zerolog/log"
)

const defaultInterval = time.Minute

// Sweeper releases unpaid bookings on a fixed interval until its context is cancelled.
type Sweeper struct {
	service  bookingService.Booking
	interval time.Duration
}

func New(cfg *config.Config, service bookingService.Booking) *Sweeper {
	interval := time.Duration(cfg.Booking.SweepIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = defaultInterval
	}

	return &Sweeper{
		service:  service,
		interval: interval,
	}
}

func (s *Sweeper) Interval() time.Duration {
	return s.interval
}

func (s *Sweeper) Run(ctx context.Context) {
	log.Info().Dur("interval", s.interval).Msg("Starting booking sweeper.")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Booking sweeper stopped.")

			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one expiry pass. Failures are logged and retried on the next tick.
func (s *Sweeper) Sweep(ctx context.Context) int {
	count, err := s.service.ExpireStale(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to sweep stale bookings")

		return 0
	}

	if count > 0 {
		log.Info().Int("count", count).Msg("released unpaid bookings")
	}

	return count
}
