// Package dashboard builds the landing page summary.
package dashboard

import (
	"context"

	"github.com/Domenick1991/airadmin/internal/domain"
	"github.com/Domenick1991/airadmin/internal/repository"
	"go.uber.org/zap"
)

const RecentLimit = 5

type DashboardUseCase interface {
	Summary(ctx context.Context) (domain.Dashboard, error)
}

type Counter interface {
	CountRows(ctx context.Context, table string) (int, error)
}

type Cache interface {
	GetDashboard(ctx context.Context) (*domain.Dashboard, error)
	SetDashboard(ctx context.Context, d domain.Dashboard) error
}

type DashboardService struct {
	counter  Counter
	bookings repository.BookingRepository
	cache    Cache
	log      *zap.Logger
}

type Option func(*DashboardService)

func WithCache(c Cache) Option {
	return func(s *DashboardService) {
		s.cache = c
	}
}

func NewDashboardService(counter Counter, bookings repository.BookingRepository, log *zap.Logger, opts ...Option) *DashboardService {
	s := &DashboardService{counter: counter, bookings: bookings, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary returns row counts and the most recent bookings. A cached copy is
// served when present; cache errors fall through to the store.
func (s *DashboardService) Summary(ctx context.Context) (domain.Dashboard, error) {
	if s.cache != nil {
		cached, err := s.cache.GetDashboard(ctx)
		if err != nil {
			s.log.Warn("read dashboard cache", zap.Error(err))
		} else if cached != nil {
			return *cached, nil
		}
	}

	var (
		d   domain.Dashboard
		err error
	)
	if d.Flights, err = s.counter.CountRows(ctx, repository.TableFlights); err != nil {
		return domain.Dashboard{}, err
	}
	if d.Users, err = s.counter.CountRows(ctx, repository.TableUsers); err != nil {
		return domain.Dashboard{}, err
	}
	if d.Bookings, err = s.counter.CountRows(ctx, repository.TableBookings); err != nil {
		return domain.Dashboard{}, err
	}
	if d.RecentBookings, err = s.bookings.Recent(ctx, RecentLimit); err != nil {
		return domain.Dashboard{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetDashboard(ctx, d); err != nil {
			s.log.Warn("write dashboard cache", zap.Error(err))
		}
	}
	return d, nil
}

var _ DashboardUseCase = (*DashboardService)(nil)
