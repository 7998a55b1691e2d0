package metrics

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"mybnb/internal/caching"
	"mybnb/internal/repositories"

	"github.com/google/uuid"
)

// statsCacheTTL bounds how stale a cached stat card can get; the background
// refresher rewrites entries on the same cadence.
const statsCacheTTL = 15 * time.Minute

// Provider is what the HTTP layer and the background warmer consume; Service
// implements it.
type Provider interface {
	PeriodStats(ctx context.Context, companyUID uuid.UUID, start, end time.Time) (*PeriodStats, error)
	RefreshPeriodStats(ctx context.Context, companyUID uuid.UUID, start, end time.Time) (*PeriodStats, error)
	MonthlySeries(ctx context.Context, companyUID uuid.UUID, start, end time.Time) ([]MonthPoint, error)
	MethodBreakdown(ctx context.Context, companyUID uuid.UUID, start, end time.Time) (*MethodBreakdown, error)
}

// Service fetches rows through the aggregation query layer and reduces them
// into reporting metrics. All reductions are all-or-nothing: a failed fetch
// fails the whole computation, never partial results.
type Service struct {
	bookingRepo repositories.BookingRepository
	expenseRepo repositories.ExpenseRepository
	cache       caching.CacheService
}

func NewService(bookingRepo repositories.BookingRepository, expenseRepo repositories.ExpenseRepository, cache caching.CacheService) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		expenseRepo: expenseRepo,
		cache:       cache,
	}
}

// PeriodStats computes the period-over-period stat cards for [start, end]
// against the immediately preceding window of identical length. Results are
// cached briefly; cache failures only log, they never fail the request.
func (s *Service) PeriodStats(ctx context.Context, companyUID uuid.UUID, start, end time.Time) (*PeriodStats, error) {
	cacheKey := caching.StatsKey(companyUID, start, end)
	if s.cache != nil {
		if cached, err := s.cache.GetString(ctx, cacheKey); err != nil {
			log.Printf("stats cache read failed for %s: %v", companyUID, err)
		} else if cached != "" {
			stats := &PeriodStats{}
			if err := json.Unmarshal([]byte(cached), stats); err == nil {
				return stats, nil
			}
		}
	}

	return s.computePeriodStats(ctx, companyUID, start, end)
}

// RefreshPeriodStats recomputes and rewrites the cached entry even while a
// live one exists. The background warmer uses it; reading through the cache
// there would renew nothing until entries had already expired.
func (s *Service) RefreshPeriodStats(ctx context.Context, companyUID uuid.UUID, start, end time.Time) (*PeriodStats, error) {
	return s.computePeriodStats(ctx, companyUID, start, end)
}

func (s *Service) computePeriodStats(ctx context.Context, companyUID uuid.UUID, start, end time.Time) (*PeriodStats, error) {
	current, err := s.fetchTotals(ctx, companyUID, start, end)
	if err != nil {
		return nil, err
	}

	historyStart, historyEnd := HistoryWindow(start, end)
	history, err := s.fetchTotals(ctx, companyUID, historyStart, historyEnd)
	if err != nil {
		return nil, err
	}

	stats := comparePeriods(current, history)

	if s.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.cache.SetString(ctx, caching.StatsKey(companyUID, start, end), string(data), statsCacheTTL); err != nil {
				log.Printf("stats cache write failed for %s: %v", companyUID, err)
			}
		}
	}

	return stats, nil
}

// MonthlySeries returns the twelve-month revenue/expense chart series for
// [start, end].
func (s *Service) MonthlySeries(ctx context.Context, companyUID uuid.UUID, start, end time.Time) ([]MonthPoint, error) {
	bookings, err := s.bookingRepo.ListByDateRange(ctx, companyUID, start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListByDateRange(ctx, companyUID, start, end)
	if err != nil {
		return nil, err
	}
	return BuildMonthlySeries(bookings, expenses), nil
}

// MethodBreakdown returns the booking-method distribution for [start, end].
func (s *Service) MethodBreakdown(ctx context.Context, companyUID uuid.UUID, start, end time.Time) (*MethodBreakdown, error) {
	bookings, err := s.bookingRepo.ListByDateRange(ctx, companyUID, start, end)
	if err != nil {
		return nil, err
	}
	return BreakdownBookings(bookings), nil
}

func (s *Service) fetchTotals(ctx context.Context, companyUID uuid.UUID, start, end time.Time) (periodTotals, error) {
	bookings, err := s.bookingRepo.ListByDateRange(ctx, companyUID, start, end)
	if err != nil {
		return periodTotals{}, err
	}
	expenses, err := s.expenseRepo.ListByDateRange(ctx, companyUID, start, end)
	if err != nil {
		return periodTotals{}, err
	}
	return totalsFrom(bookings, expenses), nil
}
