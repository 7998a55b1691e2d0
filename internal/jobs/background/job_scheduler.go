package background

import (
	"context"
	"log"
	"time"

	"mybnb/internal/metrics"
	"mybnb/internal/repositories"

	"github.com/go-co-op/gocron/v2"
)

const (
	statsWarmInterval = 15 * time.Minute
	companyPageSize   = 100
)

// JobScheduler runs the periodic stats cache warming job so dashboard loads
// for the current month are served from cache instead of recomputing.
type JobScheduler struct {
	scheduler   gocron.Scheduler
	metricsSvc  metrics.Provider
	companyRepo repositories.CompanyRepository
}

// NewJobScheduler creates the scheduler with its jobs registered but not yet
// running.
func NewJobScheduler(metricsSvc metrics.Provider, companyRepo repositories.CompanyRepository) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		metricsSvc:  metricsSvc,
		companyRepo: companyRepo,
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler.
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler.
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(statsWarmInterval),
		gocron.NewTask(js.warmStatsCaches, context.Background()),
		gocron.WithName("stats-cache-warming"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stats warming job: %v", err)
	}
}

// warmStatsCaches recomputes the current-month period stats for every
// company. The refresh bypasses the cache read so the entry is rewritten even
// when a live one exists; otherwise a run landing inside the TTL would renew
// nothing. Per-company failures are logged and skipped.
func (js *JobScheduler) warmStatsCaches(ctx context.Context) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	offset := 0
	for {
		companies, err := js.companyRepo.List(ctx, companyPageSize, offset)
		if err != nil {
			log.Printf("Stats warming: failed to list companies: %v", err)
			return
		}
		if len(companies) == 0 {
			return
		}

		for _, company := range companies {
			if _, err := js.metricsSvc.RefreshPeriodStats(ctx, company.UID, start, end); err != nil {
				log.Printf("Stats warming: company %s: %v", company.UID, err)
			}
		}

		offset += len(companies)
	}
}
