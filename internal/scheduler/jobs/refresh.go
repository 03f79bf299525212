package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/cyberdash/internal/analysis"
	"github.com/wonny/cyberdash/pkg/logger"
)

// RefreshJob re-scores the whole watchlist after market close and refreshes
// the stored records and the CSV export.
type RefreshJob struct {
	service  *analysis.Service
	schedule string
	logger   *logger.Logger
}

// NewRefreshJob creates the refresh job.
func NewRefreshJob(service *analysis.Service, schedule string, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		service:  service,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name.
func (j *RefreshJob) Name() string {
	return "score_refresh"
}

// Schedule returns the cron schedule.
func (j *RefreshJob) Schedule() string {
	return j.schedule
}

// Run executes the refresh.
func (j *RefreshJob) Run(ctx context.Context) error {
	records, err := j.service.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh scores: %w", err)
	}

	j.logger.WithField("count", len(records)).Info("Scheduled refresh finished")
	return nil
}
