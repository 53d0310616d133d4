package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lookacat/RoadsurferCodingChallenge/internal/stations"
)

const refreshJobTimeout = time.Minute

// RegisterRefreshJob schedules the periodic station snapshot refresh. The
// upstream is slow and read-only, so the snapshot is kept warm in the
// background instead of being fetched on every calendar or search request.
func RegisterRefreshJob(store *stations.Store, cronExpr string) error {
	if store == nil {
		return fmt.Errorf("refresh job requires a station store")
	}

	jobName := "station_snapshot_refresh"
	jobLogger := log.With().
		Str("component", "station_refresh_job").
		Str("job_name", jobName).
		Str("cron", cronExpr).
		Logger()

	_, err := AddJob(jobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshJobTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		stationsList, err := store.Refresh(ctx)
		if err != nil {
			jobLogger.Error().Err(err).Msg("Station snapshot refresh failed")
			return
		}
		jobLogger.Debug().Int("stations", len(stationsList)).Msg("Station snapshot refreshed")
	})
	if err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}
	return nil
}
