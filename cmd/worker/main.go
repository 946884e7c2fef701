package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"clinicbook/config"
	"clinicbook/di"
	"clinicbook/shared/logger"
	"clinicbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

// The worker runs the two background jobs on their own tickers: appointment
// reminders and monthly report generation. Both jobs are idempotent, so
// running more than one worker instance is safe.
func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	service := di.InitializeJobService()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Int("reminder_interval_minutes", cfg.Jobs.ReminderIntervalMinutes).
		Int("report_interval_minutes", cfg.Jobs.ReportIntervalMinutes).
		Msg("Starting up worker.")

	reminderTicker := time.NewTicker(time.Duration(cfg.Jobs.ReminderIntervalMinutes) * time.Minute)
	defer reminderTicker.Stop()

	reportTicker := time.NewTicker(time.Duration(cfg.Jobs.ReportIntervalMinutes) * time.Minute)
	defer reportTicker.Stop()

	runReminders(ctx, service)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Received shutdown signal. Stopping worker.")

			return
		case <-reminderTicker.C:
			runReminders(ctx, service)
		case <-reportTicker.C:
			runReports(ctx, service)
		}
	}
}

func runReminders(ctx context.Context, service jobService) {
	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if _, err := service.SendUpcomingReminders(runCtx); err != nil {
		log.Error().Err(err).Msg("reminder run failed")
	}
}

func runReports(ctx context.Context, service jobService) {
	runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	// Zero year lets the service default to the previous month, but
	// aggregating the current month keeps reports fresh between runs.
	now := timezone.Now()
	if _, err := service.GenerateMonthlyReports(runCtx, now.Year(), now.Month()); err != nil {
		log.Error().Err(err).Msg("monthly report run failed")
	}
}

type jobService interface {
	SendUpcomingReminders(ctx context.Context) (int, error)
	GenerateMonthlyReports(ctx context.Context, year int, month time.Month) (int, error)
}
