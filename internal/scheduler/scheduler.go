// Package scheduler fires the daily summary, weekly summary, and ledger
// backup at fixed wall-clock times. It polls at a coarse interval rather
// than arming precise timers; each job fires at most once per day, in the
// first poll at or after its scheduled time.
package scheduler

import (
	"context"
	"time"

	"bahtbot/internal/backup"
	"bahtbot/internal/bot"
	"bahtbot/internal/core"
	"bahtbot/internal/ledger"
	applog "bahtbot/internal/log"
)

// Pusher is the outbound push port, satisfied by the LINE client.
type Pusher interface {
	Push(ctx context.Context, to, text string) error
}

// Times holds the "HH:MM" local wall-clock times for the three jobs.
// The weekly summary only fires on Sundays.
type Times struct {
	DailySummary  string
	WeeklySummary string
	Backup        string
}

type job struct {
	name     string
	minute   int // minute of day
	weekday  time.Weekday
	anyDay   bool
	lastDate string
	run      func(ctx context.Context, now time.Time) error
}

type Scheduler struct {
	store     ledger.Store
	pusher    Pusher
	recipient string
	backupDir string
	poll      time.Duration
	logger    *applog.Logger
	now       func() time.Time
	jobs      []*job
}

func New(store ledger.Store, pusher Pusher, recipient, backupDir string, times Times, poll time.Duration, logger *applog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	s := &Scheduler{
		store:     store,
		pusher:    pusher,
		recipient: recipient,
		backupDir: backupDir,
		poll:      poll,
		logger:    logger.WithComponent(applog.ComponentScheduler),
		now:       time.Now,
	}

	daily, err := parseClock(times.DailySummary)
	if err != nil {
		return nil, err
	}
	weekly, err := parseClock(times.WeeklySummary)
	if err != nil {
		return nil, err
	}
	backupAt, err := parseClock(times.Backup)
	if err != nil {
		return nil, err
	}

	s.jobs = []*job{
		{name: "daily_summary", minute: daily, anyDay: true, run: s.runDailySummary},
		{name: "weekly_summary", minute: weekly, weekday: time.Sunday, run: s.runWeeklySummary},
		{name: "backup", minute: backupAt, anyDay: true, run: s.runBackup},
	}
	return s, nil
}

// Run polls until the context is cancelled. There is no other
// cancellation path; jobs themselves never stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("Scheduler started", "poll_interval", s.poll.String())
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx, s.now())
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	today := now.Format("2006-01-02")
	for _, j := range s.jobs {
		if !j.anyDay && now.Weekday() != j.weekday {
			continue
		}
		if minuteOfDay(now) < j.minute || j.lastDate == today {
			continue
		}
		// Mark before running: a failing job is logged and skipped until
		// tomorrow, never retried in a tight loop.
		j.lastDate = today
		if err := j.run(ctx, now); err != nil {
			s.logger.ErrorContext(ctx, "Scheduled job failed",
				applog.FieldJob, j.name,
				applog.FieldError, err)
			continue
		}
		s.logger.InfoContext(ctx, "Scheduled job completed", applog.FieldJob, j.name)
	}
}

func (s *Scheduler) runDailySummary(ctx context.Context, now time.Time) error {
	rows, err := s.store.ReadAll(ctx)
	if err != nil {
		return err
	}
	summary := core.Summarize(rows, now, now)
	return s.push(ctx, bot.DailySummaryText(summary))
}

func (s *Scheduler) runWeeklySummary(ctx context.Context, now time.Time) error {
	rows, err := s.store.ReadAll(ctx)
	if err != nil {
		return err
	}
	summary := core.Summarize(rows, now.AddDate(0, 0, -6), now)
	return s.push(ctx, bot.WeeklySummaryText(summary))
}

func (s *Scheduler) runBackup(ctx context.Context, now time.Time) error {
	rows, err := s.store.ReadAll(ctx)
	if err != nil {
		return err
	}
	name, err := backup.Write(s.backupDir, rows, now)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Ledger backup written",
		applog.FieldFilename, name,
		"rows", len(rows))
	return s.push(ctx, bot.BackupText(name))
}

func (s *Scheduler) push(ctx context.Context, text string) error {
	if s.recipient == "" {
		s.logger.Debug("No push recipient configured, skipping notification")
		return nil
	}
	return s.pusher.Push(ctx, s.recipient, text)
}

func parseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
