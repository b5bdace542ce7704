package worker

import (
	"fmt"
	"strconv"
	"strings"

	"flowtask/internal/config"
	"flowtask/internal/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Scheduler runs the periodic maintenance: the optional daily my-day reset
// and the daily cleanup enqueue.
type Scheduler struct {
	scheduler gocron.Scheduler
	log       *logrus.Entry
}

func NewScheduler(cfg config.SchedulerConfig, db *gorm.DB, tasks services.TaskService, queue *JobQueue) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	log := logrus.WithField("component", "scheduler")

	if cfg.MyDayResetEnabled {
		hour, minute, err := parseClockTime(cfg.MyDayResetAt)
		if err != nil {
			return nil, fmt.Errorf("invalid MYDAY_RESET_AT: %w", err)
		}

		_, err = s.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(hour, minute, 0))),
			gocron.NewTask(func() {
				affected, err := tasks.ResetMyDay(db)
				if err != nil {
					log.WithError(err).Error("my-day reset failed")
					return
				}
				log.WithField("affected", affected).Info("my-day flags reset")
			}),
		)
		if err != nil {
			return nil, err
		}
	}

	if cfg.CleanupEnabled {
		_, err = s.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
			gocron.NewTask(func() {
				if err := queue.EnqueueCleanup(); err != nil {
					log.WithError(err).Error("failed to enqueue cleanup")
				}
			}),
		)
		if err != nil {
			return nil, err
		}
	}

	return &Scheduler{scheduler: s, log: log}, nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
	s.log.Info("scheduler started")
}

func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

func parseClockTime(value string) (uint, uint, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}
	return uint(hour), uint(minute), nil
}
