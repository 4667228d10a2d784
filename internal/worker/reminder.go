package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Pedrolamon/hairdayy-sub000/internal/config"
	"github.com/Pedrolamon/hairdayy-sub000/internal/logging"
	"github.com/Pedrolamon/hairdayy-sub000/internal/metrics"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
	"github.com/Pedrolamon/hairdayy-sub000/internal/notification"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
)

const TypeReminderSweep = "reminder:sweep"

// StartReminderWorker runs the periodic reminder sweep in background:
// a scheduler enqueues the sweep task on a fixed interval and a worker
// executes it.
func StartReminderWorker(cfg *config.Config, db *gorm.DB, notifier notification.Notifier) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisWorkerDB,
	}

	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 2,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSweep, func(ctx context.Context, _ *asynq.Task) error {
		return sweep(ctx, db, notifier, cfg.ReminderLeadMinutes)
	})

	scheduler := asynq.NewScheduler(redisOpts, nil)
	spec := fmt.Sprintf("@every %dm", cfg.ReminderSweepMinutes)
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeReminderSweep, nil)); err != nil {
		logging.L().Fatal("failed to register reminder sweep", zap.Error(err))
	}

	go func() {
		if err := srv.Run(mux); err != nil {
			logging.L().Fatal("reminder worker stopped", zap.Error(err))
		}
	}()
	go func() {
		if err := scheduler.Run(); err != nil {
			logging.L().Fatal("reminder scheduler stopped", zap.Error(err))
		}
	}()
}

// sweep notifies authenticated clients whose appointment starts inside the
// lead window. The guarded update marks each row reminded exactly once even
// if two sweeps race.
func sweep(ctx context.Context, db *gorm.DB, notifier notification.Notifier, leadMinutes int) error {
	now := timezone.Now()
	nowMin := now.Hour()*60 + now.Minute()

	var due []models.Appointment
	if err := db.WithContext(ctx).
		Where(
			"date = ? AND status = 'scheduled' AND reminder_sent = false AND start_minutes > ? AND start_minutes <= ?",
			now.Format("2006-01-02"), nowMin, nowMin+leadMinutes,
		).
		Find(&due).Error; err != nil {
		return err
	}

	for _, ap := range due {
		res := db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("id = ? AND reminder_sent = false", ap.ID).
			Update("reminder_sent", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			continue // another sweep won the row
		}

		if ap.UserID != nil {
			notification.Dispatch(ctx, notifier, *ap.UserID,
				"Lembrete de agendamento",
				fmt.Sprintf("Seu horário é às %s.", ap.StartMinutes.Clock()),
				map[string]string{"appointment_id": fmt.Sprint(ap.ID)},
			)
		}
		metrics.RemindersSent.Inc()
	}

	return nil
}
