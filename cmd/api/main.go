package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/Pedrolamon/hairdayy-sub000/internal/config"
	dbpkg "github.com/Pedrolamon/hairdayy-sub000/internal/db"
	"github.com/Pedrolamon/hairdayy-sub000/internal/logging"
	"github.com/Pedrolamon/hairdayy-sub000/internal/notification"
	"github.com/Pedrolamon/hairdayy-sub000/internal/routes"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
	"github.com/Pedrolamon/hairdayy-sub000/internal/worker"
)

func main() {

	logging.Init()
	defer logging.Sync()

	cfg := config.Load()
	timezone.SetDefault(cfg.DefaultTimezone)

	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Push delivery is optional. Without credentials the app runs with
	// notifications disabled.
	var notifier notification.Notifier
	if fcm, err := notification.NewFCMNotifier(context.Background(), db, cfg.FirebaseCredentialsFile); err != nil {
		logging.L().Warn("push notifications disabled", zap.Error(err))
	} else {
		notifier = fcm
	}

	worker.StartReminderWorker(cfg, db, notifier)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := routes.RegisterRoutes(r, db, cfg, rdb, notifier); err != nil {
		logging.L().Fatal("failed to register routes", zap.Error(err))
	}

	logging.L().Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logging.L().Fatal("failed to start server", zap.Error(err))
	}
}
