package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Guyuepp/go-clean-discussion/internal/config"
	"github.com/Guyuepp/go-clean-discussion/internal/report"
	mysqlRepo "github.com/Guyuepp/go-clean-discussion/internal/repository/mysql"
	redisRepo "github.com/Guyuepp/go-clean-discussion/internal/repository/redis"
	"github.com/Guyuepp/go-clean-discussion/internal/rest"
	"github.com/Guyuepp/go-clean-discussion/internal/rest/middleware"
	"github.com/Guyuepp/go-clean-discussion/internal/usecase/comment"
	"github.com/Guyuepp/go-clean-discussion/internal/usecase/notification"
	"github.com/Guyuepp/go-clean-discussion/internal/usecase/stats"
	"github.com/Guyuepp/go-clean-discussion/internal/workers"
)

const (
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}
	cfg.ApplyLogLevel()

	// prepare database
	db, err := openDB(cfg.Database.DSN())
	if err != nil {
		log.Fatal("could not connect to database after retries:", err)
	}
	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("got error when getting sql.DB from gorm.DB", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Fatal("got error when closing the DB connection", err)
		}
	}()

	if err := mysqlRepo.AutoMigrate(db); err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	// prepare cache
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Addr(),
		Password: cfg.Cache.Pass,
		DB:       cfg.Cache.DB,
	})
	defer func() {
		if err := client.Close(); err != nil {
			log.Fatal("got error when closing the cache connection", err)
		}
	}()
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Fatal("failed to open connection to cache", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Prepare Repository
	store := mysqlRepo.NewStore(db)
	locker := redisRepo.NewDiscussionLocker(client, cfg.Lock.TTL, cfg.Lock.Retry)

	// Start worker
	notificationWorker := workers.NewNotificationWorker(
		mysqlRepo.NewNotificationRepository(db),
		cfg.Notification.QueueSize,
		cfg.Notification.BatchSize,
		cfg.Notification.FlushInterval,
	)
	// outlives ctx so dispatches still running at shutdown can enqueue
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go notificationWorker.Start(workerCtx)

	// Build service Layer
	statsSvc := stats.NewService(store, locker)
	notificationSvc := notification.NewService(store, notificationWorker, cfg.Notification.Concurrency)
	commentSvc := comment.NewService(store, locker, statsSvc, report.NewRegistry(), notificationSvc)
	commentHandler := rest.NewCommentHandler(commentSvc, notificationSvc)

	// prepare gin
	route := gin.Default()
	route.Use(middleware.SetRequestContextWithTimeout(time.Duration(cfg.Server.Timeout) * time.Second))
	commentHandler.Register(route)

	// Start Server
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: route,
	}
	go func() {
		logrus.Infof("Server is running on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err) // nolint
		}
	}()

	// shutdown
	<-ctx.Done()
	logrus.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	logrus.Info("Waiting for notification dispatches and worker to cleanup...")
	commentSvc.Wait()
	stopWorker()
	select {
	case <-notificationWorker.Done():
	case <-shutdownCtx.Done():
		logrus.Warn("notification worker did not finish in time")
	}

	logrus.Info("Server exiting")
}

func openDB(dsn string) (db *gorm.DB, err error) {
	for i := range dbMaxRetry {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			logrus.Warnf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				err = dbErr
				logrus.Warnf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			if err = sqlDB.Ping(); err == nil {
				return db, nil
			}
			logrus.Warnf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}
	return nil, err
}
