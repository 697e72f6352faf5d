package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bagdasarian/docspace-access/internal/config"
	"github.com/bagdasarian/docspace-access/internal/db"
	"github.com/bagdasarian/docspace-access/internal/handler"
	"github.com/bagdasarian/docspace-access/internal/handler/server"
	"github.com/bagdasarian/docspace-access/internal/logging"
	"github.com/bagdasarian/docspace-access/internal/mailer"
	"github.com/bagdasarian/docspace-access/internal/metrics"
	"github.com/bagdasarian/docspace-access/internal/repository/postgres"
	"github.com/bagdasarian/docspace-access/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.Log, nil)

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	database := db.MustLoad(connectCtx, cfg)
	cancelConnect()
	log.Info("successfully connected to database")
	defer database.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(database, "docspace"),
	)
	m := metrics.New(registry)

	membershipRepo := postgres.NewMembershipRepository(database)
	userRepo := postgres.NewUserRepository(database)
	scopeRepo := postgres.NewScopeRepository(database)
	notificationRepo := postgres.NewNotificationRepository(database)
	activityRepo := postgres.NewActivityRepository(database)

	sender := mailer.New(cfg.SMTP, log)
	templates := mailer.NewTemplates(cfg.App)

	accessService := service.NewAccessService(membershipRepo, m, log)
	notificationService := service.NewNotificationService(notificationRepo, sender, templates, m, log)
	mentionResolver := service.NewMentionResolver(membershipRepo, m)

	userService := service.NewUserService(userRepo)
	membershipService := service.NewMembershipService(accessService, membershipRepo, userRepo, scopeRepo, activityRepo, notificationService, log)
	commentService := service.NewCommentService(accessService, mentionResolver, scopeRepo, activityRepo, notificationService, log)
	activityService := service.NewActivityService(accessService, membershipRepo, scopeRepo, activityRepo, notificationService, log)

	h := handler.NewHandler(userService, membershipService, commentService, activityService, log)
	srv := server.NewServer(h, cfg.HTTP.Addr, registry, m, log)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
}
