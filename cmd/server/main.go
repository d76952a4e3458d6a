package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"emojifeedback/internal/config"
	"emojifeedback/internal/database"
	"emojifeedback/internal/handler"
	"emojifeedback/internal/logger"
	middleware "emojifeedback/internal/midlleware"
	"emojifeedback/internal/repository"
	"emojifeedback/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(cfg.Database.URL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	statsRepo := repository.NewStatisticRepository(db)

	authService := service.NewAuthService(userRepo)
	courseService := service.NewCourseService(courseRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo)
	statsService := service.NewStatisticService(statsRepo)

	sessions := middleware.NewSessionManager(cfg.Session)
	auth := middleware.NewAuth(sessions, authService)
	view := handler.NewRenderer(sessions)

	router := handler.NewRouter(handler.Handlers{
		Index:   handler.NewIndexHandler(view, db),
		Auth:    handler.NewAuthHandler(authService, sessions, view),
		Student: handler.NewStudentHandler(courseService, feedbackService, sessions, view),
		Admin:   handler.NewAdminHandler(authService, courseService, feedbackService, statsService, sessions, view, cfg.Feedback),
		Stats:   handler.NewStatsHandler(courseService, statsService, sessions, view, cfg.Feedback.DefaultStatsDays),
	}, auth)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Server.Env).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
