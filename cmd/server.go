//go:build !integration

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"bitbucket.org/crgw/booking-notifier/internal/calendar"
	"bitbucket.org/crgw/booking-notifier/internal/config"
	"bitbucket.org/crgw/booking-notifier/internal/logger"
	"bitbucket.org/crgw/booking-notifier/internal/mailer"
	"bitbucket.org/crgw/booking-notifier/internal/throttle"
	"bitbucket.org/crgw/booking-notifier/internal/tools/redisfactory"
	"bitbucket.org/crgw/booking-notifier/internal/web"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	mailTimeout     = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func serverApp(httpServer *http.Server, logger *zerolog.Logger, stop <-chan os.Signal) int {
	var shutdown atomic.Bool
	done := make(chan error, 1)
	go func() {
		logger.
			Info().
			Msg("Listening on address " + httpServer.Addr)
		done <- httpServer.ListenAndServe()
	}()
	go func() {
		// Wait for stop
		<-stop
		shutdown.Store(true)
		logger.Info().Msg("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpServer.Shutdown(ctx)
	}()

	err := <-done
	if err != nil && !shutdown.Load() {
		logger.
			Error().
			Err(err).
			Msg("Server failed")
		return 1
	}
	return 0
}

func newMailer(cfg *config.Config, log *zerolog.Logger) mailer.Sender {
	sender, err := mailer.NewSMTPSender(mailer.Options{
		Host:     cfg.MailServer,
		Port:     cfg.MailPort,
		Username: cfg.MailUsername,
		Password: cfg.MailPassword,
		UseTLS:   cfg.MailUseTLS,
		UseSSL:   cfg.MailUseSSL,
		Timeout:  mailTimeout,
	})
	if err != nil {
		// keep serving, every send answers with the mail error response
		log.Error().Err(err).Msg("Mail transport could not be configured")
		return mailer.Unavailable{Cause: err}
	}

	return sender
}

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load(".", "./config")
	if err != nil {
		logger.New(os.Getenv("LOG_LEVEL")).Fatal().Err(err).Msg("Config could not be loaded")
	}

	log := logger.New(cfg.LogLevel)

	redisFactory, err := redisfactory.New(cfg.ThrottleRedisURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis client could not be created")
	}

	appRouter := web.SetupRouter(log, web.Options{
		Config: cfg,
		Mailer: newMailer(cfg, log),
		Feed:   calendar.NewClient(cfg.CalendarFeedURL),
		Limiter: throttle.New(throttle.Options{
			Limit:  cfg.ThrottleLimit,
			Window: cfg.ThrottleWindow,
			Redis:  redisFactory.ThrottleClient(),
		}),
	})

	var host string
	if os.Getenv("TEST") == "true" {
		host = "localhost"
	}

	httpServer := &http.Server{
		Addr:              host + ":" + cfg.Port,
		Handler:           appRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Notify stop channel if SIGINT or SIGTERM is received
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	code := serverApp(httpServer, log, stop)
	_ = redisFactory.Close()
	os.Exit(code)
}
