package web

import (
	"net/http"
	"time"

	"bitbucket.org/crgw/booking-notifier/internal/booking"
	"bitbucket.org/crgw/booking-notifier/internal/calendar"
	"bitbucket.org/crgw/booking-notifier/internal/config"
	"bitbucket.org/crgw/booking-notifier/internal/mailer"
	"bitbucket.org/crgw/booking-notifier/internal/schema"
	"bitbucket.org/crgw/booking-notifier/internal/throttle"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Options struct {
	Config *config.Config
	Mailer mailer.Sender
	Feed   calendar.Fetcher
	// Limiter is optional, nil disables the submission throttle
	Limiter throttle.Limiter
}

func SetupRouter(log *zerolog.Logger, o Options) *gin.Engine {
	startTime := time.Now()

	if o.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// client IPs key the submission throttle, forwarding headers only count from known proxies
	if err := router.SetTrustedProxies(o.Config.TrustedProxies); err != nil {
		log.Warn().
			Err(err).
			Strs("trustedProxies", o.Config.TrustedProxies).
			Msg("Invalid trusted proxies, forwarding headers ignored")
		_ = router.SetTrustedProxies(nil)
	}

	router.
		Use(StartRequest).
		Use(CorrelationId).
		Use(RegisterLogger(log)).
		Use(TraceLog).
		Use(PanicRecovery).
		Use(Cors(o.Config.CorsAllowedOrigins))

	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, schema.StatusResponse{
			Uptime: time.Since(startTime).Seconds(),
		})
	})

	_, openApiContent, err := LoadOpenapi(o.Config.OpenApiLocation)
	if err != nil {
		log.Warn().Err(err).Str("location", o.Config.OpenApiLocation).Msg("OpenAPI document not served")
	} else {
		router.GET("/openapi.json", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", openApiContent)
		})
	}

	pprof.Register(router)

	var submitMiddlewares []gin.HandlerFunc
	if o.Limiter != nil {
		submitMiddlewares = append(submitMiddlewares, throttle.Middleware(o.Limiter))
	}

	booking.RegisterRoutes(
		router,
		booking.NewHandler(o.Mailer, booking.Addresses{
			Sender:            o.Config.MailSender,
			ProviderRecipient: o.Config.MailProviderRecipient,
		}),
		submitMiddlewares...,
	)

	calendar.RegisterRoutes(
		router,
		calendar.NewHandler(o.Feed, o.Config.CalendarTimeout, o.Config.CalendarTestTimeout),
	)

	return router
}
