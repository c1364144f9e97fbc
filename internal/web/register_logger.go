package web

import (
	"bitbucket.org/crgw/booking-notifier/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func RegisterLogger(logger *zerolog.Logger) func(c *gin.Context) {
	return func(c *gin.Context) {
		correlationId := c.GetString(responding.CorrelationIdKey)

		requestLogger := logger.
			With().
			Str("correlationId", correlationId).
			Str("route", c.FullPath()).
			Logger()

		c.Set(responding.LoggerKey, &requestLogger)
	}
}
