package web

import (
	"time"

	"bitbucket.org/crgw/booking-notifier/internal/tools/responding"
	"github.com/gin-gonic/gin"
)

func TraceLog(c *gin.Context) {
	// Finish all others and then write trace log
	c.Next()

	logger := responding.Logger(c)
	startTime := c.GetTime(requestStartTimeKey)

	logger.Info().
		Str("label", "trace").
		Str("method", c.Request.Method).
		Str("url", c.Request.URL.Path).
		Str("clientIp", c.ClientIP()).
		Int("code", c.Writer.Status()).
		Float64("duration", time.Since(startTime).Seconds()).
		Msg("")
}
