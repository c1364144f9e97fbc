package throttle

import (
	"net/http"

	"bitbucket.org/crgw/booking-notifier/internal/tools/responding"
	"github.com/gin-gonic/gin"
)

const tooManyRequestsMessage = "Too many booking requests. Please try again later."

// Middleware limits requests per client IP. Limiter failures let the request
// through.
func Middleware(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := responding.Logger(c)
		clientIP := c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), clientIP)
		if err != nil {
			log.Err(err).
				Str("label", "throttle").
				Str("clientIp", clientIP).
				Msg("Unable to check submission limit")
			return
		}

		if !allowed {
			responding.HandleError(c, http.StatusTooManyRequests, tooManyRequestsMessage, nil)
			return
		}
	}
}
