package web

import (
	"net/http"

	"bitbucket.org/crgw/booking-notifier/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const panicMessage = "Unexpected error occurred"

func PanicRecovery(c *gin.Context) {
	gin.CustomRecoveryWithWriter(&recoveryWriter{
		logger: responding.Logger(c),
	}, func(c *gin.Context, err any) {
		responding.HandleError(c, http.StatusInternalServerError, panicMessage, nil)
	})(c)
}

type recoveryWriter struct {
	logger *zerolog.Logger
}

func (r *recoveryWriter) Write(p []byte) (n int, err error) {
	r.
		logger.
		Error().
		Str("label", "panic").
		Msg(string(p))

	return len(p), nil
}
