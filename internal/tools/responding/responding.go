package responding

import (
	"net/http"

	"bitbucket.org/crgw/booking-notifier/internal/schema"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	LoggerKey        string = "logger"
	CorrelationIdKey string = "correlationId"
)

var nopLogger = zerolog.Nop()

// Logger returns the request scoped logger registered by the web middlewares.
func Logger(c *gin.Context) *zerolog.Logger {
	value, ok := c.Get(LoggerKey)
	if !ok {
		return &nopLogger
	}

	logger, ok := value.(*zerolog.Logger)
	if !ok {
		return &nopLogger
	}

	return logger
}

// HandleError logs the failure and aborts the request with a JSON error body.
// Details are only exposed when err is not nil.
func HandleError(c *gin.Context, status int, message string, err error) {
	logger := Logger(c)

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}

	if err != nil {
		event = event.Err(err)
	}

	event.
		Str("label", "error-response").
		Int("code", status).
		Msg(message)

	c.AbortWithStatusJSON(status, schema.NewErrorResponse(message, err))
}
