package web

import (
	"bitbucket.org/crgw/booking-notifier/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const CorrelationIdHeader = "x-correlation-id"

// CorrelationId middleware adds a correlation id to the context from the request header
func CorrelationId(c *gin.Context) {
	correlationId := c.GetHeader(CorrelationIdHeader)
	if correlationId == "" {
		correlationId = uuid.New().String()
	}

	c.Set(responding.CorrelationIdKey, correlationId)
	c.Header(CorrelationIdHeader, correlationId)
}
