package calendar

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	appErrors "bitbucket.org/crgw/booking-notifier/internal/errors"
	"bitbucket.org/crgw/booking-notifier/internal/schema"
	"bitbucket.org/crgw/booking-notifier/internal/tools/requesting"
	"bitbucket.org/crgw/booking-notifier/internal/tools/responding"
	"github.com/gin-gonic/gin"
)

const (
	ContentType = "text/calendar"

	fetchFailedMessage = "Failed to fetch calendar data"
	unexpectedMessage  = "Unexpected error occurred"
	testFailedMessage  = "Failed to test calendar access"
)

type Handler struct {
	feed        Fetcher
	timeout     time.Duration
	testTimeout time.Duration
}

func NewHandler(feed Fetcher, timeout time.Duration, testTimeout time.Duration) *Handler {
	return &Handler{
		feed:        feed,
		timeout:     timeout,
		testTimeout: testTimeout,
	}
}

func RegisterRoutes(router gin.IRoutes, h *Handler) {
	router.GET("/get-calendar-events", h.GetEvents)
	router.GET("/test-calendar", h.TestCalendar)
}

// GetEvents relays the feed body untouched.
func (h *Handler) GetEvents(c *gin.Context) {
	logger := responding.Logger(c)

	feed, err := h.feed.Fetch(c.Request.Context(), h.timeout, logger)
	if err == nil && !requesting.IsValidResponse(feed.StatusCode) {
		err = fmt.Errorf("%w: %d", appErrors.ErrorFeedStatus, feed.StatusCode)
	}

	if err != nil {
		var requestErr *requesting.Error
		if errors.As(err, &requestErr) || errors.Is(err, appErrors.ErrorFeedStatus) {
			responding.HandleError(c, http.StatusInternalServerError, fetchFailedMessage, err)
			return
		}

		responding.HandleError(c, http.StatusInternalServerError, unexpectedMessage, err)
		return
	}

	c.Data(http.StatusOK, ContentType, feed.Body)
}

// TestCalendar reports the number of events in the feed, an unsuccessful
// upstream status is echoed back as the response status.
func (h *Handler) TestCalendar(c *gin.Context) {
	logger := responding.Logger(c)

	feed, err := h.feed.Fetch(c.Request.Context(), h.testTimeout, logger)
	if err != nil {
		responding.HandleError(c, http.StatusInternalServerError, testFailedMessage, err)
		return
	}

	if feed.StatusCode != http.StatusOK {
		logger.Warn().
			Str("label", "calendar").
			Int("code", feed.StatusCode).
			Msg("Calendar access failed")

		c.JSON(feed.StatusCode, schema.CalendarTestResponse{
			Success:    false,
			Message:    fmt.Sprintf("Calendar access failed with status %d", feed.StatusCode),
			StatusCode: feed.StatusCode,
		})
		return
	}

	c.JSON(http.StatusOK, schema.CalendarTestResponse{
		Success:    true,
		Message:    fmt.Sprintf("Calendar access successful. Found %d events.", feed.EventCount()),
		StatusCode: feed.StatusCode,
	})
}
