package booking

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bitbucket.org/crgw/booking-notifier/internal/mailer"
	"bitbucket.org/crgw/booking-notifier/internal/schema"
	"bitbucket.org/crgw/booking-notifier/internal/tools/responding"
	"bitbucket.org/crgw/booking-notifier/internal/tools/slowlog"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	submittedMessage = "Booking request submitted successfully. Confirmation emails sent."
	testEmailMessage = "Test email sent successfully"

	submitFailedMessage    = "Failed to submit booking request. Please try again."
	testEmailFailedMessage = "Failed to send test email"

	slowMailThreshold = 5 * time.Second
)

// Addresses used for every outgoing booking email.
type Addresses struct {
	Sender            string
	ProviderRecipient string
}

type Handler struct {
	mailer    mailer.Sender
	addresses Addresses
	now       func() time.Time
}

func NewHandler(sender mailer.Sender, addresses Addresses) *Handler {
	return &Handler{
		mailer:    sender,
		addresses: addresses,
		now:       time.Now,
	}
}

// RegisterRoutes mounts the booking routes, submitMiddlewares run in front of
// the submission handler only.
func RegisterRoutes(router gin.IRoutes, h *Handler, submitMiddlewares ...gin.HandlerFunc) {
	submitHandlers := append(submitMiddlewares, h.SubmitBooking)

	router.POST("/submit-booking", submitHandlers...)
	router.GET("/test-email", h.TestEmail)
}

func (h *Handler) SubmitBooking(c *gin.Context) {
	logger := responding.Logger(c)

	// unreadable body is treated like an empty one
	body, _ := c.GetRawData()

	request, err := ParseRequest(body)
	if err != nil {
		responding.HandleError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	endTime := request.EndTime()

	providerMessage := mailer.Message{
		From:    h.addresses.Sender,
		To:      []string{h.addresses.ProviderRecipient},
		Subject: ProviderSubject(request),
		Body:    ProviderBody(request, endTime, h.now()),
	}

	clientMessage := mailer.Message{
		From:    h.addresses.Sender,
		To:      []string{request.Email},
		Subject: ClientSubject,
		Body:    ClientBody(request, endTime),
	}

	err = h.sendAll(c.Request.Context(), logger,
		namedMessage{name: "provider", message: providerMessage},
		namedMessage{name: "client", message: clientMessage},
	)
	if err != nil {
		responding.HandleError(c, http.StatusInternalServerError, submitFailedMessage, err)
		return
	}

	logger.Info().
		Str("label", "booking").
		Str("date", request.Date).
		Str("startTime", request.StartTime).
		Str("endTime", endTime).
		Msg("Booking request submitted")

	c.JSON(http.StatusOK, schema.SuccessResponse{
		Success: true,
		Message: submittedMessage,
	})
}

func (h *Handler) TestEmail(c *gin.Context) {
	logger := responding.Logger(c)

	message := mailer.Message{
		From:    h.addresses.Sender,
		To:      []string{h.addresses.ProviderRecipient},
		Subject: TestEmailSubject,
		Body:    TestEmailBody,
	}

	err := h.sendAll(c.Request.Context(), logger, namedMessage{name: "test", message: message})
	if err != nil {
		responding.HandleError(c, http.StatusInternalServerError, testEmailFailedMessage, err)
		return
	}

	c.JSON(http.StatusOK, schema.SuccessResponse{
		Success: true,
		Message: testEmailMessage,
	})
}

type namedMessage struct {
	name    string
	message mailer.Message
}

// sendAll sends the messages in order and stops at the first failure.
// Messages already sent are not recalled.
func (h *Handler) sendAll(ctx context.Context, logger *zerolog.Logger, messages ...namedMessage) error {
	slowLog := slowlog.CreateLogger(logger, slowMailThreshold)

	for _, m := range messages {
		stop := slowLog.Track("mail:" + m.name)
		err := h.mailer.Send(ctx, m.message)
		stop()

		if err != nil {
			return fmt.Errorf("sending %s email: %w", m.name, err)
		}

		logger.Debug().
			Str("label", "mail").
			Str("kind", m.name).
			Msg("Email sent")
	}

	return nil
}
