package booking

import (
	"fmt"
	"time"

	"bitbucket.org/crgw/booking-notifier/internal/tools/converting"
)

const (
	NoCommentsPlaceholder = "No additional comments"
	SubmittedAtLayout     = "2006-01-02 15:04:05"

	ClientSubject    = "Booking Request Confirmation - Ilana Cares"
	TestEmailSubject = "Test Email from Booking System"
	TestEmailBody    = "This is a test email to verify the email configuration is working correctly."
)

const providerBodyFormat = `
New Booking Request

Client Information:
- Name: %s
- Email: %s
- Phone: %s
- Number of Children: %s

Booking Details:
- Date: %s
- Start Time: %s
- Duration: %s hours
- End Time: %s

Additional Information:
%s

Submitted at: %s
`

const clientBodyFormat = `
Dear %s,

Thank you for your booking request! We have received the following details:

Booking Information:
- Date: %s
- Time: %s - %s
- Duration: %s hours
- Number of Children: %s

Ilana will contact you shortly at %s or %s to confirm the booking details.

Best regards,
Ilana Cares Babysitting Service
`

func ProviderSubject(r Request) string {
	return fmt.Sprintf("New Booking Request from %s", r.Name)
}

func ProviderBody(r Request, endTime string, submittedAt time.Time) string {
	return fmt.Sprintf(providerBodyFormat,
		r.Name,
		r.Email,
		r.Phone,
		r.Children,
		r.Date,
		r.StartTime,
		r.Duration,
		endTime,
		converting.ValueOr(r.Comments, NoCommentsPlaceholder),
		submittedAt.Local().Format(SubmittedAtLayout),
	)
}

func ClientBody(r Request, endTime string) string {
	return fmt.Sprintf(clientBodyFormat,
		r.Name,
		r.Date,
		r.StartTime,
		endTime,
		r.Duration,
		r.Children,
		r.Phone,
		r.Email,
	)
}
