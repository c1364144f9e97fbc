package calendar

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"bitbucket.org/crgw/booking-notifier/internal/tools/requesting"
	"github.com/rs/zerolog"
)

const eventMarker = "BEGIN:VEVENT"

// Feed is an iCalendar document as returned by the calendar provider.
type Feed struct {
	StatusCode int
	Body       []byte
}

// EventCount counts event markers without parsing the document.
func (f *Feed) EventCount() int {
	return bytes.Count(f.Body, []byte(eventMarker))
}

type Fetcher interface {
	Fetch(ctx context.Context, timeout time.Duration, logger *zerolog.Logger) (*Feed, error)
}

type Client struct {
	url           string
	httpTransport http.RoundTripper
}

func NewClient(url string) *Client {
	return &Client{
		url:           url,
		httpTransport: http.DefaultTransport.(*http.Transport).Clone(),
	}
}

// Fetch downloads the feed. Transport failures are returned as
// *requesting.Error, the status code is left for the caller to judge.
func (c *Client) Fetch(ctx context.Context, timeout time.Duration, logger *zerolog.Logger) (*Feed, error) {
	client := &http.Client{
		Timeout: timeout,
		Transport: &requesting.Transport{
			Next:        c.httpTransport,
			Log:         logger,
			Destination: "calendar",
		},
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	httpRequest.Header.Set("Accept", "text/calendar")

	response, err := client.Do(httpRequest)
	if err != nil {
		return nil, requesting.RequestError(err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, requesting.ReadError(err)
	}

	return &Feed{
		StatusCode: response.StatusCode,
		Body:       body,
	}, nil
}
