package requesting

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Transport records every call made to one upstream. Failures and
// unsuccessful statuses are logged as warnings, failures with their error
// class so timeouts and refused connections can be told apart.
type Transport struct {
	Next        http.RoundTripper
	Log         *zerolog.Logger
	Destination string
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}

	startTime := time.Now()
	resp, err := next.RoundTrip(req)

	var event *zerolog.Event
	switch {
	case err != nil:
		event = t.Log.Warn().
			Err(err).
			Str("errorCode", string(Classify(err))).
			Int("code", 0)
	case !IsValidResponse(resp.StatusCode):
		event = t.Log.Warn().Int("code", resp.StatusCode)
	default:
		event = t.Log.Info().Int("code", resp.StatusCode)
	}

	event.
		Str("label", "outgoing-request").
		Str("destination", t.Destination).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Float64("duration", time.Since(startTime).Seconds()).
		Msg("")

	return resp, err
}
