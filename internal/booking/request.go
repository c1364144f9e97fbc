package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	appErrors "bitbucket.org/crgw/booking-notifier/internal/errors"
)

var requiredFields = []string{"name", "email", "phone", "duration", "date", "startTime", "children"}

// Request is a booking submission. Values are kept as their textual form so
// that numbers are rendered exactly as the client sent them.
type Request struct {
	Name      string
	Email     string
	Phone     string
	Duration  string
	Date      string
	StartTime string
	Children  string
	Comments  *string

	// duration as a number of hours, differs from Duration for booleans
	hours string
}

// EndTime is the start time plus the booked duration, or UnknownEndTime.
func (r Request) EndTime() string {
	hours := r.hours
	if hours == "" {
		hours = r.Duration
	}

	return ComputeEndTime(r.StartTime, hours)
}

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing required field: %s", e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return appErrors.ErrorMissingField
}

// ParseRequest decodes a JSON object and reports the first required field
// which is absent or empty. A body which is not a JSON object counts as
// having no fields at all.
func ParseRequest(body []byte) (Request, error) {
	payload := map[string]any{}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		payload = nil
	}

	for _, field := range requiredFields {
		if !isPresent(payload[field]) {
			return Request{}, &MissingFieldError{Field: field}
		}
	}

	request := Request{
		Name:      text(payload["name"]),
		Email:     text(payload["email"]),
		Phone:     text(payload["phone"]),
		Duration:  text(payload["duration"]),
		Date:      text(payload["date"]),
		StartTime: text(payload["startTime"]),
		Children:  text(payload["children"]),
		hours:     hoursText(payload["duration"]),
	}

	if comments, ok := payload["comments"]; ok && comments != nil {
		value := text(comments)
		request.Comments = &value
	}

	return request, nil
}

func isPresent(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case json.Number:
		number, err := v.Float64()
		if err != nil {
			// out of float range, certainly not zero
			return true
		}
		return number != 0
	case bool:
		return v
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

// text renders a payload value for the email bodies. Strings and numbers are
// kept verbatim, other values are written as literals such as True, None,
// [1, 2] and {'k': 'v'}. Object keys are sorted.
func text(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return literal(v)
	}
}

func literal(value any) string {
	switch v := value.(type) {
	case nil:
		return "None"
	case string:
		return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "True"
		}
		return "False"
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, literal(item))
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		items := make([]string, 0, len(v))
		for _, key := range keys {
			items = append(items, literal(key)+": "+literal(v[key]))
		}
		return "{" + strings.Join(items, ", ") + "}"
	default:
		return fmt.Sprint(v)
	}
}

// hoursText is the duration as a number of hours, a true flag counts as one.
func hoursText(value any) string {
	if v, ok := value.(bool); ok {
		if v {
			return "1"
		}
		return "0"
	}

	return text(value)
}
