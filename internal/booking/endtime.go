package booking

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const UnknownEndTime = "Unknown"

// ComputeEndTime adds a fractional hour duration to an "HH:MM" start time.
// Minutes carry into hours and the hour wraps past midnight once only, so a
// duration of more than a day is not fully normalized. Malformed input yields
// UnknownEndTime.
func ComputeEndTime(startTime string, duration string) string {
	parts := strings.Split(startTime, ":")
	if len(parts) != 2 {
		return UnknownEndTime
	}

	startHour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return UnknownEndTime
	}

	startMinute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return UnknownEndTime
	}

	hours, err := strconv.ParseFloat(strings.TrimSpace(duration), 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return UnknownEndTime
	}

	wholeHours := math.Trunc(hours)
	durationHours := int(wholeHours)
	durationMinutes := int(math.Trunc((hours - wholeHours) * 60))

	endMinute := startMinute + durationMinutes
	endHour := startHour + durationHours

	if endMinute >= 60 {
		endHour++
		endMinute -= 60
	}

	if endHour >= 24 {
		endHour -= 24
	}

	return fmt.Sprintf("%02d:%02d", endHour, endMinute)
}
