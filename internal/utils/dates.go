package utils

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the wire and storage format for all booking dates.
const DateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd string to a UTC midnight time.Time.
// Values carrying a time component are rejected rather than truncated;
// NormalizeDate handles that case.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	return t, nil
}

// NormalizeDate reduces a date string to date-only precision. RFC 3339
// timestamps are accepted and their time-of-day discarded.
func NormalizeDate(s string) (string, error) {
	if t, err := ParseDate(s); err == nil {
		return t.Format(DateLayout), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	return t.UTC().Format(DateLayout), nil
}

// RentalDays returns the billable day count for a date range: the whole
// days between start and end, never less than one. A same-day rental is
// one day. end before start is an error.
func RentalDays(startDate, endDate string) (int32, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, err
	}
	if end.Before(start) {
		return 0, fmt.Errorf("end date must not be before start date")
	}
	days := int32(end.Sub(start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days, nil
}

// RentalTotalCents computes the server-side total for a booking from the
// car's current daily price. The multiplication runs in int64 so an
// absurdly long range errors out instead of wrapping negative.
func RentalTotalCents(pricePerDayCents int32, startDate, endDate string) (int32, error) {
	days, err := RentalDays(startDate, endDate)
	if err != nil {
		return 0, err
	}
	total := int64(pricePerDayCents) * int64(days)
	if total > math.MaxInt32 {
		return 0, fmt.Errorf("rental total exceeds the supported maximum")
	}
	return int32(total), nil
}

// Today returns the current UTC date in DateLayout.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}
