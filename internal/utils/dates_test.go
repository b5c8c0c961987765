package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		d, err := ParseDate("2025-06-10")
		assert.NoError(t, err)
		assert.Equal(t, "2025-06-10", d.Format(DateLayout))
	})

	t.Run("Rejects time component", func(t *testing.T) {
		_, err := ParseDate("2025-06-10T15:04:05Z")
		assert.Error(t, err)
	})

	t.Run("Rejects garbage", func(t *testing.T) {
		_, err := ParseDate("10/06/2025")
		assert.Error(t, err)
	})
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "date-only passes through", in: "2025-06-10", want: "2025-06-10"},
		{name: "timestamp is truncated", in: "2025-06-10T15:04:05Z", want: "2025-06-10"},
		{name: "invalid", in: "not-a-date", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    int32
		wantErr bool
	}{
		{name: "two days", start: "2025-06-10", end: "2025-06-12", want: 2},
		{name: "same day counts as one", start: "2025-06-10", end: "2025-06-10", want: 1},
		{name: "single night", start: "2025-06-10", end: "2025-06-11", want: 1},
		{name: "across month boundary", start: "2025-06-28", end: "2025-07-02", want: 4},
		{name: "across leap day", start: "2024-02-28", end: "2024-03-01", want: 2},
		{name: "end before start", start: "2025-06-12", end: "2025-06-10", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RentalDays(tt.start, tt.end)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRentalTotalCents(t *testing.T) {
	t.Run("Price times days", func(t *testing.T) {
		total, err := RentalTotalCents(5000, "2025-06-13", "2025-06-15")
		assert.NoError(t, err)
		assert.Equal(t, int32(10000), total)
	})

	t.Run("Same-day rental charges one day", func(t *testing.T) {
		total, err := RentalTotalCents(5000, "2025-06-13", "2025-06-13")
		assert.NoError(t, err)
		assert.Equal(t, int32(5000), total)
	})

	t.Run("Far-future end date does not wrap negative", func(t *testing.T) {
		// ~2.9 million days at 5000 cents/day overflows int32.
		total, err := RentalTotalCents(5000, "2025-06-13", "9999-12-31")
		assert.Error(t, err)
		assert.Zero(t, total)
		assert.Contains(t, err.Error(), "exceeds")
	})

	t.Run("Total at the int32 limit is accepted", func(t *testing.T) {
		// 21 days * 100_000_000 cents/day = 2_100_000_000, just under the cap.
		total, err := RentalTotalCents(100_000_000, "2025-06-01", "2025-06-22")
		assert.NoError(t, err)
		assert.Equal(t, int32(2_100_000_000), total)
	})
}
