package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateUsesCompanyZone(t *testing.T) {
	parsed, err := ParseDate("2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-05", FormatDate(parsed))

	_, offset := parsed.Zone()
	assert.Equal(t, 3*60*60, offset)
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("05/03/2026")
	assert.Error(t, err)
}

func TestFormatDateConvertsToCompanyZone(t *testing.T) {
	// 23:30 UTC is already the next day in Baghdad.
	utc := time.Date(2026, 3, 5, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-06", FormatDate(utc))
}

func TestInDateRange(t *testing.T) {
	cases := []struct {
		name             string
		date, start, end string
		want             bool
	}{
		{"inside", "2026-03-05", "2026-03-01", "2026-03-31", true},
		{"on start", "2026-03-01", "2026-03-01", "2026-03-31", true},
		{"on end", "2026-03-31", "2026-03-01", "2026-03-31", true},
		{"before start", "2026-02-28", "2026-03-01", "2026-03-31", false},
		{"after end", "2026-04-01", "2026-03-01", "2026-03-31", false},
		{"open start", "2026-01-01", "", "2026-03-31", true},
		{"open end", "2026-12-31", "2026-03-01", "", true},
		{"unbounded", "2026-03-05", "", "", true},
		{"empty date unbounded", "", "", "", true},
		{"empty date bounded", "", "2026-03-01", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InDateRange(tc.date, tc.start, tc.end))
		})
	}
}
