package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDisplayClockFormatsInZone(t *testing.T) {
	clock := NewDisplayClock("Asia/Kolkata")

	// 04:30 UTC is 10:00 IST.
	utc := time.Date(2026, 9, 15, 4, 30, 0, 0, time.UTC)
	require.Equal(t, "15-09-2026 10:00 AM", clock.Format(utc))
}

func TestDisplayClockParseRoundTrip(t *testing.T) {
	clock := NewDisplayClock("Asia/Kolkata")

	parsed, err := clock.Parse("15-09-2026 10:00 AM")
	require.NoError(t, err)
	require.Equal(t, "15-09-2026 10:00 AM", clock.Format(parsed))
	require.Equal(t, time.Date(2026, 9, 15, 4, 30, 0, 0, time.UTC), parsed.UTC())
}

func TestDisplayClockRejectsOtherLayouts(t *testing.T) {
	clock := NewDisplayClock("Asia/Kolkata")
	_, err := clock.Parse("2026-09-15T10:00:00Z")
	require.Error(t, err)
}

func TestDisplayClockUnknownZoneFallsBackToUTC(t *testing.T) {
	clock := NewDisplayClock("Not/AZone")
	utc := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	require.Equal(t, "15-09-2026 10:00 AM", clock.Format(utc))
}
