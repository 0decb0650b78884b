package shared

import "time"

// DisplayTimeLayout renders timestamps the way clients expect them:
// DD-MM-YYYY hh:mm AM/PM.
const DisplayTimeLayout = "02-01-2006 03:04 PM"

// DisplayClock formats and parses client-facing timestamps in a fixed zone.
type DisplayClock struct {
	loc *time.Location
}

// NewDisplayClock loads the named zone, falling back to UTC when the zone
// database does not know it.
func NewDisplayClock(zone string) *DisplayClock {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.UTC
	}
	return &DisplayClock{loc: loc}
}

// Format renders t in the display zone.
func (c *DisplayClock) Format(t time.Time) string {
	return t.In(c.loc).Format(DisplayTimeLayout)
}

// Parse reads a client-supplied timestamp, interpreting it in the display zone.
func (c *DisplayClock) Parse(s string) (time.Time, error) {
	return time.ParseInLocation(DisplayTimeLayout, s, c.loc)
}
