package timeutil

import (
	"time"
)

// Location is the zone used for "today" and for calendar math. It defaults to
// Indian Standard Time and is replaced from configuration at start-up.
var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		Location = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// SetLocation switches the application zone. An unknown name leaves the current zone in place.
func SetLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	Location = loc
	return nil
}

// Now returns the current time in the application zone
func Now() time.Time {
	return time.Now().In(Location)
}

// DateOf truncates t to midnight of its calendar day in the application zone.
func DateOf(t time.Time) time.Time {
	local := t.In(Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Location)
}

// Today returns midnight of the current day.
func Today() time.Time {
	return DateOf(Now())
}

// WeekBounds returns the Monday and Sunday of the ISO week containing day.
func WeekBounds(day time.Time) (time.Time, time.Time) {
	d := DateOf(day)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	start := d.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// DaysInclusive counts calendar days from start to end, both included.
// It returns 0 when end is before start.
func DaysInclusive(start, end time.Time) int {
	s := DateOf(start)
	e := DateOf(end)
	if e.Before(s) {
		return 0
	}
	// AddDate stepping keeps DST transitions from skewing the count
	n := 1
	for cur := s; cur.Before(e); cur = cur.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// ParseDate parses a YYYY-MM-DD value in the application zone.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, Location)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
