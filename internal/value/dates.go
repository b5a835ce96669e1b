package value

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Recognition patterns. A string is a date candidate when it is exactly
// YYYY-MM-DD and a datetime candidate when it starts with YYYY-MM-DDT;
// candidates must still pass strict parsing. dateTimeRegex is the strict
// shape: two-digit fields and at most nine fraction digits.
var (
	dateOnlyRegex     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimePrefRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)
	dateTimeRegex     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}(:\d{2}(:\d{2}(\.\d{1,9})?)?)?(Z|[+-]\d{2}:?\d{2})?$`)
)

const dateLayout = "2006-01-02"

var (
	zonedLayouts = []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04:05-0700",
		"2006-01-02T15:04-0700",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02T15",
	}
)

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date y-m-d, normalizing out-of-range fields the way
// time.Date does.
func NewDate(y int, m time.Month, d int) Date {
	return DateOf(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a strict YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	if !dateOnlyRegex.MatchString(s) {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String returns the ISO-8601 form YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DateTime is a date and time of day. A zoned DateTime carries a fixed UTC
// offset; a naive one does not.
type DateTime struct {
	clock  time.Time // wall clock reading, location always UTC
	offset int       // seconds east of UTC, zoned only
	zoned  bool
}

// ZonedDateTime returns t as a DateTime carrying t's UTC offset.
func ZonedDateTime(t time.Time) DateTime {
	_, offset := t.Zone()
	return DateTime{clock: wallClock(t), offset: offset, zoned: true}
}

// NaiveDateTime returns the wall clock reading of t with no offset.
func NaiveDateTime(t time.Time) DateTime {
	return DateTime{clock: wallClock(t)}
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ParseDateTime parses an ISO-8601 date and time. The time of day may be
// given as hours, hours and minutes, or hours, minutes and seconds with an
// optional fraction of up to nine digits; an optional Z or numeric offset
// makes the result zoned. Every field must be zero-padded to two digits.
func ParseDateTime(s string) (DateTime, error) {
	if !dateTimeRegex.MatchString(s) {
		return DateTime{}, fmt.Errorf("invalid datetime %q", s)
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ZonedDateTime(t), nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NaiveDateTime(t), nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid datetime %q", s)
}

// Zoned reports whether dt carries a UTC offset.
func (dt DateTime) Zoned() bool {
	return dt.zoned
}

// Time returns dt as a time.Time. Zoned values are placed in a fixed zone
// with their offset, naive values in UTC.
func (dt DateTime) Time() time.Time {
	if !dt.zoned {
		return dt.clock
	}
	return dt.clock.Add(-time.Duration(dt.offset) * time.Second).In(time.FixedZone("", dt.offset))
}

// Date returns the calendar date part of dt.
func (dt DateTime) Date() Date {
	return DateOf(dt.clock)
}

// String returns the canonical ISO-8601 form: YYYY-MM-DDTHH:MM:SS, then a
// fraction only when non-zero, then +HH:MM for zoned values. The fraction is
// always widened to 6 digits, or 9 when sub-microsecond, so ".5" parses and
// renders as ".500000" and ".1234567" as ".123456700".
func (dt DateTime) String() string {
	var b strings.Builder
	b.WriteString(dt.clock.Format("2006-01-02T15:04:05"))
	if ns := dt.clock.Nanosecond(); ns != 0 {
		if ns%1000 == 0 {
			fmt.Fprintf(&b, ".%06d", ns/1000)
		} else {
			fmt.Fprintf(&b, ".%09d", ns)
		}
	}
	if dt.zoned {
		sign, off := '+', dt.offset
		if off < 0 {
			sign, off = '-', -off
		}
		fmt.Fprintf(&b, "%c%02d:%02d", sign, off/3600, off%3600/60)
		if off%60 != 0 {
			fmt.Fprintf(&b, ":%02d", off%60)
		}
	}
	return b.String()
}

// RecognizeDate returns the Date or DateTime that s denotes. Strings that
// look like dates but fail strict parsing are not recognized.
func RecognizeDate(s string) (Value, bool) {
	if dateTimePrefRegex.MatchString(s) {
		if dt, err := ParseDateTime(s); err == nil {
			return dt, true
		}
		return nil, false
	}
	if dateOnlyRegex.MatchString(s) {
		if d, err := ParseDate(s); err == nil {
			return d, true
		}
	}
	return nil, false
}
