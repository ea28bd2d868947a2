package readinglog

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the serialized form of a Date
const DateLayout = "2006-01-02"

var now = time.Now

// Date represents a calendar day. The embedded time is always midnight UTC,
// so two Dates for the same day compare equal and can be used as map keys.
type Date struct {
	time.Time
}

// NewDate creates a Date for the given calendar day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location
func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

// Today returns the local calendar day
func Today() Date {
	return DateOf(now())
}

// ParseDate parses YYYY-MM-DD, and also RFC3339 or RFC3339Nano timestamps for which
// only the date part is kept.
func ParseDate(value string) (Date, error) {
	for _, layout := range []string{DateLayout, time.RFC3339, time.RFC3339Nano} {
		t, err := time.Parse(layout, value)
		if err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: unable to parse date '%s': expected YYYY-MM-DD, RFC3339, or RFC3339Nano format", ErrInvalidInput, value)
}

// AddDays returns the day n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return DateOf(d.AddDate(0, 0, n))
}

// normalized drops any time of day or location a caller may have put in the struct literal
func (d Date) normalized() Date {
	if d.IsZero() {
		return d
	}
	return DateOf(d.Time)
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalYAML implements the yaml.Marshaler interface
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDate(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
