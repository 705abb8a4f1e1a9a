package dates

import (
	"fmt"
	"time"
)

// Normalize returns the UTC midnight of the calendar day denoted by t in its
// own location. Two values naming the same calendar day normalize equal no
// matter their time of day or timezone.
func Normalize(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Codec renders and parses the public date-only string format. One layout is
// configured globally (DATE_FORMAT); every date crossing the wire goes
// through it.
type Codec struct {
	layout string
}

func NewCodec(layout string) Codec {
	return Codec{layout: layout}
}

func (c Codec) Format(t time.Time) string {
	return t.Format(c.layout)
}

// Parse decodes a date-only string, rejecting anything that does not match
// the configured layout exactly.
func (c Codec) Parse(value string) (time.Time, error) {
	t, err := time.Parse(c.layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse date '%s': expected format '%s'", value, c.layout)
	}
	return Normalize(t), nil
}
