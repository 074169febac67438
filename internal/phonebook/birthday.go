package phonebook

import (
	"time"

	"github.com/tartampluch/go-phonebook/internal/config"
)

// Birthday is a calendar date without a time component.
// It is stored at midnight UTC so that day arithmetic never crosses a DST shift.
type Birthday struct {
	date time.Time
}

// ParseBirthday accepts a DD.MM.YYYY string denoting a real calendar date.
// time.Parse rejects out-of-range days, including Feb 29 in common years.
func ParseBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(config.DateFormatBirthday, raw)
	if err != nil {
		return Birthday{}, &ValidationError{
			Field:   fieldBirthday,
			Value:   raw,
			Message: config.ErrBirthdayFormat,
		}
	}
	return Birthday{date: t}, nil
}

// NewBirthday builds a Birthday from calendar components.
// The components must already form a real date; ParseBirthday is the validating path.
func NewBirthday(year int, month time.Month, day int) Birthday {
	return Birthday{date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Date returns the birthday as midnight UTC.
func (b Birthday) Date() time.Time {
	return b.date
}

// OccurrenceIn returns the date the birthday falls on in year.
// Go's time.Date normalizes Feb 29 to March 1st when year is not a leap year.
func (b Birthday) OccurrenceIn(year int) time.Time {
	return time.Date(year, b.date.Month(), b.date.Day(), 0, 0, 0, 0, time.UTC)
}

// String renders the birthday as DD.MM.YYYY.
func (b Birthday) String() string {
	return b.date.Format(config.DateFormatBirthday)
}
