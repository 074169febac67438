package phonebook

import (
	"slices"
	"sync"
	"time"

	"github.com/tartampluch/go-phonebook/internal/config"
)

// Directory maps contact names to records and owns every record it holds.
// Enumeration follows key insertion order: replacing a key keeps its slot,
// deleting and re-adding moves it to the end.
//
// Mutations take the exclusive lock and queries the shared lock, so a feed
// renderer reading a snapshot never observes a half-applied change.
type Directory struct {
	mu      sync.RWMutex
	records map[string]*Record
	order   []string
}

// UpcomingBirthday is one row of the upcoming-birthdays query.
type UpcomingBirthday struct {
	Name      string
	Date      time.Time // the occurrence, midnight UTC
	DaysUntil int
}

// FormattedDate renders the occurrence as DD.MM.YYYY.
func (u UpcomingBirthday) FormattedDate() string {
	return u.Date.Format(config.DateFormatBirthday)
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{records: make(map[string]*Record)}
}

// AddRecord stores r under its name. An existing record with the same name is
// replaced entirely.
func (d *Directory) AddRecord(r *Record) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.records[r.name]; !ok {
		d.order = append(d.order, r.name)
	}
	d.records[r.name] = r
}

// Find returns the stored record for name.
// The pointer is the directory's own record; concurrent callers should mutate through Update.
func (d *Directory) Find(name string) (*Record, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r, ok := d.records[name]
	if !ok {
		return nil, notFound(name)
	}
	return r, nil
}

// Delete removes name. Unknown names are ignored.
func (d *Directory) Delete(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.records[name]; !ok {
		return
	}
	delete(d.records, name)
	d.order = slices.DeleteFunc(d.order, func(n string) bool { return n == name })
}

// Update runs fn on the stored record for name while holding the exclusive lock.
// Errors from fn are returned unchanged.
func (d *Directory) Update(name string, fn func(*Record) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	r, ok := d.records[name]
	if !ok {
		return notFound(name)
	}
	return fn(r)
}

// Len returns the number of records.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.records)
}

// Records returns deep copies of all records in directory order.
func (d *Directory) Records() []*Record {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Record, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.records[name].Clone())
	}
	return out
}

// UpcomingBirthdays lists contacts whose birthday falls within the seven days
// starting at today (today included).
func (d *Directory) UpcomingBirthdays(today time.Time) []UpcomingBirthday {
	return d.UpcomingBirthdaysWithin(today, config.UpcomingWindowDays)
}

// UpcomingBirthdaysWithin is UpcomingBirthdays with a window of days instead of seven.
// Only the calendar date of today is used; its clock time and location are ignored.
func (d *Directory) UpcomingBirthdaysWithin(today time.Time, days int) []UpcomingBirthday {
	d.mu.RLock()
	defer d.mu.RUnlock()

	start := calendarDate(today)
	var out []UpcomingBirthday
	for _, name := range d.order {
		r := d.records[name]
		if r.birthday == nil {
			continue
		}
		occ := nextOccurrence(start, *r.birthday)
		delta := daysBetween(start, occ)
		if delta >= 0 && delta < days {
			out = append(out, UpcomingBirthday{Name: name, Date: occ, DaysUntil: delta})
		}
	}
	return out
}

// nextOccurrence substitutes today's year into the birthday and rolls to next
// year when that date is already strictly in the past.
func nextOccurrence(today time.Time, b Birthday) time.Time {
	occ := b.OccurrenceIn(today.Year())
	if occ.Before(today) {
		occ = b.OccurrenceIn(today.Year() + 1)
	}
	return occ
}

// calendarDate keeps the wall-clock date of t and moves it to midnight UTC.
func calendarDate(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole days from a to b; both must be midnight UTC.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / config.HoursPerDay)
}

func notFound(name string) error {
	return &NotFoundError{Kind: kindContact, Key: name, Message: config.ErrContactNotFound}
}
