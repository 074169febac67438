package feed

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/phonebook"
)

// Calendar renders directory snapshots as an iCalendar birthday feed.
type Calendar struct {
	Clock phonebook.Clock

	// FormatSummary overrides the event title. Nil uses config.FallbackSummary.
	FormatSummary func(name string) string
}

// Render builds a VCALENDAR with one all-day event per contact birthday for
// the previous, current and next year.
func (c *Calendar) Render(records []*phonebook.Record) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	now := c.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	withBirthday := 0
	for _, r := range records {
		b, ok := r.Birthday()
		if !ok {
			continue
		}
		withBirthday++
		for _, e := range c.events(r.Name(), b, now.Year()) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	if len(cal.Children) == 0 {
		c.logSuccess(len(records), 0)
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	c.logSuccess(len(records), withBirthday)
	return buf.Bytes(), nil
}

func (c *Calendar) events(name string, b phonebook.Birthday, currentYear int) []*ical.Event {
	uidBase := eventUID(name, b)
	summary := fmt.Sprintf(config.FallbackSummary, name)
	if c.FormatSummary != nil {
		summary = c.FormatSummary(name)
	}

	var events []*ical.Event
	for _, y := range []int{currentYear - 1, currentYear, currentYear + 1} {
		// No event before the person was born.
		if y < b.Date().Year() {
			continue
		}
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(b.OccurrenceIn(y))
		event.Props.Set(dtStartProp)

		events = append(events, event)
	}
	return events
}

// eventUID is stable across renders so calendar clients update rather than duplicate events.
func eventUID(name string, b phonebook.Birthday) string {
	input := fmt.Sprintf(config.FormatHashInput, name, b.Date().Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

func (c *Calendar) logSuccess(total, withBirthday int) {
	slog.Debug(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompFeed,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, total),
			slog.Int(config.LogKeyFound, withBirthday),
		),
	)
}
