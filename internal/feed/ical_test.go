package feed_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/feed"
	"github.com/tartampluch/go-phonebook/internal/phonebook"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func TestCalendar_Render(t *testing.T) {
	cal := &feed.Calendar{Clock: MockClock{CurrentTime: time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)}}

	data, err := cal.Render([]*phonebook.Record{
		record(t, "John Doe", "15.04.1990", "1234567890"),
		record(t, "Leap Baby", "29.02.2000", "0000000000"),
		record(t, "No Birthday", "", "1111111111"),
	})
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "PRODID:"+config.ICalProdid)
	assert.Contains(t, ics, "SUMMARY:Birthday: John Doe")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20230415")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20240229", "leap year keeps Feb 29")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20230301", "common year moves to March 1st")
	assert.NotContains(t, ics, "No Birthday")
	assert.Equal(t, 6, strings.Count(ics, "BEGIN:VEVENT"), "three years for each of two contacts")
}

func TestCalendar_Render_NotBeforeBirth(t *testing.T) {
	cal := &feed.Calendar{Clock: MockClock{CurrentTime: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}}

	data, err := cal.Render([]*phonebook.Record{record(t, "Baby", "10.01.2024", "1234567890")})
	require.NoError(t, err)

	ics := string(data)
	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
	assert.NotContains(t, ics, "20230110")
}

func TestCalendar_Render_StableUIDs(t *testing.T) {
	cal := &feed.Calendar{Clock: MockClock{CurrentTime: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}}
	recs := []*phonebook.Record{record(t, "John", "15.04.1990", "1234567890")}

	first, err := cal.Render(recs)
	require.NoError(t, err)
	second, err := cal.Render(recs)
	require.NoError(t, err)

	assert.Equal(t, uidLines(string(first)), uidLines(string(second)))
	assert.Len(t, uidLines(string(first)), 3)
}

func TestCalendar_Render_CustomSummary(t *testing.T) {
	cal := &feed.Calendar{
		Clock:         MockClock{CurrentTime: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		FormatSummary: func(name string) string { return "Call " + name },
	}

	data, err := cal.Render([]*phonebook.Record{record(t, "John", "15.04.1990", "1234567890")})
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Call John")
}

func TestCalendar_Render_Empty(t *testing.T) {
	cal := &feed.Calendar{Clock: MockClock{CurrentTime: time.Now()}}

	data, err := cal.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func uidLines(ics string) []string {
	var out []string
	for _, line := range strings.Split(ics, "\r\n") {
		if strings.HasPrefix(line, "UID:") {
			out = append(out, line)
		}
	}
	return out
}
