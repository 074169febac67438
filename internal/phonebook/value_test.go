package phonebook_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/phonebook"
)

func TestParsePhone_ValidRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	samples := []string{"0000000000", "9999999999", "0501234567"}
	for i := 0; i < 500; i++ {
		samples = append(samples, fmt.Sprintf("%010d", rng.Int63n(10_000_000_000)))
	}

	for _, raw := range samples {
		p, err := phonebook.ParsePhone(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, p.String())
	}
}

func TestParsePhone_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"Empty", ""},
		{"TooShort", "123456789"},
		{"TooLong", "12345678901"},
		{"Letters", "05012345a7"},
		{"Dashes", "050-123-45"},
		{"Formatted", "050-123-4567"},
		{"Plus", "+380501234567"},
		{"LeadingSpace", " 050123456"},
		{"TrailingSpace", "0501234567 "},
		{"FullWidthDigits", "０１２３４５６７８９"},
		{"ArabicIndicDigits", "٠١٢٣٤٥٦٧٨٩"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := phonebook.ParsePhone(tt.raw)
			require.Error(t, err)

			var verr *phonebook.ValidationError
			require.True(t, errors.As(err, &verr), "expected a ValidationError")
			assert.Equal(t, config.ErrPhoneDigits, err.Error())
			assert.Equal(t, tt.raw, verr.Value)
		})
	}
}

func TestParseBirthday_RoundTrip(t *testing.T) {
	// Every day of a common year, a leap year and a century leap year.
	for _, year := range []int{1999, 2000, 2024} {
		d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		for d.Year() == year {
			raw := d.Format(config.DateFormatBirthday)
			b, err := phonebook.ParseBirthday(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, raw, b.String())
			assert.Equal(t, d, b.Date())
			d = d.AddDate(0, 0, 1)
		}
	}
}

func TestParseBirthday_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"Empty", ""},
		{"ISO", "2020-01-01"},
		{"Slashes", "01/01/2020"},
		{"UnpaddedDay", "1.01.2020"},
		{"UnpaddedMonth", "01.1.2020"},
		{"ShortYear", "01.01.20"},
		{"MonthOutOfRange", "01.13.2020"},
		{"DayZero", "00.01.2020"},
		{"Feb30", "30.02.2024"},
		{"Feb29CommonYear", "29.02.2023"},
		{"April31", "31.04.2024"},
		{"TrailingText", "01.01.2020x"},
		{"Words", "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := phonebook.ParseBirthday(tt.raw)
			require.Error(t, err)

			var verr *phonebook.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, config.ErrBirthdayFormat, err.Error())
		})
	}
}

func TestBirthday_OccurrenceIn(t *testing.T) {
	leap := phonebook.NewBirthday(2000, time.February, 29)

	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), leap.OccurrenceIn(2024))
	assert.Equal(t, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), leap.OccurrenceIn(2023),
		"Feb 29 resolves to March 1st in a common year")

	plain := phonebook.NewBirthday(1990, time.April, 15)
	assert.Equal(t, time.Date(2031, time.April, 15, 0, 0, 0, 0, time.UTC), plain.OccurrenceIn(2031))
}
