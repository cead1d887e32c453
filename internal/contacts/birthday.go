package contacts

import (
	"time"

	"github.com/assistant-bot/assistant-bot/internal/config"
)

// Birthday keeps the DD.MM.YYYY text the user entered together with the parsed date.
type Birthday struct {
	value string
	date  time.Time
}

// NewBirthday parses raw as a real Gregorian date in DD.MM.YYYY form.
func NewBirthday(raw string) (Birthday, error) {
	d, err := ParseDate(raw)
	if err != nil {
		return Birthday{}, err
	}
	return Birthday{value: raw, date: d}, nil
}

// ParseDate parses a DD.MM.YYYY string into a UTC midnight time.
// Impossible dates such as 31.02.2024 or 29.02.2023 are rejected, as is year 0000.
func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(config.DateFormatDisplay, raw)
	if err != nil || d.Year() < 1 {
		return time.Time{}, errDateFormat()
	}
	return d, nil
}

// FormatDate renders t as DD.MM.YYYY.
func FormatDate(t time.Time) string {
	return t.Format(config.DateFormatDisplay)
}

func (b Birthday) String() string { return b.value }

// Date returns the parsed calendar date at UTC midnight.
func (b Birthday) Date() time.Time { return b.date }
