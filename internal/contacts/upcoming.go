package contacts

import (
	"time"

	"github.com/assistant-bot/assistant-bot/internal/config"
)

// UpcomingBirthday is one row of the upcoming birthdays query.
type UpcomingBirthday struct {
	Name string

	// Birthday is the qualifying occurrence inside the window.
	Birthday time.Time

	// CongratulationDate is Birthday moved off the weekend to the following Monday.
	CongratulationDate time.Time

	// Age is the age the contact turns on Birthday.
	Age int
}

// FormattedDate renders the congratulation date as DD.MM.YYYY.
func (u UpcomingBirthday) FormattedDate() string {
	return FormatDate(u.CongratulationDate)
}

// UpcomingBirthdays lists the contacts whose next birthday falls within
// config.UpcomingWindowDays days of today, both ends inclusive, in book order.
// Only the calendar date of today is used.
func (b *AddressBook) UpcomingBirthdays(today time.Time) []UpcomingBirthday {
	start := dateOnly(today)
	var out []UpcomingBirthday

	for _, r := range b.Records() {
		bday, ok := r.Birthday()
		if !ok {
			continue
		}

		next := NextOccurrence(start, bday.Date())
		days := daysBetween(start, next)
		if days < 0 || days > config.UpcomingWindowDays {
			continue
		}

		// Shifted after the window check; the shift only affects what is shown.
		out = append(out, UpcomingBirthday{
			Name:               r.Name(),
			Birthday:           next,
			CongratulationDate: CongratulationDate(next),
			Age:                next.Year() - bday.Date().Year(),
		})
	}
	return out
}

// NextOccurrence returns the first anniversary of birthDate on or after today.
// Feb 29 becomes Mar 1 in years without a leap day, as time.Date normalizes it.
func NextOccurrence(today, birthDate time.Time) time.Time {
	start := dateOnly(today)
	candidate := time.Date(start.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	if candidate.Before(start) {
		candidate = time.Date(start.Year()+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	}
	return candidate
}

// CongratulationDate moves Saturday and Sunday forward to Monday.
func CongratulationDate(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

// dateOnly drops the clock and zone so day arithmetic is immune to DST.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
