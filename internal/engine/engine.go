package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"

	"github.com/assistant-bot/assistant-bot/internal/config"
	"github.com/assistant-bot/assistant-bot/internal/contacts"
)

// CalendarBuilder renders the birthdays of an address book as an iCalendar document.
type CalendarBuilder struct {
	// FormatSummary lets the caller inject localized event titles.
	FormatSummary func(name string, age int) string
}

// Build generates one all-day event per contact for the previous, current and next year.
// reminderTrigger, when set, is an ISO8601 duration (e.g. "-P1D") for a DISPLAY alarm.
func (c *CalendarBuilder) Build(ctx context.Context, book *contacts.AddressBook, now time.Time, reminderTrigger string) ([]byte, error) {
	start := time.Now()

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	// Set manually so the non-standard property carries no "VALUE=TEXT" param.
	calName := ical.NewProp(config.PropXWRCalName)
	calName.Value = config.ICalCalName
	cal.Props.Set(calName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: suggest a refresh interval to subscribed clients.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	stats := struct{ contacts, events int }{}

	for _, r := range book.Records() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		bday, ok := r.Birthday()
		if !ok {
			continue
		}
		stats.contacts++

		for _, e := range c.createEvents(r.Name(), bday.Date(), reminderTrigger, now) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
			stats.events++
		}
	}

	// An empty VCALENDAR keeps subscribed clients from flagging the feed as invalid.
	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyContacts, stats.contacts,
		config.LogKeyEvents, stats.events,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// createEvents generates events for now.Year()-1 through now.Year()+1,
// skipping years before the contact was born.
func (c *CalendarBuilder) createEvents(name string, birthDate time.Time, reminderTrigger string, now time.Time) []*ical.Event {
	currentYear := now.Year()
	uidBase := ContactUID(name)

	var events []*ical.Event
	for _, y := range []int{currentYear - 1, currentYear, currentYear + 1} {
		if y < birthDate.Year() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatEventUID, uidBase, y, config.ICalDomain))

		summary := c.summary(name, y-birthDate.Year())
		event.Props.SetText(config.PropSummary, summary)

		// Feb 29 lands on Mar 1 in common years, as in the birthdays query.
		eventDate := time.Date(y, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, summary)
		}

		events = append(events, event)
	}
	return events
}

func (c *CalendarBuilder) summary(name string, age int) string {
	if c.FormatSummary != nil {
		return c.FormatSummary(name, age)
	}
	return FallbackSummary(name, age)
}

// FallbackSummary is the English event title used when no localizer is available.
func FallbackSummary(name string, age int) string {
	if age == 0 {
		return fmt.Sprintf(config.FallbackSummaryBirth, name)
	}
	return fmt.Sprintf(config.FallbackSummaryAge, name, age)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
