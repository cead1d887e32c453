package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"

	"github.com/assistant-bot/assistant-bot/internal/config"
	"github.com/assistant-bot/assistant-bot/internal/contacts"
)

// ContactUID derives a stable identifier from the contact name, so repeated
// exports of the same contact carry the same UID.
func ContactUID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf(config.UIDFormat, name))).String()
}

// ExportVCards writes every record of book as a vCard 4.0, in book order.
func ExportVCards(w io.Writer, book *contacts.AddressBook) error {
	enc := vcard.NewEncoder(w)
	for _, r := range book.Records() {
		if err := enc.Encode(recordToCard(r)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return nil
}

func recordToCard(r *contacts.Record) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, config.VCardVersion)
	card.SetValue(vcard.FieldUID, ContactUID(r.Name()))
	card.SetValue(vcard.FieldFormattedName, r.Name())
	card.SetName(&vcard.Name{GivenName: r.Name()})

	for _, p := range r.Phones() {
		card.Add(vcard.FieldTelephone, &vcard.Field{
			Value:  p.String(),
			Params: vcard.Params{vcard.ParamType: {vcard.TypeCell}},
		})
	}

	if b, ok := r.Birthday(); ok {
		card.SetValue(vcard.FieldBirthday, b.Date().Format(config.DateFormatFullDash))
	}
	return card
}

// cardToRecord converts a decoded card. Phones and birthdays that do not pass
// contact validation are dropped and counted in stats.
func cardToRecord(card vcard.Card, stats *ImportStats) (*contacts.Record, bool) {
	name := card.Value(vcard.FieldFormattedName)
	if name == "" {
		if n := card.Name(); n != nil {
			name = n.GivenName
			if n.FamilyName != "" {
				name += " " + n.FamilyName
			}
		}
	}
	if name == "" {
		return nil, false
	}

	r := contacts.NewRecord(name)

	for _, tel := range card.Values(vcard.FieldTelephone) {
		if err := r.AddPhone(tel); err != nil {
			slog.Debug(config.MsgSkippedPhone,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, name,
				config.LogKeyValue, tel,
			)
			stats.SkippedPhones++
		}
	}

	if raw := card.Value(vcard.FieldBirthday); raw != "" {
		d, err := parseDate(raw)
		if err == nil {
			err = r.AddBirthday(contacts.FormatDate(d))
		}
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, name,
				config.LogKeyValue, raw,
			)
			stats.SkippedDates++
		}
	}
	return r, true
}

// parseDate handles the vCard BDAY formats that carry a year.
// Year-less values (--MM-DD) cannot become a Birthday and are rejected.
func parseDate(value string) (time.Time, error) {
	formats := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}
