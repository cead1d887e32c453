package bot

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/assistant-bot/assistant-bot/internal/config"
	"github.com/assistant-bot/assistant-bot/internal/contacts"
	"github.com/assistant-bot/assistant-bot/internal/engine"
)

// add appends a phone to an existing contact or creates the contact.
// A rejected phone never creates a contact.
func (b *Bot) add(name, phone string) (Reply, error) {
	if r, ok := b.Book.Find(name); ok {
		if err := r.AddPhone(phone); err != nil {
			return Reply{}, err
		}
		return b.reply(config.TKeyPhoneAdded, map[string]interface{}{"Name": name, "Phone": phone}), nil
	}

	r := contacts.NewRecord(name)
	if err := r.AddPhone(phone); err != nil {
		return Reply{}, err
	}
	b.Book.AddRecord(r)
	return b.reply(config.TKeyContactAdded, map[string]interface{}{"Name": name, "Phone": phone}), nil
}

// change accepts "name new" (edits the first phone) and "name old new".
func (b *Bot) change(args []string) (Reply, error) {
	name := args[0]
	r, ok := b.Book.Find(name)
	if !ok {
		return b.noContact(name), nil
	}

	var oldPhone, newPhone string
	if len(args) >= 3 {
		oldPhone, newPhone = args[1], args[2]
	} else {
		newPhone = args[1]
		// An empty old value matches nothing, so a record without phones reports it.
		if phones := r.Phones(); len(phones) > 0 {
			oldPhone = phones[0].String()
		}
	}

	if err := r.EditPhone(oldPhone, newPhone); err != nil {
		return Reply{}, err
	}
	return b.reply(config.TKeyPhoneChanged, map[string]interface{}{"Name": name, "Phone": newPhone}), nil
}

// phones answers the same way for a missing contact and a contact without phones.
func (b *Bot) phones(name string) Reply {
	r, ok := b.Book.Find(name)
	if !ok || len(r.Phones()) == 0 {
		return b.reply(config.TKeyNoPhones, map[string]interface{}{"Name": name})
	}
	return b.reply(config.TKeyPhones, map[string]interface{}{"Name": name, "Phones": r.PhoneList()})
}

func (b *Bot) removePhone(name, phone string) Reply {
	r, ok := b.Book.Find(name)
	if !ok {
		return b.noContact(name)
	}
	data := map[string]interface{}{"Name": name, "Phone": phone}
	if _, found := r.FindPhone(phone); !found {
		return b.reply(config.TKeyPhoneMissing, data)
	}
	r.RemovePhone(phone)
	return b.reply(config.TKeyPhoneRemoved, data)
}

func (b *Bot) all() Reply {
	if b.Book.Len() == 0 {
		return b.reply(config.TKeyNoContacts, nil)
	}
	lines := []string{b.msg(config.TKeyContactsHeader, nil)}
	for _, r := range b.Book.Records() {
		lines = append(lines, r.String())
	}
	return Reply{Text: strings.Join(lines, config.ReplyLineBreak)}
}

func (b *Bot) addBirthday(name, date string) (Reply, error) {
	r, ok := b.Book.Find(name)
	if !ok {
		return b.noContact(name), nil
	}
	if err := r.AddBirthday(date); err != nil {
		return Reply{}, err
	}
	bday, _ := r.Birthday()
	return b.reply(config.TKeyBirthdayAdded, map[string]interface{}{"Name": name, "Birthday": bday.String()}), nil
}

func (b *Bot) showBirthday(name string) Reply {
	if r, ok := b.Book.Find(name); ok {
		if bday, set := r.Birthday(); set {
			return b.reply(config.TKeyBirthdayShow, map[string]interface{}{"Name": name, "Birthday": bday.String()})
		}
	}
	return b.reply(config.TKeyNoBirthday, map[string]interface{}{"Name": name})
}

// birthdays lists upcoming birthdays relative to the optional DD.MM.YYYY
// argument, or to the clock's current date.
func (b *Bot) birthdays(args []string) (Reply, error) {
	today := engine.Today(b.Clock)
	if len(args) > 0 {
		d, err := contacts.ParseDate(args[0])
		if err != nil {
			return Reply{}, err
		}
		today = d
	}

	upcoming := b.Book.UpcomingBirthdays(today)
	if len(upcoming) == 0 {
		return b.reply(config.TKeyNoUpcoming, nil), nil
	}

	lines := []string{b.msg(config.TKeyUpcomingHeader, nil)}
	for _, u := range upcoming {
		lines = append(lines, fmt.Sprintf(config.UpcomingFormat, u.Name, u.FormattedDate()))
	}
	return Reply{Text: strings.Join(lines, config.ReplyLineBreak)}, nil
}

func (b *Bot) deleteContact(name string) (Reply, error) {
	if err := b.Book.Delete(name); err != nil {
		return Reply{}, err
	}
	return b.reply(config.TKeyContactDeleted, map[string]interface{}{"Name": name}), nil
}

func (b *Bot) export(path string) (Reply, error) {
	var buf bytes.Buffer
	if err := engine.ExportVCards(&buf, b.Book); err != nil {
		return Reply{}, err
	}
	if err := os.WriteFile(path, buf.Bytes(), config.FilePermUserRW); err != nil {
		return Reply{}, fmt.Errorf("%s: %w", config.ErrWriteFile, err)
	}
	return b.reply(config.TKeyExported, map[string]interface{}{"Count": b.Book.Len(), "Path": path}), nil
}

func (b *Bot) exportCalendar(ctx context.Context, path string) (Reply, error) {
	ics, err := b.calendar.Build(ctx, b.Book, b.Clock.Now(), b.reminder)
	if err != nil {
		return Reply{}, err
	}
	if err := os.WriteFile(path, ics, config.FilePermUserRW); err != nil {
		return Reply{}, fmt.Errorf("%s: %w", config.ErrWriteFile, err)
	}
	return b.reply(config.TKeyCalendarWritten, map[string]interface{}{"Path": path}), nil
}

// importContacts reads vCards from a file or URL. Remote sources use the
// logged-in user and the password kept in the credential store.
func (b *Bot) importContacts(ctx context.Context, source string) (Reply, error) {
	cfg := engine.ImportConfig{Source: source}

	if engine.IsRemote(source) && b.user != "" {
		cfg.User = b.user
		pass, err := b.Credentials.Get(b.user)
		if err != nil {
			slog.Warn(config.MsgPassFail,
				config.LogKeyComponent, config.CompBot,
				config.LogKeyUser, b.user,
				config.LogKeyError, err,
			)
		}
		cfg.Pass = pass
	}

	stats, err := b.Importer.Import(ctx, cfg, b.Book)
	if err != nil {
		return Reply{}, err
	}
	return b.reply(config.TKeyImported, map[string]interface{}{
		"Imported":      stats.Imported,
		"Cards":         stats.Cards,
		"Source":        source,
		"SkippedCards":  stats.SkippedCards,
		"SkippedPhones": stats.SkippedPhones,
		"SkippedDates":  stats.SkippedDates,
	}), nil
}

func (b *Bot) login(user, password string) (Reply, error) {
	if err := b.Credentials.Set(user, password); err != nil {
		return Reply{}, fmt.Errorf("%s: %w", config.ErrKeyringSave, err)
	}
	b.user = user
	return b.reply(config.TKeyLoggedIn, map[string]interface{}{"User": user}), nil
}

func (b *Bot) language(code string) Reply {
	if !b.SetLanguage(code) {
		return b.reply(config.TKeyLanguageUnknown, map[string]interface{}{
			"Lang":      code,
			"Available": strings.Join(b.languages, ", "),
		})
	}
	return b.reply(config.TKeyLanguageSet, map[string]interface{}{"Lang": b.lang})
}

func (b *Bot) help() Reply {
	lines := []string{b.msg(config.TKeyHelpHeader, nil)}
	for _, c := range commands {
		lines = append(lines, "  "+c.usage)
	}
	return Reply{Text: strings.Join(lines, config.ReplyLineBreak)}
}

func (b *Bot) noContact(name string) Reply {
	return b.reply(config.TKeyNoContact, map[string]interface{}{"Name": name})
}
