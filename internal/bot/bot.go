package bot

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/assistant-bot/assistant-bot/internal/config"
	"github.com/assistant-bot/assistant-bot/internal/contacts"
	"github.com/assistant-bot/assistant-bot/internal/engine"
)

// ErrUnknownCommand is returned for input whose first word is not a command.
var ErrUnknownCommand = errors.New(config.ErrUnknownCommand)

// UsageError reports a command called with too few arguments.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return config.ErrUsage + ": " + e.Usage
}

// Publisher receives fresh documents after every change to the book.
type Publisher interface {
	UpdateCalendar(data []byte)
	UpdateContacts(data []byte)
}

// Reply is the outcome of a successful command.
type Reply struct {
	Text string
	Exit bool // The loop stops after printing Text.
}

// Bot owns the address book and maps commands onto it.
// It is not safe for concurrent use; only published snapshots leave it.
type Bot struct {
	Book        *contacts.AddressBook
	Clock       engine.Clock
	Importer    *engine.Importer
	Credentials CredentialStore
	Publisher   Publisher // Optional

	user     string
	reminder string
	calendar *engine.CalendarBuilder

	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	languages []string
	lang      string
}

// New creates a bot with an empty address book.
func New(settings *config.Settings, fetcher engine.VCardFetcher) *Bot {
	bundle, langs := newBundle()

	b := &Bot{
		Book:        contacts.NewAddressBook(),
		Clock:       engine.RealClock{},
		Importer:    &engine.Importer{Fetcher: fetcher},
		Credentials: KeyringStore{Service: config.KeyringService},
		user:        settings.CardDAVUser,
		reminder:    settings.ReminderTrigger,
		bundle:      bundle,
		languages:   langs,
	}
	b.calendar = &engine.CalendarBuilder{FormatSummary: b.eventSummary}

	if !b.SetLanguage(settings.Language) {
		if settings.Language != "" {
			slog.Warn(config.MsgLangFallback,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyLang, settings.Language,
			)
		}
		b.SetLanguage(config.DefaultLanguage)
	}
	return b
}

// Execute runs one command against the book. It performs no terminal I/O.
func (b *Bot) Execute(ctx context.Context, cmd Command, args []string) (Reply, error) {
	if cmd == CmdNone {
		return Reply{}, nil
	}
	s, ok := specs[cmd]
	if !ok {
		return Reply{}, ErrUnknownCommand
	}
	if len(args) < s.minArgs {
		return Reply{}, &UsageError{Usage: s.usage}
	}

	var (
		reply Reply
		err   error
	)

	switch cmd {
	case CmdHello:
		reply = b.reply(config.TKeyHello, nil)
	case CmdAdd:
		reply, err = b.add(args[0], args[1])
	case CmdChange:
		reply, err = b.change(args)
	case CmdPhone:
		reply = b.phones(args[0])
	case CmdRemovePhone:
		reply = b.removePhone(args[0], args[1])
	case CmdAll:
		reply = b.all()
	case CmdAddBirthday:
		reply, err = b.addBirthday(args[0], args[1])
	case CmdShowBirthday:
		reply = b.showBirthday(args[0])
	case CmdBirthdays:
		reply, err = b.birthdays(args)
	case CmdDelete:
		reply, err = b.deleteContact(args[0])
	case CmdExport:
		reply, err = b.export(args[0])
	case CmdExportICS:
		reply, err = b.exportCalendar(ctx, args[0])
	case CmdImport:
		reply, err = b.importContacts(ctx, args[0])
	case CmdLogin:
		reply, err = b.login(args[0], args[1])
	case CmdLang:
		reply = b.language(args[0])
	case CmdHelp:
		reply = b.help()
	case CmdExit:
		reply = Reply{Text: b.msg(config.TKeyGoodbye, nil), Exit: true}
	}

	if err == nil && s.mutates {
		b.Publish(ctx)
	}
	return reply, err
}

// Render turns the result of Execute into the text shown to the user.
func (b *Bot) Render(reply Reply, err error) string {
	if err == nil {
		return reply.Text
	}

	var (
		usage      *UsageError
		validation *contacts.ValidationError
		notFound   *contacts.NotFoundError
	)

	switch {
	case errors.Is(err, ErrUnknownCommand):
		return b.msg(config.TKeyInvalidCommand, nil)
	case errors.As(err, &usage):
		return b.msg(config.TKeyUsage, map[string]interface{}{"Usage": usage.Usage})
	case errors.As(err, &validation):
		return b.translate(validation.MessageID, validation.Msg)
	case errors.As(err, &notFound):
		return b.translate(config.TKeyErrNameNotFound, notFound.Error())
	default:
		return b.msg(config.TKeyOperationFailed, map[string]interface{}{"Error": err.Error()})
	}
}

// Publish pushes the current calendar and vCard export to the Publisher, if any.
func (b *Bot) Publish(ctx context.Context) {
	if b.Publisher == nil {
		return
	}
	log := slog.With(config.LogKeyComponent, config.CompBot)

	ics, err := b.calendar.Build(ctx, b.Book, b.Clock.Now(), b.reminder)
	if err != nil {
		log.Error(config.MsgPublishFailed, config.LogKeyFeed, config.RouteCalendar, config.LogKeyError, err)
	} else {
		b.Publisher.UpdateCalendar(ics)
	}

	var buf bytes.Buffer
	if err := engine.ExportVCards(&buf, b.Book); err != nil {
		log.Error(config.MsgPublishFailed, config.LogKeyFeed, config.RouteContacts, config.LogKeyError, err)
		return
	}
	b.Publisher.UpdateContacts(buf.Bytes())
}

func (b *Bot) reply(key string, data map[string]interface{}) Reply {
	return Reply{Text: b.msg(key, data)}
}

// translate falls back to the English text when key has no translation.
func (b *Bot) translate(key, fallback string) string {
	if text := b.msg(key, nil); text != key {
		return text
	}
	return fallback
}
