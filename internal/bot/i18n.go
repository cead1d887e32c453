package bot

import (
	"embed"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/assistant-bot/assistant-bot/internal/config"
	"github.com/assistant-bot/assistant-bot/internal/engine"
)

//go:embed locales/*.json
var localeFS embed.FS

// newBundle loads every embedded locale file and returns the detected language codes.
func newBundle() (*i18n.Bundle, []string) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return bundle, nil
	}

	var detectedLangs []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	return bundle, detectedLangs
}

// SetLanguage switches the reply language. It reports false, leaving the
// current language untouched, when no locale was loaded for lang.
func (b *Bot) SetLanguage(lang string) bool {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !slices.Contains(b.languages, lang) {
		return false
	}
	b.lang = lang
	b.localizer = i18n.NewLocalizer(b.bundle, lang, config.DefaultLanguage)
	return true
}

// Language returns the active reply language.
func (b *Bot) Language() string {
	return b.lang
}

// Languages returns the language codes found in the embedded locales.
func (b *Bot) Languages() []string {
	return slices.Clone(b.languages)
}

// msg translates key with optional template data. Missing keys come back verbatim.
func (b *Bot) msg(key string, data map[string]interface{}) string {
	if b.localizer == nil {
		return key
	}
	text, err := b.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return text
}

// eventSummary renders calendar titles in the active language.
func (b *Bot) eventSummary(name string, age int) string {
	key := config.TKeyEvtSummaryAge
	if age == 0 {
		key = config.TKeyEvtSummaryBirth
	}
	text := b.msg(key, map[string]interface{}{"Name": name, "Age": age})
	if text == key {
		return engine.FallbackSummary(name, age)
	}
	return text
}
