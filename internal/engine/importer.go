package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/emersion/go-vcard"

	"github.com/assistant-bot/assistant-bot/internal/config"
	"github.com/assistant-bot/assistant-bot/internal/contacts"
)

// ImportConfig describes where vCards are read from.
type ImportConfig struct {
	Source string // Local path or http(s) URL
	User   string // HTTP Basic Auth Username
	Pass   string // HTTP Basic Auth Password
}

// ImportStats summarizes one import run.
type ImportStats struct {
	Cards         int // Cards decoded successfully
	Imported      int // Records written to the book
	SkippedCards  int // Malformed cards or cards without a name
	SkippedPhones int // TEL values rejected by phone validation
	SkippedDates  int // BDAY values without a usable full date
}

// Importer loads vCards into an address book.
type Importer struct {
	Fetcher VCardFetcher // Used when the source is a URL.
}

// IsRemote reports whether source should be fetched over HTTP.
func IsRemote(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return u.Scheme == config.SchemeHTTP || u.Scheme == config.SchemeHTTPS
}

// Import decodes every card from the source and stores it in book.
// A card whose name already exists replaces the existing record.
func (im *Importer) Import(ctx context.Context, cfg ImportConfig, book *contacts.AddressBook) (ImportStats, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeySource, sourceForLog(cfg.Source),
	)
	log.InfoContext(ctx, config.MsgImportStarted)

	reader, err := im.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return ImportStats{}, ctx.Err()
		}
		return ImportStats{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	var stats ImportStats
	decoder := vcard.NewDecoder(reader)

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Stop at the first malformed card; records imported so far are kept.
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			stats.SkippedCards++
			break
		}
		stats.Cards++

		r, ok := cardToRecord(card, &stats)
		if !ok {
			log.Debug(config.MsgSkippedName)
			stats.SkippedCards++
			continue
		}

		book.AddRecord(r)
		stats.Imported++
	}

	log.Info(config.MsgImportDone,
		config.LogKeyTotal, stats.Cards,
		config.LogKeyImported, stats.Imported,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return stats, nil
}

// acquireStream opens the local file or downloads the remote address book.
func (im *Importer) acquireStream(ctx context.Context, cfg ImportConfig) (io.ReadCloser, error) {
	if cfg.Source == "" {
		return nil, errors.New(config.ErrSourceEmpty)
	}
	if !IsRemote(cfg.Source) {
		return os.Open(cfg.Source)
	}
	if im.Fetcher == nil {
		return nil, errors.New(config.ErrFetcherMissing)
	}
	return im.Fetcher.Fetch(ctx, cfg.Source, cfg.User, cfg.Pass)
}

// sourceForLog strips query strings that may carry tokens.
func sourceForLog(source string) string {
	if !IsRemote(source) {
		return source
	}
	u, _ := url.Parse(source)
	return u.Scheme + "://" + u.Host + u.Path
}
