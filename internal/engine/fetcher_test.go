package engine_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistant-bot/assistant-bot/internal/config"
	"github.com/assistant-bot/assistant-bot/internal/contacts"
	"github.com/assistant-bot/assistant-bot/internal/engine"
)

// exportBook renders the named contacts as a vCard stream, each with one phone.
func exportBook(t *testing.T, names ...string) []byte {
	t.Helper()
	book := contacts.NewAddressBook()
	for i, name := range names {
		r := contacts.NewRecord(name)
		require.NoError(t, r.AddPhone(fmt.Sprintf("555000000%d", i)))
		require.NoError(t, r.AddBirthday("12.05.1990"))
		book.AddRecord(r)
	}
	var buf bytes.Buffer
	require.NoError(t, engine.ExportVCards(&buf, book))
	return buf.Bytes()
}

// davServer serves body to requests authenticated as user/pass.
func davServer(t *testing.T, user, pass string, body []byte) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		assert.Equal(t, config.MimeAcceptVCard, r.Header.Get(config.HeaderAccept))

		u, p, ok := r.BasicAuth()
		if !ok || u != user || p != pass {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set(config.HeaderContentType, config.MimeTextVCard)
		_, _ = w.Write(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTPFetcher_ImportsRemoteBook(t *testing.T) {
	ts := davServer(t, "alice", "s3cret", exportBook(t, "Ann", "Bob"))

	book := contacts.NewAddressBook()
	im := &engine.Importer{Fetcher: engine.NewHTTPFetcher()}

	stats, err := im.Import(context.Background(), engine.ImportConfig{
		Source: ts.URL + "/addressbooks/alice/contacts/",
		User:   "alice",
		Pass:   "s3cret",
	}, book)

	require.NoError(t, err)
	assert.Equal(t, engine.ImportStats{Cards: 2, Imported: 2}, stats)

	ann, ok := book.Find("Ann")
	require.True(t, ok)
	assert.Equal(t, "Contact name: Ann, phones: 5550000000, birthday: 12.05.1990", ann.String())
	bob, ok := book.Find("Bob")
	require.True(t, ok)
	assert.Equal(t, "5550000001", bob.PhoneList())
}

func TestHTTPFetcher_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"Not found", http.StatusNotFound},
		{"Server error", http.StatusInternalServerError},
		{"Forbidden", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer ts.Close()

			book := contacts.NewAddressBook()
			_, err := (&engine.Importer{Fetcher: engine.NewHTTPFetcher()}).Import(context.Background(),
				engine.ImportConfig{Source: ts.URL}, book)

			require.Error(t, err)
			assert.Contains(t, err.Error(), config.ErrHTTPStatus)
			assert.Contains(t, err.Error(), fmt.Sprint(tt.status))
			assert.Zero(t, book.Len(), "A failed download imports nothing")
		})
	}
}

func TestHTTPFetcher_WrongPassword(t *testing.T) {
	ts := davServer(t, "alice", "s3cret", exportBook(t, "Ann"))

	rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "alice", "guess")

	assert.Nil(t, rc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestHTTPFetcher_Anonymous(t *testing.T) {
	body := exportBook(t, "Ann")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"), "No credentials, no Authorization header")
		_, _ = w.Write(body)
	}))
	defer ts.Close()

	book := contacts.NewAddressBook()
	stats, err := (&engine.Importer{Fetcher: engine.NewHTTPFetcher()}).Import(context.Background(),
		engine.ImportConfig{Source: ts.URL + "/public.vcf"}, book)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Imported)
}

// TestHTTPFetcher_SizeCap stops reading at MaxBytes; cards past the cap are not imported.
func TestHTTPFetcher_SizeCap(t *testing.T) {
	first := exportBook(t, "Ann")
	both := append(bytes.Clone(first), exportBook(t, "Bob")...)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(both)
	}))
	defer ts.Close()

	fetcher := engine.NewHTTPFetcher()
	fetcher.MaxBytes = int64(len(first))

	book := contacts.NewAddressBook()
	stats, err := (&engine.Importer{Fetcher: fetcher}).Import(context.Background(), engine.ImportConfig{Source: ts.URL}, book)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Imported)
	_, hasBob := book.Find("Bob")
	assert.False(t, hasBob)
}

// TestHTTPFetcher_Deadline ensures a slow server cannot stall the command loop.
func TestHTTPFetcher_Deadline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := (&engine.Importer{Fetcher: engine.NewHTTPFetcher()}).Import(ctx,
		engine.ImportConfig{Source: ts.URL}, contacts.NewAddressBook())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPFetcher_RejectsSource(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr string
	}{
		{"FTP", "ftp://example.com/contacts.vcf", config.ErrProtocol},
		{"File URL", "file:///tmp/contacts.vcf", config.ErrProtocol},
		{"Mailto", "mailto:ann@example.com", config.ErrProtocol},
		{"Control character", string([]byte{0x7f}), config.ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), tt.source, "", "")

			assert.Nil(t, rc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
