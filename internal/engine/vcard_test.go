package engine_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emersion/go-vcard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/assistant-bot/assistant-bot/internal/config"
	"github.com/assistant-bot/assistant-bot/internal/contacts"
	"github.com/assistant-bot/assistant-bot/internal/engine"
)

// MockFetcher simulates the network layer using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the engine.VCardFetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

const sampleCards = `BEGIN:VCARD
VERSION:3.0
FN:Ann Lee
TEL:1234567890
TEL:123
BDAY:1990-05-12
END:VCARD
BEGIN:VCARD
VERSION:3.0
N:Doe;Jane;;;
TEL;TYPE=cell:5555555555
BDAY:--05-12
END:VCARD
BEGIN:VCARD
VERSION:3.0
NOTE:no name at all
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Basic Date
BDAY:19851224
END:VCARD
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))
	return path
}

func TestExportVCards(t *testing.T) {
	book := contacts.NewAddressBook()
	r := contacts.NewRecord("Ann")
	require.NoError(t, r.AddPhone("1234567890"))
	require.NoError(t, r.AddPhone("5555555555"))
	require.NoError(t, r.AddBirthday("12.05.1990"))
	book.AddRecord(r)
	book.AddRecord(contacts.NewRecord("Bob"))

	var buf bytes.Buffer
	require.NoError(t, engine.ExportVCards(&buf, book))

	dec := vcard.NewDecoder(&buf)

	card, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, "Ann", card.Value(vcard.FieldFormattedName))
	assert.Equal(t, config.VCardVersion, card.Value(vcard.FieldVersion))
	assert.Equal(t, []string{"1234567890", "5555555555"}, card.Values(vcard.FieldTelephone))
	assert.Equal(t, "1990-05-12", card.Value(vcard.FieldBirthday))
	assert.Equal(t, engine.ContactUID("Ann"), card.Value(vcard.FieldUID))

	card, err = dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, "Bob", card.Value(vcard.FieldFormattedName))
	assert.Empty(t, card.Value(vcard.FieldBirthday))

	_, err = dec.Decode()
	assert.ErrorIs(t, err, io.EOF)
}

func TestContactUID_Stable(t *testing.T) {
	assert.Equal(t, engine.ContactUID("Ann"), engine.ContactUID("Ann"))
	assert.NotEqual(t, engine.ContactUID("Ann"), engine.ContactUID("Bob"))
}

func TestImport_LocalFile(t *testing.T) {
	book := contacts.NewAddressBook()
	im := &engine.Importer{}

	stats, err := im.Import(context.Background(), engine.ImportConfig{Source: writeTemp(t, sampleCards)}, book)
	require.NoError(t, err)

	assert.Equal(t, engine.ImportStats{
		Cards:         4,
		Imported:      3,
		SkippedCards:  1,
		SkippedPhones: 1,
		SkippedDates:  1,
	}, stats)

	ann, ok := book.Find("Ann Lee")
	require.True(t, ok)
	assert.Equal(t, "Contact name: Ann Lee, phones: 1234567890, birthday: 12.05.1990", ann.String())

	jane, ok := book.Find("Jane Doe")
	require.True(t, ok, "N is used when FN is missing")
	assert.Equal(t, "5555555555", jane.PhoneList())
	_, hasBirthday := jane.Birthday()
	assert.False(t, hasBirthday, "Year-less BDAY cannot become a birthday")

	basic, ok := book.Find("Basic Date")
	require.True(t, ok)
	b, _ := basic.Birthday()
	assert.Equal(t, "24.12.1985", b.String())
}

func TestImport_OverwritesExistingRecord(t *testing.T) {
	book := contacts.NewAddressBook()
	old := contacts.NewRecord("Ann Lee")
	require.NoError(t, old.AddPhone("9999999999"))
	book.AddRecord(old)

	_, err := (&engine.Importer{}).Import(context.Background(), engine.ImportConfig{Source: writeTemp(t, sampleCards)}, book)
	require.NoError(t, err)

	ann, _ := book.Find("Ann Lee")
	assert.Equal(t, "1234567890", ann.PhoneList(), "Imported card replaces the record")
	assert.Equal(t, "Ann Lee", book.Records()[0].Name(), "Replaced record keeps its position")
}

func TestImport_ExportRoundTrip(t *testing.T) {
	src := contacts.NewAddressBook()
	for _, name := range []string{"Ann", "Bob"} {
		r := contacts.NewRecord(name)
		require.NoError(t, r.AddPhone("1234567890"))
		require.NoError(t, r.AddBirthday("29.02.2000"))
		src.AddRecord(r)
	}

	var buf bytes.Buffer
	require.NoError(t, engine.ExportVCards(&buf, src))

	dst := contacts.NewAddressBook()
	stats, err := (&engine.Importer{}).Import(context.Background(), engine.ImportConfig{Source: writeTemp(t, buf.String())}, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Imported)

	for i, r := range src.Records() {
		assert.Equal(t, r.String(), dst.Records()[i].String())
	}
}

func TestImport_Web(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, "https://dav.example.com/book.vcf", "alice", "s3cret").
		Return(io.NopCloser(strings.NewReader(sampleCards)), nil)

	book := contacts.NewAddressBook()
	im := &engine.Importer{Fetcher: mockFetcher}

	stats, err := im.Import(context.Background(), engine.ImportConfig{
		Source: "https://dav.example.com/book.vcf",
		User:   "alice",
		Pass:   "s3cret",
	}, book)

	require.NoError(t, err)
	assert.Equal(t, 3, stats.Imported)
	mockFetcher.AssertExpectations(t)
}

func TestImport_Errors(t *testing.T) {
	t.Run("Network error", func(t *testing.T) {
		expectedErr := errors.New("network unreachable")
		mockFetcher := new(MockFetcher)
		mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, expectedErr)

		_, err := (&engine.Importer{Fetcher: mockFetcher}).Import(context.Background(),
			engine.ImportConfig{Source: "http://bad-url.com"}, contacts.NewAddressBook())

		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), config.ErrVCardParse)
	})

	t.Run("Missing fetcher", func(t *testing.T) {
		_, err := (&engine.Importer{}).Import(context.Background(),
			engine.ImportConfig{Source: "http://example.com"}, contacts.NewAddressBook())
		require.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrFetcherMissing)
	})

	t.Run("Empty source", func(t *testing.T) {
		_, err := (&engine.Importer{}).Import(context.Background(), engine.ImportConfig{}, contacts.NewAddressBook())
		require.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrSourceEmpty)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := (&engine.Importer{}).Import(context.Background(),
			engine.ImportConfig{Source: filepath.Join(t.TempDir(), "nope.vcf")}, contacts.NewAddressBook())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		book := contacts.NewAddressBook()
		_, err := (&engine.Importer{}).Import(ctx, engine.ImportConfig{Source: writeTemp(t, sampleCards)}, book)
		assert.Equal(t, context.Canceled, err)
		assert.Zero(t, book.Len())
	})
}

func TestIsRemote(t *testing.T) {
	assert.True(t, engine.IsRemote("http://example.com/a.vcf"))
	assert.True(t, engine.IsRemote("https://example.com/a.vcf"))
	assert.False(t, engine.IsRemote("/tmp/a.vcf"))
	assert.False(t, engine.IsRemote("contacts.vcf"))
	assert.False(t, engine.IsRemote("ftp://example.com/a.vcf"))
}
