package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Assistant-Bot/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Assistant Bot"
	AppID             = "com.github.assistant-bot"
	KeyringService    = "com.github.assistant-bot.carddav"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and exported address books.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagPort         = "port"
	FlagLang         = "lang"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stderr"
	FlagDescConfig   = "Path to an optional YAML settings file"
	FlagDescPort     = "Serve the birthday calendar and contacts on this localhost port"
	FlagDescLang     = "Reply language (en, fr)"
	MsgVersionOutput = "%s version %s (commit %s, built %s) %s/%s\n"
)

// -----------------------------------------------------------------------------
// Contact Rules
// -----------------------------------------------------------------------------

const (
	// PhoneRule is the validator tag applied to every phone number.
	PhoneRule = "required,len=10,number"

	// DateFormatDisplay is the DD.MM.YYYY layout used for input and output.
	DateFormatDisplay = "02.01.2006"

	// UpcomingWindowDays is the inclusive look-ahead of the birthdays query.
	UpcomingWindowDays = 7

	PhoneSeparator  = "; "
	RecordFormat    = "Contact name: %s, phones: %s"
	RecordBirthday  = ", birthday: %s"
	UpcomingFormat  = "%s: %s"
	ReplyLineBreak  = "\n"
	DefaultLanguage = "en"
)

// SupportedLanguages defines the list of available reply languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Validation Messages (user facing, English source text)
// -----------------------------------------------------------------------------

const (
	ErrPhoneFormat   = "Wrong format! Phone number must be 10 digits long."
	ErrDateFormat    = "Invalid date format. Use DD.MM.YYYY"
	ErrPhoneNotFound = "Phone number not found."
	ErrNameNotFound  = "Name not found"
)

// -----------------------------------------------------------------------------
// Commands
// -----------------------------------------------------------------------------

const (
	CmdNameHello        = "hello"
	CmdNameAdd          = "add"
	CmdNameChange       = "change"
	CmdNamePhone        = "phone"
	CmdNameRemovePhone  = "remove-phone"
	CmdNameAll          = "all"
	CmdNameAddBirthday  = "add-birthday"
	CmdNameShowBirthday = "show-birthday"
	CmdNameBirthdays    = "birthdays"
	CmdNameDelete       = "delete"
	CmdNameExport       = "export"
	CmdNameExportICS    = "export-ics"
	CmdNameImport       = "import"
	CmdNameLogin        = "login"
	CmdNameLang         = "lang"
	CmdNameHelp         = "help"
	CmdNameClose        = "close"
	CmdNameExit         = "exit"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome         = "welcome"
	TKeyPrompt          = "prompt"
	TKeyGoodbye         = "goodbye"
	TKeyHello           = "hello"
	TKeyInvalidCommand  = "invalid_command"
	TKeyUsage           = "usage"
	TKeyHelpHeader      = "help_header"
	TKeyContactAdded    = "contact_added"
	TKeyPhoneAdded      = "phone_added"
	TKeyPhoneChanged    = "phone_changed"
	TKeyPhoneRemoved    = "phone_removed"
	TKeyPhoneMissing    = "phone_missing"
	TKeyPhones          = "phones"
	TKeyNoPhones        = "no_phones"
	TKeyNoContact       = "no_contact"
	TKeyContactsHeader  = "contacts_header"
	TKeyNoContacts      = "no_contacts"
	TKeyBirthdayAdded   = "birthday_added"
	TKeyBirthdayShow    = "birthday_show"
	TKeyNoBirthday      = "no_birthday"
	TKeyUpcomingHeader  = "upcoming_header"
	TKeyNoUpcoming      = "no_upcoming"
	TKeyContactDeleted  = "contact_deleted"
	TKeyExported        = "exported"
	TKeyCalendarWritten = "calendar_written"
	TKeyImported        = "imported"
	TKeyLoggedIn        = "logged_in"
	TKeyLanguageSet     = "language_set"
	TKeyLanguageUnknown = "language_unknown"
	TKeyOperationFailed = "operation_failed"
	TKeyEvtSummaryAge   = "event_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth = "event_summary_birth" // Requires Name (For age 0)

	// Error keys mirror the validation messages above.
	TKeyErrPhoneFormat   = "err_phone_format"
	TKeyErrDateFormat    = "err_date_format"
	TKeyErrPhoneNotFound = "err_phone_not_found"
	TKeyErrNameNotFound  = "err_name_not_found"
)

// -----------------------------------------------------------------------------
// Settings Defaults (cleanenv)
// -----------------------------------------------------------------------------

const (
	EnvLanguage = "ASSISTANT_LANG"
	EnvFeedPort = "ASSISTANT_FEED_PORT"
	EnvUser     = "ASSISTANT_CARDDAV_USER"
	EnvReminder = "ASSISTANT_REMINDER"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	DefaultLeapYear = 2000 // Reference year for year-less dates like --02-29

	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Assistant Bot//Engine//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "assistant-bot"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardVersion = "4.0"
	UIDFormat    = "contact:%s"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// Event UIDs
	FormatEventUID = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteCalendar       = "/birthdays.ics"
	RouteContacts       = "/contacts.vcf"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextVCard       = "text/vcard; charset=utf-8"
	MimeAcceptVCard     = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrSourceEmpty    = "configuration error: import source is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrPortNumber     = "server port must be a number"
	ErrPortRange      = "server port must be between 1 and 65535"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrRequestCreate  = "failed to create request"
	ErrNetwork        = "network error during fetch"
	ErrHTTPStatus     = "address book server returned unexpected status"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrVCardEncode    = "failed to encode vCard data"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrDateParse      = "unable to parse date"
	ErrSettingsLoad   = "failed to load settings"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrWriteFile      = "failed to write file"
	ErrReadInput      = "failed to read input"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrKeyringSave    = "failed to save credentials to keyring"
	ErrUnknownCommand = "unknown command"
	ErrUsage          = "invalid command format, use"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, leaving command loop"
	MsgCommand       = "Command executed"
	MsgCommandFailed = "Command rejected"
	MsgImportStarted = "Import started"
	MsgImportDone    = "Import finished"
	MsgFetchStatus   = "Address book server returned error status"
	MsgFetchStarted  = "Downloading address book"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedName   = "Skipping vCard without name"
	MsgSkippedPhone  = "Skipping invalid phone number"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgGenSuccess    = "Calendar generation successful"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgFeedUpdated   = "Feed cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgPublishFailed = "Failed to publish feeds"
	MsgLangFallback  = "Unsupported language, using default"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyUser      = "user"
	LogKeySource    = "source"
	LogKeyTotal     = "total_cards"
	LogKeyImported  = "imported"
	LogKeyContacts  = "contacts"
	LogKeyEvents    = "events"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyFeed      = "feed"
	LogKeyValue     = "value"
	LogKeyName      = "name"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompBot     = "bot"
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompMain    = "main"
	CompI18n    = "i18n"
)
