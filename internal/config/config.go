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

// UserAgent identifies the feed server in logs and response headers.
var UserAgent = "Go-Phonebook/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Phonebook"
	AppID             = "com.github.tartampluch.go-phonebook"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	SettingsFileName  = "settings.yaml"
	EnvPrefix         = "PHONEBOOK_"
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
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Output
// -----------------------------------------------------------------------------

const (
	MsgVersionOutput = "%s version %s (%s, %s) %s/%s"
)

// -----------------------------------------------------------------------------
// Phone & Birthday Formats
// -----------------------------------------------------------------------------

const (
	// PhoneDigits is the exact number of decimal digits in a phone number.
	PhoneDigits = 10

	// DateFormatBirthday is the only accepted input/output layout (DD.MM.YYYY).
	DateFormatBirthday = "02.01.2006"

	// DateFormatVCard is the vCard 4.0 BDAY layout (YYYY-MM-DD).
	DateFormatVCard = "2006-01-02"

	// DateFormatVCardBasic is the compact BDAY layout some exporters emit.
	DateFormatVCardBasic = "20060102"

	// UpcomingWindowDays is the width of the rolling birthday window.
	UpcomingWindowDays = 7

	// MaxWindowDays bounds a configured window to one (leap) year.
	MaxWindowDays = 366

	HoursPerDay = 24
)

// -----------------------------------------------------------------------------
// Shell Commands
// -----------------------------------------------------------------------------

const (
	CmdHello        = "hello"
	CmdAdd          = "add"
	CmdChange       = "change"
	CmdPhone        = "phone"
	CmdAll          = "all"
	CmdAddBirthday  = "add-birthday"
	CmdShowBirthday = "show-birthday"
	CmdBirthdays    = "birthdays"
	CmdRemovePhone  = "remove-phone"
	CmdDelete       = "delete"
	CmdExport       = "export"
	CmdImport       = "import"
	CmdCalendar     = "calendar"
	CmdHelp         = "help"
	CmdExit         = "exit"
	CmdClose        = "close"

	PhoneSeparator     = "; "
	PhoneListSeparator = ", "
	RecordSeparator    = "\n"

	// NameWordSeparator joins the words of an imported multi-word name into one token.
	NameWordSeparator = "_"
)

// -----------------------------------------------------------------------------
// Translation Keys (Message Catalog)
// -----------------------------------------------------------------------------

const (
	TKeyPrompt            = "prompt_command"
	TKeyArgPrompt         = "prompt_arguments"
	TKeyHello             = "msg_hello"
	TKeyGoodbye           = "msg_goodbye"
	TKeyUnknownCommand    = "msg_unknown_command"
	TKeyContactAdded      = "msg_contact_added"
	TKeyContactUpdated    = "msg_contact_updated"
	TKeyPhoneChanged      = "msg_phone_changed"
	TKeyPhoneRemoved      = "msg_phone_removed"
	TKeyContactDeleted    = "msg_contact_deleted"
	TKeyBirthdayAdded     = "msg_birthday_added"
	TKeyBirthdayNotSet    = "msg_birthday_not_set"
	TKeyNoContacts        = "msg_no_contacts"
	TKeyNoPhones          = "msg_no_phones"
	TKeyNoUpcoming        = "msg_no_upcoming"
	TKeyUpcomingLine      = "msg_upcoming_line"  // Requires Name, Date
	TKeyImported          = "msg_imported"       // Requires Count, Skipped
	TKeyExported          = "msg_exported"       // Requires Count, Path
	TKeyCommandFailed     = "err_command_failed" // Requires Error
	TKeyHelpHeader        = "help_header"
	TKeyUsageAdd          = "usage_add"
	TKeyUsageChange       = "usage_change"
	TKeyUsagePhone        = "usage_phone"
	TKeyUsageAddBirthday  = "usage_add_birthday"
	TKeyUsageShowBirthday = "usage_show_birthday"
	TKeyUsageRemovePhone  = "usage_remove_phone"
	TKeyUsageDelete       = "usage_delete"
	TKeyUsageImport       = "usage_import"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultLanguage = "en"
	DefaultPort     = 18081
	ColorAuto       = "auto"
	ColorAlways     = "always"
	ColorNever      = "never"
	UIDSalt         = "go-phonebook-v1-" // Salt for deterministic UID generation
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Phonebook//Feed//EN"
	ICalCalName = "Birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gophonebook"

	// iCal Fields
	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	DefaultICalRefresh = 1 * time.Hour

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	FallbackSummary = "Birthday: %s"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	RouteRoot          = "/"
	AddrSeparator      = ":"
	MinPort            = 1
	MaxPort            = 65535
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
	HeaderServer          = "Server"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (User Facing)
// -----------------------------------------------------------------------------

const (
	ErrPhoneDigits     = "Phone number must contain exactly 10 digits."
	ErrBirthdayFormat  = "Invalid date format. Use DD.MM.YYYY"
	ErrPhoneNotFound   = "Phone number not found."
	ErrContactNotFound = "Contact not found."
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrVCardEncode    = "failed to encode vCard data"
	ErrVCardDecode    = "failed to decode vCard stream"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrSettingsRead   = "failed to read settings file"
	ErrSettingsParse  = "failed to parse settings file"
	ErrSettingsEnv    = "failed to apply environment overrides"
	ErrSettingsValid  = "invalid settings"
	ErrReadInput      = "failed to read input"
	ErrOpenFile       = "failed to open file"
	ErrCreateFile     = "failed to create file"
	ErrCalendarRender = "failed to render birthday calendar"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, stopping shell"
	MsgShellStart    = "Shell started"
	MsgShellStop     = "Shell stopped"
	MsgCommand       = "Command dispatched"
	MsgCommandFailed = "Command failed"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedValue  = "Skipping invalid vCard value"
	MsgImportDone    = "vCard import finished"
	MsgGenSuccess    = "Calendar generation successful"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyImported  = "imported"
	LogKeySkipped   = "skipped"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"

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
	CompMain   = "main"
	CompShell  = "shell"
	CompServer = "server"
	CompFeed   = "feed"
	CompI18n   = "i18n"
)
