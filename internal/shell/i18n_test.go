package shell

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-phonebook/internal/config"
)

// TestCatalogIntegrity ensures that every message key defined in config
// exists in the embedded English catalog.
func TestCatalogIntegrity(t *testing.T) {
	keys := []string{
		config.TKeyPrompt,
		config.TKeyArgPrompt,
		config.TKeyHello,
		config.TKeyGoodbye,
		config.TKeyUnknownCommand,
		config.TKeyContactAdded,
		config.TKeyContactUpdated,
		config.TKeyPhoneChanged,
		config.TKeyPhoneRemoved,
		config.TKeyContactDeleted,
		config.TKeyBirthdayAdded,
		config.TKeyBirthdayNotSet,
		config.TKeyNoContacts,
		config.TKeyNoPhones,
		config.TKeyNoUpcoming,
		config.TKeyUpcomingLine,
		config.TKeyImported,
		config.TKeyExported,
		config.TKeyCommandFailed,
		config.TKeyHelpHeader,
		config.TKeyUsageAdd,
		config.TKeyUsageChange,
		config.TKeyUsagePhone,
		config.TKeyUsageAddBirthday,
		config.TKeyUsageShowBirthday,
		config.TKeyUsageRemovePhone,
		config.TKeyUsageDelete,
		config.TKeyUsageImport,
	}

	data, err := localeFS.ReadFile("locales/active.en.json")
	require.NoError(t, err)
	var messages map[string]string
	require.NoError(t, json.Unmarshal(data, &messages))

	for _, key := range keys {
		assert.Contains(t, messages, key, "Missing key %q in active.en.json", key)
	}
	assert.Len(t, messages, len(keys), "catalog has keys that config does not define")
}

func TestCatalog_Msg(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	assert.Equal(t, "How can I help you?", c.Msg(config.TKeyHello))
	assert.Equal(t, "A: 15.04.2024", c.MsgWith(config.TKeyUpcomingLine, map[string]any{"Name": "A", "Date": "15.04.2024"}))
	assert.Equal(t, "no_such_key", c.Msg("no_such_key"), "missing keys fall back to the key")
}

func TestStyler(t *testing.T) {
	var buf bytes.Buffer

	plain := newStyler(&buf, config.ColorNever)
	assert.Equal(t, "oops", plain.Error("oops"))
	assert.Equal(t, "title", plain.Header("title"))

	auto := newStyler(&buf, config.ColorAuto)
	assert.Equal(t, "oops", auto.Error("oops"), "a buffer is not a terminal")

	colored := newStyler(&buf, config.ColorAlways)
	out := colored.Error("oops")
	assert.Contains(t, out, "oops")
	assert.Contains(t, out, "\x1b[", "forced colour emits ANSI escapes")
}

func TestMissingArgumentError(t *testing.T) {
	err := &MissingArgumentError{Command: config.CmdAdd, Usage: "Give me name and phone please."}
	assert.Equal(t, "Give me name and phone please.", err.Error())
}
