package shell

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/feed"
	"github.com/tartampluch/go-phonebook/internal/phonebook"
)

// command describes one entry of the shell vocabulary.
type command struct {
	syntax   string // shown by help
	minArgs  int
	usageKey string // catalog key printed when arguments are missing
	mutates  bool   // triggers OnChange after success
	exit     bool
	run      func(args []string) (string, error)
}

// commandTable maps exact, lower-cased command tokens to handlers.
// "close" is the only alias; prefixes never match.
func (s *Shell) commandTable() map[string]command {
	exit := command{syntax: "exit | close", exit: true}
	return map[string]command{
		config.CmdHello: {syntax: "hello", run: s.hello},
		config.CmdAdd: {
			syntax: "add <name> <phone>", minArgs: 2, usageKey: config.TKeyUsageAdd,
			mutates: true, run: s.addContact,
		},
		config.CmdChange: {
			syntax: "change <name> <old-phone> <new-phone>", minArgs: 3, usageKey: config.TKeyUsageChange,
			mutates: true, run: s.changePhone,
		},
		config.CmdPhone: {
			syntax: "phone <name>", minArgs: 1, usageKey: config.TKeyUsagePhone,
			run: s.showPhones,
		},
		config.CmdAll: {syntax: "all", run: s.showAll},
		config.CmdAddBirthday: {
			syntax: "add-birthday <name> <DD.MM.YYYY>", minArgs: 2, usageKey: config.TKeyUsageAddBirthday,
			mutates: true, run: s.addBirthday,
		},
		config.CmdShowBirthday: {
			syntax: "show-birthday <name>", minArgs: 1, usageKey: config.TKeyUsageShowBirthday,
			run: s.showBirthday,
		},
		config.CmdBirthdays: {syntax: "birthdays", run: s.birthdays},
		config.CmdRemovePhone: {
			syntax: "remove-phone <name> <phone>", minArgs: 2, usageKey: config.TKeyUsageRemovePhone,
			mutates: true, run: s.removePhone,
		},
		config.CmdDelete: {
			syntax: "delete <name>", minArgs: 1, usageKey: config.TKeyUsageDelete,
			mutates: true, run: s.deleteContact,
		},
		config.CmdExport: {syntax: "export [path]", run: s.exportVCards},
		config.CmdImport: {
			syntax: "import <path>", minArgs: 1, usageKey: config.TKeyUsageImport,
			mutates: true, run: s.importVCards,
		},
		config.CmdCalendar: {syntax: "calendar", run: s.calendar},
		config.CmdHelp:     {syntax: "help", run: s.help},
		config.CmdExit:     exit,
		config.CmdClose:    exit,
	}
}

func (s *Shell) hello([]string) (string, error) {
	return s.catalog.Msg(config.TKeyHello), nil
}

// addContact appends the phone to an existing contact or creates a new one.
// A new contact whose phone is invalid is never stored.
func (s *Shell) addContact(args []string) (string, error) {
	name, phone := args[0], args[1]

	err := s.dir.Update(name, func(r *phonebook.Record) error {
		return r.AddPhone(phone)
	})
	var nerr *phonebook.NotFoundError
	switch {
	case err == nil:
		return s.catalog.Msg(config.TKeyContactUpdated), nil
	case !errors.As(err, &nerr):
		return "", err
	}

	r := phonebook.NewRecord(name)
	if err := r.AddPhone(phone); err != nil {
		return "", err
	}
	s.dir.AddRecord(r)
	return s.catalog.Msg(config.TKeyContactAdded), nil
}

func (s *Shell) changePhone(args []string) (string, error) {
	name, oldPhone, newPhone := args[0], args[1], args[2]
	err := s.dir.Update(name, func(r *phonebook.Record) error {
		return r.EditPhone(oldPhone, newPhone)
	})
	if err != nil {
		return "", err
	}
	return s.catalog.Msg(config.TKeyPhoneChanged), nil
}

func (s *Shell) showPhones(args []string) (string, error) {
	r, err := s.dir.Find(args[0])
	if err != nil {
		return "", err
	}
	phones := r.Phones()
	if len(phones) == 0 {
		return s.catalog.Msg(config.TKeyNoPhones), nil
	}
	parts := make([]string, len(phones))
	for i, p := range phones {
		parts[i] = p.String()
	}
	return strings.Join(parts, config.PhoneListSeparator), nil
}

func (s *Shell) showAll([]string) (string, error) {
	records := s.dir.Records()
	if len(records) == 0 {
		return s.catalog.Msg(config.TKeyNoContacts), nil
	}
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return strings.Join(lines, config.RecordSeparator), nil
}

func (s *Shell) addBirthday(args []string) (string, error) {
	name, date := args[0], args[1]
	err := s.dir.Update(name, func(r *phonebook.Record) error {
		return r.AddBirthday(date)
	})
	if err != nil {
		return "", err
	}
	return s.catalog.Msg(config.TKeyBirthdayAdded), nil
}

func (s *Shell) showBirthday(args []string) (string, error) {
	r, err := s.dir.Find(args[0])
	if err != nil {
		return "", err
	}
	b, ok := r.Birthday()
	if !ok {
		return s.catalog.Msg(config.TKeyBirthdayNotSet), nil
	}
	return b.String(), nil
}

func (s *Shell) birthdays([]string) (string, error) {
	upcoming := s.dir.UpcomingBirthdaysWithin(s.clock.Now(), s.settings.Birthdays.WindowDays)
	if len(upcoming) == 0 {
		return s.catalog.Msg(config.TKeyNoUpcoming), nil
	}
	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = s.catalog.MsgWith(config.TKeyUpcomingLine, map[string]any{
			"Name": u.Name,
			"Date": u.FormattedDate(),
		})
	}
	return strings.Join(lines, config.RecordSeparator), nil
}

func (s *Shell) removePhone(args []string) (string, error) {
	name, phone := args[0], args[1]
	err := s.dir.Update(name, func(r *phonebook.Record) error {
		r.RemovePhone(phone)
		return nil
	})
	if err != nil {
		return "", err
	}
	return s.catalog.Msg(config.TKeyPhoneRemoved), nil
}

// deleteContact reports unknown names even though Directory.Delete tolerates them.
func (s *Shell) deleteContact(args []string) (string, error) {
	name := args[0]
	if _, err := s.dir.Find(name); err != nil {
		return "", err
	}
	s.dir.Delete(name)
	return s.catalog.Msg(config.TKeyContactDeleted), nil
}

// exportVCards writes vCards to the shell output, or to a file when a path is given.
func (s *Shell) exportVCards(args []string) (string, error) {
	records := s.dir.Records()
	if len(args) == 0 {
		var buf bytes.Buffer
		if err := feed.WriteVCards(&buf, records); err != nil {
			return "", err
		}
		return strings.TrimRight(buf.String(), "\r\n"), nil
	}

	path := args[0]
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", config.ErrCreateFile, path, err)
	}
	if err := feed.WriteVCards(f, records); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%s %s: %w", config.ErrCreateFile, path, err)
	}
	return s.catalog.MsgWith(config.TKeyExported, map[string]any{
		"Count": len(records),
		"Path":  path,
	}), nil
}

// importVCards merges a vCard file into the directory. Imported records
// replace existing contacts with the same name.
func (s *Shell) importVCards(args []string) (string, error) {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", config.ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	records, stats, err := feed.ReadVCards(f)
	if err != nil {
		return "", err
	}
	for _, r := range records {
		s.dir.AddRecord(r)
	}
	return s.catalog.MsgWith(config.TKeyImported, map[string]any{
		"Count":   stats.Imported,
		"Skipped": stats.SkippedCards,
	}), nil
}

func (s *Shell) calendar([]string) (string, error) {
	cal := &feed.Calendar{Clock: s.clock}
	data, err := cal.Render(s.dir.Records())
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCalendarRender, err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func (s *Shell) help([]string) (string, error) {
	seen := make(map[string]bool)
	var syntaxes []string
	for _, cmd := range s.commands {
		if seen[cmd.syntax] {
			continue
		}
		seen[cmd.syntax] = true
		syntaxes = append(syntaxes, "  "+cmd.syntax)
	}
	sort.Strings(syntaxes)
	return s.style.Header(s.catalog.Msg(config.TKeyHelpHeader)) + config.RecordSeparator +
		strings.Join(syntaxes, config.RecordSeparator), nil
}
