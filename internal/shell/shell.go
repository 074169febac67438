// Package shell implements the interactive command loop around a phonebook.Directory.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/phonebook"
)

// MissingArgumentError reports a command that received fewer tokens than it needs.
type MissingArgumentError struct {
	Command string
	Usage   string
}

func (e *MissingArgumentError) Error() string {
	return e.Usage
}

// Options wires the shell to its collaborators. Zero values fall back to
// stdin/stdout, the real clock and default settings.
type Options struct {
	In       io.Reader
	Out      io.Writer
	Clock    phonebook.Clock
	Settings *config.Settings

	// OnChange runs after every command that mutated the directory.
	OnChange func(*phonebook.Directory)
}

// Shell reads commands line by line and dispatches them to the directory.
type Shell struct {
	dir      *phonebook.Directory
	in       io.Reader
	out      io.Writer
	clock    phonebook.Clock
	settings config.Settings
	onChange func(*phonebook.Directory)
	catalog  *Catalog
	style    styler
	commands map[string]command
	log      *slog.Logger

	lines chan lineResult
	done  chan struct{}
	eof   bool
}

type lineResult struct {
	line string
	err  error
}

// New creates a shell operating on dir.
func New(dir *phonebook.Directory, opts Options) (*Shell, error) {
	catalog, err := NewCatalog()
	if err != nil {
		return nil, err
	}

	s := &Shell{
		dir:      dir,
		in:       opts.In,
		out:      opts.Out,
		clock:    opts.Clock,
		onChange: opts.OnChange,
		catalog:  catalog,
		log:      slog.With(config.LogKeyComponent, config.CompShell),
	}
	if s.clock == nil {
		s.clock = phonebook.RealClock{}
	}
	if opts.Settings != nil {
		s.settings = *opts.Settings
	} else {
		s.settings = config.DefaultSettings()
	}
	s.style = newStyler(s.out, s.settings.Shell.Color)
	s.commands = s.commandTable()
	return s, nil
}

// Run executes commands until exit/close, end of input, or ctx cancellation.
// Only input read failures are returned; command errors are printed and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	s.lines = make(chan lineResult)
	s.done = make(chan struct{})
	defer close(s.done)
	go s.readLines()

	s.log.Info(config.MsgShellStart)
	defer s.log.Info(config.MsgShellStop)

	for {
		line, err := s.readLine(ctx, s.prompt())
		if errors.Is(err, io.EOF) {
			s.println(s.catalog.Msg(config.TKeyGoodbye))
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				s.log.Info(config.MsgCtxCancel)
				return nil
			}
			return fmt.Errorf("%s: %w", config.ErrReadInput, err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if stop := s.dispatch(ctx, strings.ToLower(fields[0]), fields[1:]); stop {
			return nil
		}
	}
}

// dispatch runs one command and reports whether the loop should stop.
func (s *Shell) dispatch(ctx context.Context, name string, args []string) bool {
	cmd, ok := s.commands[name]
	if !ok {
		s.println(s.catalog.Msg(config.TKeyUnknownCommand))
		return false
	}
	if cmd.exit {
		s.println(s.catalog.Msg(config.TKeyGoodbye))
		return true
	}

	// Arguments may arrive on the following line.
	if len(args) == 0 && cmd.minArgs > 0 {
		line, err := s.readLine(ctx, s.argPrompt())
		if err != nil {
			args = nil
		} else {
			args = strings.Fields(line)
		}
	}

	s.log.Debug(config.MsgCommand, config.LogKeyCommand, name, config.LogKeyArgs, len(args))

	var (
		out string
		err error
	)
	if len(args) < cmd.minArgs {
		err = &MissingArgumentError{Command: name, Usage: s.catalog.Msg(cmd.usageKey)}
	} else {
		out, err = cmd.run(args)
	}

	if err != nil {
		s.log.Debug(config.MsgCommandFailed, config.LogKeyCommand, name, config.LogKeyError, err)
		s.println(s.style.Error(s.describe(err)))
		return false
	}
	if cmd.mutates && s.onChange != nil {
		s.onChange(s.dir)
	}
	if out != "" {
		s.println(out)
	}
	return false
}

// describe turns an error into the line shown to the user. Domain errors carry
// their own message; anything else is an unexpected failure.
func (s *Shell) describe(err error) string {
	var (
		verr *phonebook.ValidationError
		nerr *phonebook.NotFoundError
		merr *MissingArgumentError
	)
	switch {
	case errors.As(err, &verr), errors.As(err, &nerr), errors.As(err, &merr):
		return err.Error()
	default:
		return s.catalog.MsgWith(config.TKeyCommandFailed, map[string]any{"Error": err.Error()})
	}
}

func (s *Shell) prompt() string {
	if s.settings.Shell.Prompt != "" {
		return s.settings.Shell.Prompt
	}
	return s.catalog.Msg(config.TKeyPrompt)
}

func (s *Shell) argPrompt() string {
	if s.settings.Shell.ArgPrompt != "" {
		return s.settings.Shell.ArgPrompt
	}
	return s.catalog.Msg(config.TKeyArgPrompt)
}

// readLines feeds input lines to Run so that a blocked read never prevents
// the loop from observing ctx cancellation.
func (s *Shell) readLines() {
	sc := bufio.NewScanner(s.in)
	for sc.Scan() {
		select {
		case s.lines <- lineResult{line: sc.Text()}:
		case <-s.done:
			return
		}
	}
	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	select {
	case s.lines <- lineResult{err: err}:
	case <-s.done:
	}
}

// readLine prints prompt and waits for the next line. After end of input it keeps returning io.EOF.
func (s *Shell) readLine(ctx context.Context, prompt string) (string, error) {
	_, _ = io.WriteString(s.out, prompt)
	if s.eof {
		return "", io.EOF
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-s.lines:
		if res.err != nil {
			s.eof = true
		}
		return res.line, res.err
	}
}

func (s *Shell) println(msg string) {
	_, _ = fmt.Fprintln(s.out, msg)
}
