package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/feed"
	"github.com/tartampluch/go-phonebook/internal/phonebook"
	"github.com/tartampluch/go-phonebook/internal/server"
	"github.com/tartampluch/go-phonebook/internal/shell"
)

// CLI holds the process flags. Settings-file and environment values are
// overridden only by flags that were actually given.
type CLI struct {
	Version kong.VersionFlag `help:"Show application version and exit." short:"V"`
	Debug   bool             `help:"Enable debug logging to stderr."`
	Config  string           `help:"Path to the settings YAML file." type:"path"`
	Serve   bool             `help:"Serve the birthday calendar over HTTP on localhost."`
	Port    int              `help:"Port for the birthday calendar server."`
}

// main delegates to runMain so that deferred calls run before os.Exit.
func main() {
	os.Exit(runMain(os.Args[1:], os.Stdin, os.Stdout))
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain(args []string, in io.Reader, out io.Writer) int {
	var cli CLI
	parser, err := newParser(&cli, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return config.ExitCodeError
	}
	if _, err := parser.Parse(args); err != nil {
		parser.Errorf("%s", err)
		return config.ExitCodeError
	}

	logCloser := setupLogging(cli.Debug)
	if logCloser != nil {
		defer func() { _ = logCloser.Close() }()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	settings, err := loadSettings(cli)
	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return config.ExitCodeError
	}

	if err := run(ctx, settings, in, out, os.Stderr); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

func newParser(cli *CLI, out io.Writer) (*kong.Kong, error) {
	version := fmt.Sprintf(config.MsgVersionOutput,
		config.AppName, config.Version, config.Commit, config.Date, runtime.GOOS, runtime.GOARCH)
	return kong.New(cli,
		kong.Name("go-phonebook"),
		kong.Description("Interactive contact directory with birthday reminders."),
		kong.Vars{"version": version},
		kong.Writers(out, os.Stderr),
	)
}

// loadSettings layers defaults, the settings file, PHONEBOOK_* variables and flags.
func loadSettings(cli CLI) (*config.Settings, error) {
	path := cli.Config
	if path == "" {
		if p, err := config.DefaultSettingsPath(); err == nil {
			path = p
		}
	}

	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	if err := settings.ApplyEnv(); err != nil {
		return nil, err
	}
	if cli.Serve {
		settings.Serve.Enabled = true
	}
	if cli.Port != 0 {
		settings.Serve.Port = cli.Port
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// run wires the directory, the optional feed server and the shell, and blocks
// until the shell exits. A server that fails to start is reported on errOut
// while the session continues.
func run(ctx context.Context, settings *config.Settings, in io.Reader, out, errOut io.Writer) error {
	dir := phonebook.NewDirectory()
	clock := phonebook.RealClock{}

	opts := shell.Options{
		In:       in,
		Out:      out,
		Clock:    clock,
		Settings: settings,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serverErr := make(chan error, config.ChannelBufferSize)
	if settings.Serve.Enabled {
		srv := server.NewFeedServer(settings.Serve.Port)
		publish := newPublisher(&feed.Calendar{Clock: clock}, srv)
		publish(dir)
		opts.OnChange = publish

		go func() {
			err := srv.Start(ctx)
			if err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyError, err,
				)
				fmt.Fprintf(errOut, "error: %s\n", err)
			}
			serverErr <- err
		}()
	} else {
		close(serverErr)
	}

	sh, err := shell.New(dir, opts)
	if err != nil {
		return err
	}
	shellErr := sh.Run(ctx)

	cancel()
	return errors.Join(shellErr, <-serverErr)
}

// newPublisher renders the directory after each change and hands it to the server.
func newPublisher(cal *feed.Calendar, srv *server.FeedServer) func(*phonebook.Directory) {
	return func(dir *phonebook.Directory) {
		data, err := cal.Render(dir.Records())
		if err != nil {
			slog.Error(config.ErrCalendarRender,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyError, err,
			)
			return
		}
		srv.Publish(data)
	}
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs a JSON slog logger writing to the cache-dir log file,
// and to stderr in debug mode. Stdout is left to the shell.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if debugMode {
		writers = append(writers, os.Stderr)
	}

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
