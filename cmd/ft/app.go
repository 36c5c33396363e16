package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/Arshia-r-m/Financial-tracker/internal/apperrors"
	"github.com/Arshia-r-m/Financial-tracker/internal/core/domain"
	portssvc "github.com/Arshia-r-m/Financial-tracker/internal/core/ports/services"
	"github.com/Arshia-r-m/Financial-tracker/internal/core/services"
	"github.com/Arshia-r-m/Financial-tracker/internal/middleware"
	"github.com/Arshia-r-m/Financial-tracker/pkg/config"
	"github.com/Arshia-r-m/Financial-tracker/pkg/database"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// app holds what every command shares. The store is opened on first use, so
// commands that never touch the ledger (help, token) never create the data file.
type app struct {
	out    io.Writer
	errOut io.Writer

	dbPath  string
	rawText bool
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
	store  *database.Store
	ledger portssvc.LedgerSvcFacade
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut}
}

// setFlags registers the global flags on the top level flag set.
func (a *app) setFlags(f *flag.FlagSet) {
	f.StringVar(&a.dbPath, "db", "", "Path to the SQLite ledger file. Overrides LEDGER_DB_PATH.")
	f.BoolVar(&a.rawText, "raw", false, "Print plain markdown instead of rendering it for the terminal.")
	f.BoolVar(&a.verbose, "v", false, "Log debug output to stderr.")
}

// config loads the configuration once, applying the global flags on top of it.
func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if a.dbPath != "" {
		cfg.Driver = config.DriverSQLite
		cfg.DBPath = a.dbPath
	}
	if a.verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	a.cfg = cfg

	// Only warnings and errors reach the terminal unless -v is given.
	level := cfg.LogLevel
	if level < slog.LevelWarn && !a.verbose {
		level = slog.LevelWarn
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
	return cfg, nil
}

// Ledger opens the store on first call and returns the ledger service.
func (a *app) Ledger(ctx context.Context) (portssvc.LedgerSvcFacade, error) {
	if a.ledger != nil {
		return a.ledger, nil
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	store, err := database.OpenStore(ctx, cfg, a.logger)
	if err != nil {
		return nil, err
	}
	a.store = store
	a.ledger = services.NewServiceContainer(cfg, store.Repositories).Ledger
	return a.ledger, nil
}

// Context returns ctx carrying the command logger, so service logs go to stderr.
func (a *app) Context(ctx context.Context) context.Context {
	if a.logger == nil {
		return ctx
	}
	return middleware.WithLogger(ctx, a.logger)
}

// Close releases the store if it was opened.
func (a *app) Close() {
	a.store.Close()
}

// currency returns the display currency.
func (a *app) currency() string {
	if a.cfg == nil || a.cfg.Currency == "" {
		return "USD"
	}
	return a.cfg.Currency
}

// printMarkdown writes md to the output, rendered for the terminal unless -raw is set.
func (a *app) printMarkdown(md string) {
	if !a.rawText {
		renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err == nil {
			if rendered, err := renderer.Render(md); err == nil {
				md = rendered
			}
		}
	}
	fmt.Fprint(a.out, md)
}

// fail reports err and converts it to an exit status. A broken balance invariant is
// logged at Error level as well.
func (a *app) fail(err error) subcommands.ExitStatus {
	if errors.Is(err, apperrors.ErrConsistencyViolation) && a.logger != nil {
		a.logger.Error("Ledger consistency violation", slog.String("error", err.Error()))
	}
	fmt.Fprintf(a.errOut, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// usage reports a usage error.
func (a *app) usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(a.errOut, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

// newCommander builds a commander writing to the app's streams.
func (a *app) newCommander(f *flag.FlagSet, name string) *subcommands.Commander {
	commander := subcommands.NewCommander(f, name)
	commander.Output = a.out
	commander.Error = a.errOut
	return commander
}

// run parses args against f, dispatches to the selected command and returns the
// process exit code.
func run(ctx context.Context, f *flag.FlagSet, args []string, a *app) int {
	commander := a.newCommander(f, path.Base(f.Name()))
	a.setFlags(f)

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&accountCmd{app: a}, "ledger")
	for _, kind := range domain.Kinds {
		commander.Register(&transactionCmd{app: a, kind: kind}, "ledger")
	}
	commander.Register(&tokenCmd{app: a}, "api")

	if err := f.Parse(args); err != nil {
		return int(subcommands.ExitUsageError)
	}
	defer a.Close()

	return int(commander.Execute(ctx))
}
