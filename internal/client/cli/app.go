package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/dmitrijs2005/suimirror/internal/client/client"
	"github.com/dmitrijs2005/suimirror/internal/client/config"
	"github.com/dmitrijs2005/suimirror/internal/client/i18n"
	"github.com/dmitrijs2005/suimirror/internal/client/mirror"
	"github.com/dmitrijs2005/suimirror/internal/client/notify"
	"github.com/dmitrijs2005/suimirror/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/suimirror/internal/client/services"
	"github.com/dmitrijs2005/suimirror/internal/logging"
)

type App struct {
	config   *config.Config
	store    *services.Store
	prefs    services.Preferences
	log      logging.Logger
	db       *sql.DB
	reader   *bufio.Reader
	out      io.Writer
	userName string
	loggedIn bool

	watchMu     sync.Mutex
	stopWatcher context.CancelFunc
	watchDone   chan struct{}
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.New(c.LogLevel, c.LogFormat, os.Stderr)

	db, err := client.InitDatabase(ctx, c.StatePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.StatePath, "err", err)
		return nil, err
	}

	notifier := notify.NewConsole(os.Stdout)
	gateway, err := client.NewHTTPGateway(client.HTTPGatewayOptions{
		BaseURL:    c.ServerURL,
		Token:      c.Token,
		HTTPClient: &http.Client{Timeout: c.RequestTimeout},
		Notifier:   notifier,
		Logger:     log,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := services.NewStore(gateway, mirror.New(), notifier, i18n.New(c.Language), log)
	prefs := services.NewPreferences(metadata.NewSQLiteRepository(db), log)

	a := newApp(c, store, prefs, log, bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, store *services.Store, prefs services.Preferences, log logging.Logger, r *bufio.Reader, w io.Writer) *App {
	return &App{config: c, store: store, prefs: prefs, log: log, reader: r, out: w}
}

// Run starts the REPL and blocks until the user leaves or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	printlnFn("Welcome to suimirror (type 'help' for commands)")
	if a.isLoggedIn() {
		a.startSession(ctx)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close() {
	a.stopRefreshWatcher()
	if a.db != nil {
		_ = a.db.Close()
	}
}

// isLoggedIn is true after a successful login, or from the start when an
// API token is configured.
func (a *App) isLoggedIn() bool {
	return a.loggedIn || a.config.Token != ""
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	mode, ro := a.store.Mirror().NodeMode()
	s := string(mode)
	if a.userName != "" {
		s = a.userName + " " + s
	}
	if ro {
		s += " ro"
	}
	return fmt.Sprintf("(%s)", s)
}

// startSession loads everything and starts background refresh if configured.
func (a *App) startSession(ctx context.Context) {
	if !a.store.Bootstrap(ctx) {
		printlnFn("Some data could not be loaded, see messages above")
	}
	if a.config.RefreshInterval > 0 {
		a.startRefreshWatcher(ctx)
	}
}
