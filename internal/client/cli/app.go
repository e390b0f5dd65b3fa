// Package cli is the interactive surface of estatekeeper: a REPL whose two
// command groups (auth and main) play the role of the app's route groups.
// Commands stay thin; session, querying and filtering semantics live in
// their own packages.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/dmitrijs2005/estatekeeper/internal/client/api"
	"github.com/dmitrijs2005/estatekeeper/internal/client/config"
	"github.com/dmitrijs2005/estatekeeper/internal/client/credstore"
	"github.com/dmitrijs2005/estatekeeper/internal/client/filter"
	"github.com/dmitrijs2005/estatekeeper/internal/client/query"
	"github.com/dmitrijs2005/estatekeeper/internal/client/services"
	"github.com/dmitrijs2005/estatekeeper/internal/client/session"
	"github.com/dmitrijs2005/estatekeeper/internal/logging"
)

// Group identifies the active command group; the route guard is the only
// writer.
type Group string

const (
	GroupAuth Group = "auth"
	GroupMain Group = "main"
)

// App wires the client together and carries the per-screen UI state:
// the active command group and the current filter inputs.
type App struct {
	config     *config.Config
	log        logging.Logger
	session    *session.Manager
	properties services.PropertyService
	listings   *query.Properties

	reader *bufio.Reader
	out    io.Writer

	groupMu sync.Mutex
	group   Group

	quick    filter.Quick
	advanced filter.Options
}

// NewApp builds the full dependency graph from configuration.
func NewApp(c *config.Config) (*App, error) {
	log := newLogger(c.LogLevel)

	store, err := credstore.NewFileStore(c.CredentialDir)
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}

	// The gateway's token source closes over the session manager, which
	// itself needs the gateway (via the auth service); the variable breaks
	// the cycle.
	var sess *session.Manager

	gateway := api.New(c.ServerBaseURL, c.RequestTimeout,
		func() (string, bool) {
			if sess == nil {
				return "", false
			}
			return sess.Token()
		},
		log,
		api.WithOnUnauthorized(func() {
			// Observed but not acted upon: the backend contract leaves
			// 401 remediation to the user (sign in again).
			log.Warn(context.Background(), "unauthorized response from backend")
		}),
	)

	authSvc := services.NewAuthService(gateway, store, log)
	propSvc := services.NewPropertyService(gateway, log)
	sess = session.NewManager(store, authSvc, log)

	return &App{
		config:     c,
		log:        log,
		session:    sess,
		properties: propSvc,
		listings:   query.NewProperties(propSvc, log),
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		group:      GroupAuth,
		quick:      filter.QuickAll,
	}, nil
}

func newLogger(level string) logging.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	return logging.NewSlogLogger(slog.New(h))
}

// Run bootstraps the session and enters the REPL. It returns when the
// user exits or ctx is canceled (checked between commands).
func (a *App) Run(ctx context.Context) {
	guard := newRouteGuard(a)
	a.session.Subscribe(guard.onState)

	// Splash: shown until the one-shot bootstrap finishes. The guard makes
	// no decision before this.
	fmt.Fprintln(a.out, "estatekeeper — loading session...")
	a.session.Bootstrap(ctx)
	<-a.session.Ready()

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

// Group returns the active command group.
func (a *App) Group() Group {
	a.groupMu.Lock()
	defer a.groupMu.Unlock()
	return a.group
}

func (a *App) setGroup(g Group) {
	a.groupMu.Lock()
	defer a.groupMu.Unlock()
	a.group = g
}

func (a *App) status() string {
	if u := a.session.User(); u != nil && u.Name != "" {
		return u.Name
	}
	if a.session.SignedIn() {
		return "signed in"
	}
	return "guest"
}
