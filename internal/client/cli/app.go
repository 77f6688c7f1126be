package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/profilesync/internal/client/client"
	"github.com/dmitrijs2005/profilesync/internal/client/config"
	"github.com/dmitrijs2005/profilesync/internal/client/monitor"
	"github.com/dmitrijs2005/profilesync/internal/client/services"
	"github.com/dmitrijs2005/profilesync/internal/logging"
)

// statusSource is the part of the connectivity monitor the App reads.
type statusSource interface {
	Status() monitor.Status
}

type App struct {
	config   *config.Config
	identity services.IdentityService
	monitor  *monitor.Monitor
	status   statusSource
	log      logging.Logger
	db       *sql.DB

	userName string
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the local database and builds the identity service and the
// connectivity monitor from c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	identity, err := services.New(c, db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	m := monitor.New(c, log)
	return &App{
		config:   c,
		identity: identity,
		monitor:  m,
		status:   m,
		log:      log,
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run starts the connectivity monitor and blocks in the REPL until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.monitor.OnChange(func(from, to monitor.Status) {
		a.log.Debug(ctx, "status indicator updated", "from", from, "to", to)
	})
	go a.monitor.Run(ctx)

	printlnFn(fmt.Sprintf("profilesync CLI, %s backend (type 'help' for commands)", a.identity.Mode()))
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	if a.userName != "" {
		return true
	}
	s, err := a.identity.Session(context.Background())
	return err == nil && !s.IsZero()
}

// getStatus renders "(user status)" for the prompt.
func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.status != nil {
		s += string(a.status.Status())
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
