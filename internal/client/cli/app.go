package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/dmitrijs2005/contractlens/internal/buildinfo"
	"github.com/dmitrijs2005/contractlens/internal/client/client"
	"github.com/dmitrijs2005/contractlens/internal/client/config"
	"github.com/dmitrijs2005/contractlens/internal/client/models"
	"github.com/dmitrijs2005/contractlens/internal/client/services"
	"github.com/dmitrijs2005/contractlens/internal/client/session"
	"github.com/dmitrijs2005/contractlens/internal/client/ui"
	"github.com/dmitrijs2005/contractlens/internal/common"
	"github.com/dmitrijs2005/contractlens/internal/cryptox"
	"github.com/dmitrijs2005/contractlens/internal/filex"
	"github.com/dmitrijs2005/contractlens/internal/logging"

	_ "modernc.org/sqlite"
)

const (
	sessionDBName  = "session.db"
	sessionKeyName = "session.key"
)

// sessionState is what the commands need from session.Store.
type sessionState interface {
	Current() models.Snapshot
	Subscribe(fn func(models.Snapshot)) (unsubscribe func())
}

type App struct {
	config    *config.Config
	log       logging.Logger
	session   sessionState
	auth      services.AuthService
	contracts services.ContractService
	db        *sql.DB

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	// interactive is set while the shell runs; the route guard then prompts
	// for a login instead of failing.
	interactive bool

	// expired records that the backend rejected our credential during this
	// run; needLogin asks the shell to log in before the next prompt.
	expired   atomic.Bool
	needLogin atomic.Bool
}

// openStorage picks the session backend for cfg. The returned *sql.DB is
// nil when the session lives in memory. A damaged key or database costs the
// stored session, never the ability to log in: a bad key is replaced and an
// unusable database falls back to memory for this run.
func openStorage(ctx context.Context, cfg *config.Config, log logging.Logger) (session.Storage, *sql.DB, error) {
	if cfg.Ephemeral {
		return session.NewMemoryStorage(), nil, nil
	}

	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("data dir: %w", err)
	}

	dbPath := filepath.Join(dir, sessionDBName)
	db, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		log.Warn(ctx, "local session database unusable, session will not be kept", "path", dbPath, "error", err)
		return session.NewMemoryStorage(), nil, nil
	}

	key, err := loadDeviceKey(ctx, filepath.Join(dir, sessionKeyName), log)
	if err != nil {
		log.Warn(ctx, "device key unusable, session will not be kept", "error", err)
		_ = db.Close()
		return session.NewMemoryStorage(), nil, nil
	}
	defer common.WipeByteArray(key)

	sealed, err := session.NewSealedStorage(session.NewSQLiteStorage(db), key)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return sealed, db, nil
}

// loadDeviceKey replaces a key file of the wrong size with a fresh key.
// Values sealed under the old key no longer open and are discarded on the
// next restore.
func loadDeviceKey(ctx context.Context, path string, log logging.Logger) ([]byte, error) {
	key, err := cryptox.LoadOrCreateKey(path)
	if !errors.Is(err, cryptox.ErrInvalidKey) {
		return key, err
	}

	log.Warn(ctx, "device key damaged, generating a new one", "path", path, "error", err)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove damaged key: %w", err)
	}
	return cryptox.LoadOrCreateKey(path)
}

// NewApp wires storage, the session store, the HTTP pipeline and the
// services for cfg. The caller must Close the App.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out, errOut io.Writer) (*App, error) {
	storage, db, err := openStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(storage, session.WithLogger(log.With("module", "session")))

	a := &App{
		config:  cfg,
		log:     log,
		session: store,
		db:      db,
		in:      bufio.NewReader(in),
		out:     out,
		errOut:  errOut,
	}

	api := client.NewHTTPClient(cfg.ServerBaseURL,
		client.WithCredentials(store),
		client.WithSessionExpiredHandler(a.onSessionExpired),
		client.WithTimeouts(cfg.RequestTimeout, cfg.LongRequestTimeout),
		client.WithUserAgent(common.AppName+"/"+buildinfo.Version()),
		client.WithLogger(log.With("module", "client")),
	)

	a.auth = services.NewAuthService(api, store, log.With("module", "auth"))
	a.contracts = services.NewContractService(api, log.With("module", "contracts"))
	return a, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// onSessionExpired runs after the pipeline has already cleared the session.
func (a *App) onSessionExpired(ctx context.Context) {
	a.expired.Store(true)
	a.log.Info(ctx, "session expired")
	fmt.Fprintln(a.errOut, ui.Alert(ui.AlertError, MsgSessionExpired))
	if a.interactive {
		a.needLogin.Store(true)
	}
}

// guard is the route guard of protected commands. In the shell it sends the
// user through login; otherwise it fails with common.ErrNotLoggedIn.
func (a *App) guard(ctx context.Context) error {
	if a.session.Current().Authenticated {
		return nil
	}
	if !a.interactive {
		return common.ErrNotLoggedIn
	}

	fmt.Fprintln(a.out, ui.Alert(ui.AlertInfo, "Please log in to continue."))
	return a.Login(ctx, "")
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) alert(kind ui.AlertKind, msg string) {
	if kind == ui.AlertError {
		fmt.Fprintln(a.errOut, ui.Alert(kind, msg))
		return
	}
	fmt.Fprintln(a.out, ui.Alert(kind, msg))
}
