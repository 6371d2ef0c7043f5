package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/grievdesk/internal/client/client"
	"github.com/dmitrijs2005/grievdesk/internal/client/config"
	"github.com/dmitrijs2005/grievdesk/internal/client/device"
	"github.com/dmitrijs2005/grievdesk/internal/client/kv"
	"github.com/dmitrijs2005/grievdesk/internal/client/models"
	"github.com/dmitrijs2005/grievdesk/internal/client/preferences"
	"github.com/dmitrijs2005/grievdesk/internal/client/services"
	"github.com/dmitrijs2005/grievdesk/internal/client/session"
	"github.com/dmitrijs2005/grievdesk/internal/client/submission"
	"github.com/dmitrijs2005/grievdesk/internal/common"
	"github.com/dmitrijs2005/grievdesk/internal/cryptox"
	"github.com/dmitrijs2005/grievdesk/internal/filex"
	"github.com/dmitrijs2005/grievdesk/internal/logging"
)

const (
	dbFileName     = "client.db"
	keyFileName    = "device.key"
	saltFileName   = "device.salt"
	deviceKeySize  = 32
	deviceSaltSize = 16
)

// sessionService is the part of session.Store the screens use.
type sessionService interface {
	SignIn(ctx context.Context, identifier, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
	CurrentSession(ctx context.Context) (*models.Session, error)
	RequireSession(ctx context.Context) (*models.Session, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Session, error)
	CompleteSignUp(ctx context.Context, reg models.Registration, user *models.User) (*models.Session, error)
}

type App struct {
	config   *config.Config
	sessions sessionService
	content  services.ContentService
	api      submission.Doer
	picker   device.MediaPicker
	opener   device.MediaOpener
	locator  device.Locator
	reader   *bufio.Reader
	out      io.Writer
	log      logging.Logger
	closer   io.Closer
}

// NewApp opens local storage under cfg.DataDir and builds every service the
// screens need.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	db, err := kv.OpenSQLite(ctx, filepath.Join(dir, dbFileName))
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	var store kv.Store = db
	if cfg.EncryptStorage {
		key, err := deviceKey(dir)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		store = kv.NewSealed(db, key)
	}

	api, err := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	locator := device.StaticLocator{Address: cfg.StaticAddress}

	sessions := session.NewStore(api, store, log)
	sessions.SetAddressLookup(locator.CurrentAddress, 0)

	likes := preferences.NewCache(store, log)

	a := &App{
		config:   cfg,
		sessions: sessions,
		content:  services.NewContentService(api, likes, sessions, cfg.ServerURL, log),
		api:      api,
		opener:   device.FileOpener{},
		locator:  locator,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		log:      log,
		closer:   db,
	}
	a.picker = device.FilePicker{Prompt: a.prompt}
	return a, nil
}

// deviceKey derives the storage sealing key from a per-device random secret
// kept next to the database.
func deviceKey(dir string) ([]byte, error) {
	secret, err := filex.ReadOrCreate(filepath.Join(dir, keyFileName), func() []byte {
		return common.GenerateRandByteArray(deviceKeySize)
	})
	if err != nil {
		return nil, fmt.Errorf("device key: %w", err)
	}
	defer common.WipeByteArray(secret)

	salt, err := filex.ReadOrCreate(filepath.Join(dir, saltFileName), func() []byte {
		return common.GenerateRandByteArray(deviceSaltSize)
	})
	if err != nil {
		return nil, fmt.Errorf("device salt: %w", err)
	}
	return cryptox.DeriveKey(secret, salt), nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *App) prompt(_ context.Context, label string) (string, error) {
	return getSimpleText(a.reader, label, a.out)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) currentSession(ctx context.Context) *models.Session {
	sess, err := a.sessions.CurrentSession(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to read session", "error", err)
		return nil
	}
	return sess
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.currentSession(ctx) != nil
}
