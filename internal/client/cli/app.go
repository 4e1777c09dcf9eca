package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/iulianbarbu/solana-social-dapp/internal/client/client"
	"github.com/iulianbarbu/solana-social-dapp/internal/client/config"
	"github.com/iulianbarbu/solana-social-dapp/internal/client/keystore"
	"github.com/iulianbarbu/solana-social-dapp/internal/client/services"
	"github.com/iulianbarbu/solana-social-dapp/internal/logging"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

// socialService is the part of services.SocialService the CLI drives.
type socialService interface {
	Ping(ctx context.Context) error
	Identity() (pubkey.Pubkey, bool)
	StateAddress() (pubkey.Pubkey, bool)
	Register(ctx context.Context, kp *pubkey.Keypair) (bool, error)
	Login(ctx context.Context, kp *pubkey.Keypair) error
	UseOffline(ctx context.Context, kp *pubkey.Keypair) error
	EnsureStateAccount(ctx context.Context) (pubkey.Pubkey, bool, error)
	AddFriend(ctx context.Context, target pubkey.Pubkey) (*services.TxOutcome, error)
	RemoveFriend(ctx context.Context, target pubkey.Pubkey) (*services.TxOutcome, error)
	SetStatus(ctx context.Context, online bool) (*services.TxOutcome, error)
	Show(ctx context.Context) (*services.View, error)
	Export(ctx context.Context) (*services.Export, error)
	Logout(ctx context.Context) error
	Close() error
}

type App struct {
	config *config.Config
	social socialService
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer

	mu       sync.RWMutex
	mode     Mode
	loggedIn bool
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger, err := logging.NewFromConfig(os.Stderr, "text", "info")
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.CacheDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return newApp(c, services.NewSocialService(apiClient, db), logger, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, s socialService, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		social: s,
		logger: logger,
		reader: bufio.NewReader(in),
		out:    out,
		mode:   ModeDisabled,
	}
}

// Mode returns the current connectivity mode.
func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.logger.Info(context.Background(), "switched mode", "mode", string(mode))
	}
}

func (a *App) setLoggedIn(v bool) {
	a.mu.Lock()
	a.loggedIn = v
	a.mu.Unlock()
}

func (a *App) isLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loggedIn
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// status is the prompt suffix: identity and mode, or a login hint.
func (a *App) status() string {
	if !a.isLoggedIn() {
		return "not logged in"
	}
	me, _ := a.social.Identity()
	return fmt.Sprintf("%s [%s]", me, a.Mode())
}

// Run logs in with the keypair file when present, starts the connectivity
// watcher and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.social.Close(); err != nil {
			a.logger.Error(ctx, "error closing", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.printf("Welcome! Type help for the list of commands.\n")

	if keystore.Exists(a.config.KeypairPath) {
		runCommand(ctx, a.Login, a.config.RequestTimeout)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.status, a.reader, a.config.RequestTimeout)
}

// StartOnlineStatusWatcher pings the node every interval and flips the mode
// between online and offline. A disabled app stays disabled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	if !a.isLoggedIn() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.social.Ping(ctx)
	cancel()

	if err != nil {
		if a.Mode() == ModeOnline {
			a.setMode(ModeOffline)
		}
		return
	}
	if a.Mode() != ModeOnline {
		a.setMode(ModeOnline)
	}
}
