package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/pawpark/internal/config"
	"github.com/vovakirdan/pawpark/internal/progression"
	"github.com/vovakirdan/pawpark/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.pawpark/host_key.
	HostKeyPath string

	// DBPath is the path to the shared progression database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Catch is the game tuning served to every player.
	Catch config.CatchConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.pawpark/pawpark.db",
		IdleTimeout: 30 * time.Minute,
		Catch:       config.DefaultCatchConfig(),
	}
}

// SSHServer serves pawpark over SSH. Every user name gets its own
// progression inside the shared database.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	kv     storage.KV
	logger *log.Logger

	mu    sync.Mutex
	repos map[string]*progression.Repository
	live  map[string]*Services // by SSH session id
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger logs to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pawpark-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
		repos:  make(map[string]*progression.Repository),
		live:   make(map[string]*Services),
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		// Progress then only lasts as long as the server.
		logger.Warn("could not open database, keeping progress in memory", "error", err)
		srv.kv = storage.NewMemory()
	} else {
		srv.store = store
		srv.kv = store
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".pawpark", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// repoFor returns the repository of user, creating it on first use. All
// connections of one user share it so their writes serialize.
func (s *SSHServer) repoFor(user string) *progression.Repository {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo, ok := s.repos[user]
	if !ok {
		repo = progression.NewRepository(storage.NewNamespace(s.kv, user), s.logger.With("user", user))
		s.repos[user] = repo
	}
	return repo
}

// teaHandler creates the pawpark app for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	user := sshSession.User()
	svc := NewServices(s.repoFor(user), ServiceOptions{
		History: s.store,
		Catch:   s.config.Catch,
		Player:  user,
		Logger:  s.logger.With("user", user),
	})

	s.mu.Lock()
	s.live[sshSession.Context().SessionID()] = svc
	s.mu.Unlock()

	// "ssh -t host guess" opens straight on that screen.
	start := ScreenHub
	if args := sshSession.Command(); len(args) > 0 {
		screen, err := ParseScreen(args[0])
		if err != nil {
			s.logger.Warn("unknown start screen", "user", user, "screen", args[0])
		}
		start = screen
	}

	app := NewApp(sshSession.Context(), svc, start, pty.Window.Width, pty.Window.Height)
	return app, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// sessionMiddleware logs SSH session events and, once the program is gone,
// commits a catch session the player left running.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)

		id := sshSession.Context().SessionID()
		s.mu.Lock()
		svc := s.live[id]
		delete(s.live, id)
		s.mu.Unlock()
		if svc != nil {
			svc.CloseActive(context.WithoutCancel(sshSession.Context()))
		}

		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is done or the
// process receives SIGINT/SIGTERM.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down...")
		return s.Shutdown()
	})
	return g.Wait()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
