package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/karel-quest/internal/core"
	"github.com/vovakirdan/karel-quest/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the SSH server. Zero fields take defaults.
type SSHServerConfig struct {
	Address     string        // default ":23234"
	HostKeyPath string        // default ~/.karel/host_key, generated on first start
	DBPath      string        // default ~/.karel/scores.db
	IdleTimeout time.Duration // default 30m
	TickRate    int           // default 60
}

func (c SSHServerConfig) withDefaults() (SSHServerConfig, error) {
	if c.Address == "" {
		c.Address = ":23234"
	}
	if c.DBPath == "" {
		c.DBPath = "~/.karel/scores.db"
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 30 * time.Minute
	}
	if c.TickRate <= 0 {
		c.TickRate = core.DefaultConfig().TickRate
	}
	if c.HostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return c, fmt.Errorf("ssh: locate host key: %w", err)
		}
		c.HostKeyPath = filepath.Join(home, ".karel", "host_key")
	}
	return c, nil
}

// SSHServer serves the level menu to remote players. Every connection gets
// its own SessionModel; all of them share one scores database.
type SSHServer struct {
	cfg    SSHServerConfig
	srv    *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer builds the server. A nil logger writes timestamped lines to
// stderr. A scores database that fails to open is logged and play goes on
// without persistence.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "karel-ssh"})
	}
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.HostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("ssh: host key directory: %w", err)
	}

	s := &SSHServer{cfg: cfg, logger: logger}
	if s.store, err = storage.Open(cfg.DBPath); err != nil {
		logger.Warn("scores will not be saved", "db", cfg.DBPath, "error", err)
		s.store = nil
	}

	// Middleware runs last to first: log, require a terminal, then play.
	s.srv, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			activeterm.Middleware(),
			s.logSessions,
		),
	)
	if err != nil {
		s.store.Close()
		return nil, fmt.Errorf("ssh: %w", err)
	}
	return s, nil
}

func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.cfg.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	return NewSessionModel(s.store, cfg, s.logger.With("user", sess.User())), []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		l.Info("session started")
		next(sess)
		l.Info("session ended", "duration", time.Since(start).Round(time.Second))
	}
}

// Addr is the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}

// Serve accepts connections until ctx is done or the listener fails, then
// shuts down, giving open sessions a short grace period.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("listening", "address", s.cfg.Address)

	errc := make(chan error, 1)
	go func() {
		err := s.srv.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		errc <- err
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
	case serveErr = <-errc:
		if serveErr != nil {
			s.logger.Error("listener failed", "error", serveErr)
			serveErr = fmt.Errorf("ssh: %w", serveErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	err := s.srv.Shutdown(shutdownCtx)
	s.store.Close()
	if serveErr != nil {
		return serveErr
	}
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}
