package tui

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSSHConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := SSHServerConfig{}.withDefaults()
	if err != nil {
		t.Fatalf("withDefaults() error: %v", err)
	}
	if cfg.Address != ":23234" || cfg.IdleTimeout != 30*time.Minute || cfg.TickRate != 60 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.HostKeyPath != filepath.Join(home, ".karel", "host_key") {
		t.Errorf("HostKeyPath = %q", cfg.HostKeyPath)
	}

	custom, _ := SSHServerConfig{Address: ":2222", TickRate: 30, HostKeyPath: "key"}.withDefaults()
	if custom.Address != ":2222" || custom.TickRate != 30 || custom.HostKeyPath != "key" {
		t.Errorf("explicit values overridden: %+v", custom)
	}
}

func TestNewSSHServerWithoutListening(t *testing.T) {
	dir := t.TempDir()
	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(dir, "keys", "host_key"),
		DBPath:      filepath.Join(dir, "scores.db"),
	}, nil)
	if err != nil {
		t.Fatalf("NewSSHServer() error: %v", err)
	}
	t.Cleanup(func() { srv.store.Close() })

	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
	if srv.store == nil {
		t.Error("store should be open")
	}
}
