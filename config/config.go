package config

import (
	"fmt"
	"path/filepath"

	coretypes "github.com/projecteru2/core/types"
)

// Link mutation backends.
const (
	BackendIP      = "ip"
	BackendNetlink = "netlink"
)

// Config holds global macshift configuration.
type Config struct {
	// LinkBackend selects how addresses are applied: "ip" shells out to
	// ip(8), "netlink" talks rtnetlink directly (Linux only).
	// Env: MACSHIFT_LINK_BACKEND. Default: ip.
	LinkBackend string `json:"link_backend" mapstructure:"link_backend"`
	// IPBinary is the path or name of the ip executable used by the ip
	// backend. Default: "ip".
	IPBinary string `json:"ip_binary" mapstructure:"ip_binary"`
	// UseSudo prefixes ip invocations with sudo. Default: true, so the tool
	// works from an unprivileged shell the way most people run it.
	UseSudo bool `json:"use_sudo" mapstructure:"use_sudo"`
	// RunDir holds runtime state; today that is only the mutation lock file.
	// Env: MACSHIFT_RUN_DIR. Default: /var/run/macshift.
	RunDir string `json:"run_dir" mapstructure:"run_dir"`
	// Log configuration, uses eru core's ServerLogConfig.
	Log coretypes.ServerLogConfig `json:"log" mapstructure:"log"`
}

// DefaultConfig returns the built-in defaults, before viper overlays file,
// env, and flag values.
func DefaultConfig() *Config {
	return &Config{
		LinkBackend: BackendIP,
		IPBinary:    "ip",
		UseSudo:     true,
		RunDir:      "/var/run/macshift",
		Log:         coretypes.ServerLogConfig{Level: "info"},
	}
}

// Validate rejects values no backend can act on.
func (c *Config) Validate() error {
	switch c.LinkBackend {
	case BackendIP, BackendNetlink:
	default:
		return fmt.Errorf("unknown link_backend %q", c.LinkBackend)
	}
	if c.IPBinary == "" {
		return fmt.Errorf("ip_binary must not be empty")
	}
	if c.RunDir == "" {
		return fmt.Errorf("run_dir must not be empty")
	}
	return nil
}

// LockFile is the flock path that serializes link mutations.
func (c *Config) LockFile() string {
	return filepath.Join(c.RunDir, "link.lock")
}
