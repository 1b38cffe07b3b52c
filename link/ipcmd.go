package link

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/projecteru2/core/log"

	"github.com/macshift/macshift/types"
)

// IPCommand sets the address by shelling out to ip(8), optionally through
// sudo. The external command's output and exit status are not interpreted;
// only a failure to invoke it at all is reported. This is the portable
// default backend.
type IPCommand struct {
	// Binary is the ip executable name or path.
	Binary string
	// Sudo prefixes every invocation with sudo.
	Sudo bool

	// run is swappable for tests.
	run func(ctx context.Context, name string, args ...string) error
}

// NewIPCommand returns an exec-based Mutator.
func NewIPCommand(binary string, sudo bool) *IPCommand {
	return &IPCommand{Binary: binary, Sudo: sudo, run: runCommand}
}

func (c *IPCommand) SetAddress(ctx context.Context, name string, addr types.MacAddr) error {
	logger := log.WithFunc("link.IPCommand.SetAddress")
	steps := [][]string{
		{"link", "set", name, "down"},
		{"link", "set", name, "address", addr.String()},
		{"link", "set", name, "up"},
	}
	for _, args := range steps {
		bin := c.Binary
		if c.Sudo {
			args = append([]string{bin}, args...)
			bin = "sudo"
		}
		logger.Debugf(ctx, "exec: %s %v", bin, args)
		if err := c.run(ctx, bin, args...); err != nil {
			return fmt.Errorf("invoke %s: %w", bin, err)
		}
	}
	logger.Infof(ctx, "set %s address to %s", name, addr)
	return nil
}

// runCommand executes the step and discards its output. A non-zero exit is
// not an invocation failure, so it is swallowed here.
func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}
