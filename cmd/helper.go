package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/macshift/macshift/config"
	"github.com/macshift/macshift/iface"
	"github.com/macshift/macshift/link"
	"github.com/macshift/macshift/lock"
	"github.com/macshift/macshift/policy"
)

// runRequest resolves a request against the live interface table and carries
// out the decision. The mutation backend is only constructed when the
// decision actually applies an address, so read-only invocations never touch
// the run directory or require privileges.
func runRequest(ctx context.Context, req policy.Request) error {
	resolver := &policy.Resolver{Dir: iface.NewDirectory(iface.NewSystemTable())}
	dec, err := resolver.Resolve(req)
	if err != nil {
		return err
	}

	var mut link.Mutator
	if _, ok := dec.Action.(policy.Apply); ok {
		if mut, err = buildMutator(conf); err != nil {
			return err
		}
	}
	return policy.Execute(ctx, dec, mut, os.Stdout)
}

// buildMutator assembles the configured link backend, wrapped in the
// cross-process mutation lock.
func buildMutator(conf *config.Config) (link.Mutator, error) {
	var m link.Mutator
	switch conf.LinkBackend {
	case config.BackendNetlink:
		var err error
		if m, err = link.NewNetlink(); err != nil {
			return nil, fmt.Errorf("init netlink backend: %w", err)
		}
	default:
		m = link.NewIPCommand(conf.IPBinary, conf.UseSudo)
	}

	if err := os.MkdirAll(conf.RunDir, 0o755); err != nil { //nolint:gosec
		return nil, fmt.Errorf("mkdir %s: %w", conf.RunDir, err)
	}
	return link.Serialized{Mutator: m, Locker: lock.NewFileLock(conf.LockFile())}, nil
}
