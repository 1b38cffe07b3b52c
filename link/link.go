// Package link changes the hardware address of a network interface. All
// backends perform the same non-transactional three-step sequence: bring the
// interface down, set the address, bring it back up. A failure mid-sequence
// can leave the interface down; no rollback is attempted.
package link

import (
	"context"

	"github.com/macshift/macshift/lock"
	"github.com/macshift/macshift/types"
)

// Mutator applies a hardware address to a named interface.
type Mutator interface {
	SetAddress(ctx context.Context, name string, addr types.MacAddr) error
}

// Serialized guards a Mutator with a cross-process lock so two concurrent
// invocations cannot interleave their down/set/up sequences.
type Serialized struct {
	Mutator Mutator
	Locker  lock.Locker
}

func (s Serialized) SetAddress(ctx context.Context, name string, addr types.MacAddr) error {
	return lock.WithLock(ctx, s.Locker, func() error {
		return s.Mutator.SetAddress(ctx, name, addr)
	})
}
