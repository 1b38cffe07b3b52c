package link

import (
	"context"
	"fmt"
	"net"

	"github.com/projecteru2/core/log"
	"github.com/vishvananda/netlink"

	"github.com/macshift/macshift/types"
)

// Netlink sets the address directly over rtnetlink, without spawning external
// commands. Requires CAP_NET_ADMIN.
type Netlink struct{}

// NewNetlink returns the rtnetlink-backed Mutator.
func NewNetlink() (Mutator, error) {
	return Netlink{}, nil
}

func (Netlink) SetAddress(ctx context.Context, name string, addr types.MacAddr) error {
	l, err := netlink.LinkByName(name)
	if err != nil {
		return fmt.Errorf("find link %s: %w", name, err)
	}
	if err := netlink.LinkSetDown(l); err != nil {
		return fmt.Errorf("set %s down: %w", name, err)
	}
	if err := netlink.LinkSetHardwareAddr(l, net.HardwareAddr(addr[:])); err != nil {
		// The link stays down here, same as the ip backend.
		return fmt.Errorf("set %s address: %w", name, err)
	}
	if err := netlink.LinkSetUp(l); err != nil {
		return fmt.Errorf("set %s up: %w", name, err)
	}
	log.WithFunc("link.Netlink.SetAddress").Infof(ctx, "set %s address to %s", name, addr)
	return nil
}
