package iface

import (
	"fmt"

	"github.com/vishvananda/netlink"

	"github.com/macshift/macshift/types"
)

// systemTable enumerates interfaces through rtnetlink. Links come back in
// kernel (ifindex) order; the policy layer relies on that order being stable
// within one call and nothing here reorders it.
type systemTable struct{}

// NewSystemTable returns the platform interface table.
func NewSystemTable() Table {
	return systemTable{}
}

func (systemTable) Entries() ([]Entry, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}

	var entries []Entry
	for _, l := range links {
		attrs := l.Attrs()

		e := Entry{Name: attrs.Name}
		if len(attrs.HardwareAddr) == len(types.MacAddr{}) {
			var addr types.MacAddr
			copy(addr[:], attrs.HardwareAddr)
			e.Link = &addr
		}
		entries = append(entries, e)

		// One row per assigned IP address, like getifaddrs reports them.
		// These rows carry no hardware address but still answer Exists.
		addrs, err := netlink.AddrList(l, netlink.FAMILY_ALL)
		if err != nil {
			return nil, fmt.Errorf("list addresses of %s: %w", attrs.Name, err)
		}
		for range addrs {
			entries = append(entries, Entry{Name: attrs.Name})
		}
	}
	return entries, nil
}
