// Package iface queries the OS network-interface table. The table is
// re-enumerated on every query and never cached; entry order is whatever the
// platform reports and is treated as fixed for the duration of one call.
package iface

import (
	"github.com/macshift/macshift/types"
)

// Entry is one row of the OS interface table. An interface usually appears
// several times, once per address family; only the link-layer row carries a
// hardware address.
type Entry struct {
	// Name is the interface name, e.g. "eth0".
	Name string
	// Link is the 6-byte hardware address for link-layer rows, nil otherwise.
	Link *types.MacAddr
}

// Table produces a fresh snapshot of the OS interface table.
type Table interface {
	Entries() ([]Entry, error)
}

// Match is a successful Lookup result.
type Match struct {
	Name string
	Addr types.MacAddr
}

// Directory answers existence and hardware-address queries against a Table.
type Directory struct {
	table Table
}

// NewDirectory returns a Directory backed by the given table.
func NewDirectory(t Table) *Directory {
	return &Directory{table: t}
}

// Exists reports whether any entry of any address family carries exactly the
// given name. The match is case-sensitive.
func (d *Directory) Exists(name string) (bool, error) {
	entries, err := d.table.Entries()
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// Lookup finds a link-layer entry. With a name it returns the first link-layer
// entry for that interface, even when the address is all-zero. With an empty
// name it returns the first link-layer entry whose address is not all-zero,
// i.e. the first plausible real interface in enumeration order.
//
// A nil Match means nothing matched; that is a normal outcome, not an error.
func (d *Directory) Lookup(name string) (*Match, error) {
	entries, err := d.table.Entries()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Link == nil {
			continue
		}
		if name != "" {
			if e.Name == name {
				return &Match{Name: e.Name, Addr: *e.Link}, nil
			}
			continue
		}
		if !e.Link.IsZero() {
			return &Match{Name: e.Name, Addr: *e.Link}, nil
		}
	}
	return nil, nil
}
