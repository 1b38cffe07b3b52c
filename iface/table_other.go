//go:build !linux

package iface

import (
	"fmt"
	"net"

	gopsnet "github.com/shirou/gopsutil/net"

	"github.com/macshift/macshift/types"
)

// systemTable enumerates interfaces through gopsutil on platforms without
// rtnetlink.
type systemTable struct{}

// NewSystemTable returns the platform interface table.
func NewSystemTable() Table {
	return systemTable{}
}

func (systemTable) Entries() ([]Entry, error) {
	stats, err := gopsnet.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}

	var entries []Entry
	for _, s := range stats {
		e := Entry{Name: s.Name}
		if hw, err := net.ParseMAC(s.HardwareAddr); err == nil && len(hw) == len(types.MacAddr{}) {
			var addr types.MacAddr
			copy(addr[:], hw)
			e.Link = &addr
		}
		entries = append(entries, e)

		for range s.Addrs {
			entries = append(entries, Entry{Name: s.Name})
		}
	}
	return entries, nil
}
