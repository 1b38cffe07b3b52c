//go:build !linux

package link

import "errors"

// NewNetlink is unavailable off Linux; the ip backend is the only option.
func NewNetlink() (Mutator, error) {
	return nil, errors.New("netlink link backend requires linux")
}
