package types

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MAC address text parse errors, distinguishable via errors.Is.
var (
	// ErrInvalidDigit means a field was not a hex number in [0x00, 0xFF].
	ErrInvalidDigit = errors.New("invalid digit")
	// ErrInvalidLength means the text did not contain exactly 6 fields.
	ErrInvalidLength = errors.New("invalid length")
)

// MacAddr is a 6-octet hardware address. Octet 0 is the OUI byte; its bit 0
// is the multicast bit and bit 1 the locally-administered bit. The zero value
// is the all-zero address, which some links (e.g. loopback) legitimately carry.
type MacAddr [6]byte

// ParseMAC parses a textual MAC address. Fields are separated by ':' or '-'
// (mixing is accepted), must number exactly 6, and each must be 1-2
// case-insensitive hex digits. Parsed addresses are not constrained beyond
// that: multicast and universally-administered values parse fine.
func ParseMAC(s string) (MacAddr, error) {
	var addr MacAddr

	fields := strings.Split(strings.ReplaceAll(s, "-", ":"), ":")
	for i, field := range fields {
		// A 7th field fails before its content is even looked at.
		if i == len(addr) {
			return MacAddr{}, fmt.Errorf("parse MAC %q: %w", s, ErrInvalidLength)
		}
		v, err := strconv.ParseUint(field, 16, 8)
		if err != nil {
			return MacAddr{}, fmt.Errorf("parse MAC %q: field %q: %w", s, field, ErrInvalidDigit)
		}
		addr[i] = byte(v)
	}
	if len(fields) != len(addr) {
		return MacAddr{}, fmt.Errorf("parse MAC %q: %w", s, ErrInvalidLength)
	}
	return addr, nil
}

// String renders the canonical form: uppercase, zero-padded, colon-separated.
// This is the exact form handed to the link mutation backends.
func (m MacAddr) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", m[0], m[1], m[2], m[3], m[4], m[5])
}

// IsZero reports whether all 6 octets are zero.
func (m MacAddr) IsZero() bool {
	return m == MacAddr{}
}

// RandomMAC generates a random locally-administered unicast MAC address.
// The first octet has bit 1 set (locally administered, so it cannot collide
// with a vendor burned-in address) and bit 0 clear (unicast).
func RandomMAC() (MacAddr, error) {
	var addr MacAddr
	if _, err := rand.Read(addr[:]); err != nil {
		return MacAddr{}, fmt.Errorf("generate MAC: %w", err)
	}
	addr[0] = (addr[0] | 0x02) & 0xFE
	return addr, nil
}
