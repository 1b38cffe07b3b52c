// Package policy resolves partial and conflicting user input into a single
// deterministic action: which address to show or apply, to which interface,
// or which advisory or error to emit instead.
package policy

import (
	"errors"
	"fmt"

	"github.com/macshift/macshift/iface"
	"github.com/macshift/macshift/types"
)

// ErrNoInterface means the host has no link-layer interface with a usable
// address while one was required to fall back on. The CLI contract makes this
// unreachable on any sane host; it is propagated, never swallowed.
var ErrNoInterface = errors.New("no usable network interface found")

// Advisory texts. Advisories inform without changing the resolved action,
// except the interface-alone case which resolves to no action at all.
const (
	AdvisoryInterfaceAlone   = "You can't just pass an interface, use -r for a random address or use -a to specify an address"
	AdvisoryNothingToDo      = "Nothing to do, use -r for a random address or use -a to specify an address"
	AdvisoryRandomPrecedence = "Using a random MAC address even though the '--address' flag was specified"
	AdvisoryNoInterface      = "No interface provided, using the first valid interface"
)

// Directory is the interface-table view the resolver needs.
type Directory interface {
	Exists(name string) (bool, error)
	Lookup(name string) (*iface.Match, error)
}

// Action is what an invocation resolved to. A Decision with a nil Action is
// advisory-only.
type Action interface {
	isAction()
}

// CurrentAddress shows the first real interface and its address.
type CurrentAddress struct {
	Interface string
	Addr      types.MacAddr
}

// NoCurrentAddress means no interface carries a non-zero address.
type NoCurrentAddress struct{}

// GeneratedAddress shows a generated address without applying it.
type GeneratedAddress struct {
	Addr types.MacAddr
}

// Apply sets Addr on Interface. Random records whether the address was
// generated rather than user-supplied.
type Apply struct {
	Interface string
	Addr      types.MacAddr
	Random    bool
}

func (CurrentAddress) isAction()   {}
func (NoCurrentAddress) isAction() {}
func (GeneratedAddress) isAction() {}
func (Apply) isAction()            {}

// Decision is the resolved outcome of one Request.
type Decision struct {
	Advisories []string
	Action     Action
}

// Resolver turns Requests into Decisions. It reads the interface table but
// never mutates anything.
type Resolver struct {
	Dir Directory
	// Gen overrides the address generator; nil means types.RandomMAC.
	Gen func() (types.MacAddr, error)
}

// Resolve evaluates the request. Branches are checked in strict priority
// order; the first match wins.
func (r *Resolver) Resolve(req Request) (Decision, error) {
	switch q := req.(type) {
	case ShowCurrent:
		m, err := r.Dir.Lookup("")
		if err != nil {
			return Decision{}, fmt.Errorf("get current address: %w", err)
		}
		if m == nil {
			return Decision{Action: NoCurrentAddress{}}, nil
		}
		return Decision{Action: CurrentAddress{Interface: m.Name, Addr: m.Addr}}, nil

	case ShowRandom:
		addr, err := r.generate()
		if err != nil {
			return Decision{}, err
		}
		return Decision{Action: GeneratedAddress{Addr: addr}}, nil

	case Set:
		return r.resolveSet(q)
	}
	// Request is sealed; new variants must be handled above.
	return Decision{}, fmt.Errorf("unhandled request %T", req)
}

func (r *Resolver) resolveSet(q Set) (Decision, error) {
	var dec Decision

	switch {
	case q.Interface != "" && q.Address == "" && !q.Random:
		dec.Advisories = append(dec.Advisories, AdvisoryInterfaceAlone)
		return dec, nil

	case q.Random:
		if q.Address != "" {
			dec.Advisories = append(dec.Advisories, AdvisoryRandomPrecedence)
		}
		addr, err := r.generate()
		if err != nil {
			return dec, err
		}
		return r.resolveTarget(dec, q.Interface, addr, true)

	case q.Address != "":
		addr, err := types.ParseMAC(q.Address)
		if err != nil {
			return dec, fmt.Errorf("invalid MAC address %q: %w", q.Address, err)
		}
		return r.resolveTarget(dec, q.Interface, addr, false)
	}

	// Bare "set" with no flags at all.
	dec.Advisories = append(dec.Advisories, AdvisoryNothingToDo)
	return dec, nil
}

// resolveTarget picks the interface to apply addr to: the named one if it
// exists, otherwise the first interface with a real address.
func (r *Resolver) resolveTarget(dec Decision, name string, addr types.MacAddr, random bool) (Decision, error) {
	if name != "" {
		ok, err := r.Dir.Exists(name)
		if err != nil {
			return dec, fmt.Errorf("check interface %s: %w", name, err)
		}
		if !ok {
			dec.Advisories = append(dec.Advisories, fmt.Sprintf("Interface doesn't exist: %q", name))
			return dec, nil
		}
		dec.Action = Apply{Interface: name, Addr: addr, Random: random}
		return dec, nil
	}

	dec.Advisories = append(dec.Advisories, AdvisoryNoInterface)
	m, err := r.Dir.Lookup("")
	if err != nil {
		return dec, fmt.Errorf("find fallback interface: %w", err)
	}
	if m == nil {
		return dec, ErrNoInterface
	}
	dec.Action = Apply{Interface: m.Name, Addr: addr, Random: random}
	return dec, nil
}

func (r *Resolver) generate() (types.MacAddr, error) {
	gen := r.Gen
	if gen == nil {
		gen = types.RandomMAC
	}
	return gen()
}
