package policy

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/macshift/macshift/iface"
	"github.com/macshift/macshift/types"
)

var genAddr = types.MacAddr{0x02, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA}

// fixedGen is a deterministic generator so tests can tell generated addresses
// apart from user-supplied ones.
func fixedGen() (types.MacAddr, error) {
	return genAddr, nil
}

type fakeDir struct {
	entries []iface.Entry
	err     error
}

func (f fakeDir) Exists(name string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, e := range f.entries {
		if e.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeDir) Lookup(name string) (*iface.Match, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.entries {
		if e.Link == nil {
			continue
		}
		if name != "" {
			if e.Name == name {
				return &iface.Match{Name: e.Name, Addr: *e.Link}, nil
			}
			continue
		}
		if !e.Link.IsZero() {
			return &iface.Match{Name: e.Name, Addr: *e.Link}, nil
		}
	}
	return nil, nil
}

func hostDir() fakeDir {
	lo := types.MacAddr{}
	eth0 := types.MacAddr{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	return fakeDir{entries: []iface.Entry{
		{Name: "lo", Link: &lo},
		{Name: "eth0", Link: &eth0},
		{Name: "eth0"},
	}}
}

func resolver(d Directory) *Resolver {
	return &Resolver{Dir: d, Gen: fixedGen}
}

func TestResolve_ShowCurrent(t *testing.T) {
	dec, err := resolver(hostDir()).Resolve(ShowCurrent{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	act, ok := dec.Action.(CurrentAddress)
	if !ok {
		t.Fatalf("expected CurrentAddress, got %T", dec.Action)
	}
	if act.Interface != "eth0" || act.Addr.String() != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("got %+v", act)
	}
	if len(dec.Advisories) != 0 {
		t.Errorf("unexpected advisories: %v", dec.Advisories)
	}
}

func TestResolve_ShowCurrent_NotFound(t *testing.T) {
	lo := types.MacAddr{}
	d := fakeDir{entries: []iface.Entry{{Name: "lo", Link: &lo}}}
	dec, err := resolver(d).Resolve(ShowCurrent{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, ok := dec.Action.(NoCurrentAddress); !ok {
		t.Fatalf("expected NoCurrentAddress, got %T", dec.Action)
	}
}

func TestResolve_ShowCurrent_EnumerationError(t *testing.T) {
	boom := errors.New("netlink down")
	if _, err := resolver(fakeDir{err: boom}).Resolve(ShowCurrent{}); !errors.Is(err, boom) {
		t.Fatalf("expected propagated error, got %v", err)
	}
}

func TestResolve_ShowRandom(t *testing.T) {
	dec, err := resolver(hostDir()).Resolve(ShowRandom{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	act, ok := dec.Action.(GeneratedAddress)
	if !ok {
		t.Fatalf("expected GeneratedAddress, got %T", dec.Action)
	}
	if act.Addr != genAddr {
		t.Errorf("got %s, want generated %s", act.Addr, genAddr)
	}
}

func TestResolve_Set_InterfaceAlone(t *testing.T) {
	dec, err := resolver(hostDir()).Resolve(Set{Interface: "eth0"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if dec.Action != nil {
		t.Fatalf("expected no action, got %T", dec.Action)
	}
	if len(dec.Advisories) != 1 || dec.Advisories[0] != AdvisoryInterfaceAlone {
		t.Errorf("advisories: %v", dec.Advisories)
	}
}

func TestResolve_Set_Bare(t *testing.T) {
	dec, err := resolver(hostDir()).Resolve(Set{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if dec.Action != nil {
		t.Fatalf("expected no action, got %T", dec.Action)
	}
	if len(dec.Advisories) != 1 || dec.Advisories[0] != AdvisoryNothingToDo {
		t.Errorf("advisories: %v", dec.Advisories)
	}
}

// Random wins over an explicit address, with exactly one precedence advisory,
// and the applied address is the generated one, not the literal.
func TestResolve_Set_RandomBeatsAddress(t *testing.T) {
	dec, err := resolver(hostDir()).Resolve(Set{
		Address:   "AA:BB:CC:DD:EE:FF",
		Interface: "eth0",
		Random:    true,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(dec.Advisories) != 1 || dec.Advisories[0] != AdvisoryRandomPrecedence {
		t.Fatalf("advisories: %v", dec.Advisories)
	}
	act, ok := dec.Action.(Apply)
	if !ok {
		t.Fatalf("expected Apply, got %T", dec.Action)
	}
	if act.Addr != genAddr {
		t.Errorf("applied %s, want generated %s", act.Addr, genAddr)
	}
	if !act.Random || act.Interface != "eth0" {
		t.Errorf("got %+v", act)
	}
}

func TestResolve_Set_RandomMissingInterface(t *testing.T) {
	dec, err := resolver(hostDir()).Resolve(Set{Interface: "wlan9", Random: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if dec.Action != nil {
		t.Fatalf("expected no action, got %T", dec.Action)
	}
	if len(dec.Advisories) != 1 || !strings.Contains(dec.Advisories[0], "wlan9") {
		t.Errorf("advisories: %v", dec.Advisories)
	}
}

func TestResolve_Set_RandomFallbackInterface(t *testing.T) {
	dec, err := resolver(hostDir()).Resolve(Set{Random: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(dec.Advisories) != 1 || dec.Advisories[0] != AdvisoryNoInterface {
		t.Fatalf("advisories: %v", dec.Advisories)
	}
	act, ok := dec.Action.(Apply)
	if !ok {
		t.Fatalf("expected Apply, got %T", dec.Action)
	}
	if act.Interface != "eth0" || act.Addr != genAddr {
		t.Errorf("got %+v", act)
	}
}

func TestResolve_Set_FallbackWithoutAnyInterface(t *testing.T) {
	lo := types.MacAddr{}
	d := fakeDir{entries: []iface.Entry{{Name: "lo", Link: &lo}}}
	_, err := resolver(d).Resolve(Set{Random: true})
	if !errors.Is(err, ErrNoInterface) {
		t.Fatalf("expected ErrNoInterface, got %v", err)
	}
}

func TestResolve_Set_ExplicitAddress(t *testing.T) {
	dec, err := resolver(hostDir()).Resolve(Set{
		Address:   "02:11:22:33:44:55",
		Interface: "eth0",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	act, ok := dec.Action.(Apply)
	if !ok {
		t.Fatalf("expected Apply, got %T", dec.Action)
	}
	if act.Random || act.Addr.String() != "02:11:22:33:44:55" {
		t.Errorf("got %+v", act)
	}
	if len(dec.Advisories) != 0 {
		t.Errorf("unexpected advisories: %v", dec.Advisories)
	}
}

func TestResolve_Set_InvalidAddress(t *testing.T) {
	dec, err := resolver(hostDir()).Resolve(Set{Address: "zz:11:22:33:44:55"})
	if !errors.Is(err, types.ErrInvalidDigit) {
		t.Fatalf("expected ErrInvalidDigit, got %v", err)
	}
	if dec.Action != nil {
		t.Errorf("expected no action, got %T", dec.Action)
	}
}

func TestResolve_Set_ExplicitAddressFallback(t *testing.T) {
	dec, err := resolver(hostDir()).Resolve(Set{Address: "02:11:22:33:44:55"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	act, ok := dec.Action.(Apply)
	if !ok {
		t.Fatalf("expected Apply, got %T", dec.Action)
	}
	if act.Interface != "eth0" {
		t.Errorf("got %+v", act)
	}
}

// --- Execute ---

type countingMutator struct {
	calls int
	name  string
	addr  types.MacAddr
	err   error
}

func (m *countingMutator) SetAddress(_ context.Context, name string, addr types.MacAddr) error {
	m.calls++
	m.name, m.addr = name, addr
	return m.err
}

func TestExecute_AdvisoryOnly_NoMutation(t *testing.T) {
	mut := &countingMutator{}
	var out bytes.Buffer
	dec := Decision{Advisories: []string{AdvisoryInterfaceAlone}}
	if err := Execute(context.Background(), dec, mut, &out); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if mut.calls != 0 {
		t.Errorf("mutator invoked %d times, want 0", mut.calls)
	}
	if !strings.Contains(out.String(), AdvisoryInterfaceAlone) {
		t.Errorf("output %q missing advisory", out.String())
	}
}

func TestExecute_Apply_MutatesOnce(t *testing.T) {
	mut := &countingMutator{}
	var out bytes.Buffer
	dec := Decision{Action: Apply{Interface: "eth0", Addr: genAddr, Random: true}}
	if err := Execute(context.Background(), dec, mut, &out); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if mut.calls != 1 {
		t.Fatalf("mutator invoked %d times, want 1", mut.calls)
	}
	if mut.name != "eth0" || mut.addr != genAddr {
		t.Errorf("mutated %s %s", mut.name, mut.addr)
	}
	if !strings.Contains(out.String(), "Set MAC address (eth0) to "+genAddr.String()) {
		t.Errorf("output %q", out.String())
	}
}

func TestExecute_ApplyError(t *testing.T) {
	boom := errors.New("ip missing")
	mut := &countingMutator{err: boom}
	var out bytes.Buffer
	dec := Decision{Action: Apply{Interface: "eth0", Addr: genAddr}}
	if err := Execute(context.Background(), dec, mut, &out); !errors.Is(err, boom) {
		t.Fatalf("expected propagated error, got %v", err)
	}
}

func TestExecute_CurrentOutputs(t *testing.T) {
	var out bytes.Buffer
	dec := Decision{Action: CurrentAddress{Interface: "eth0", Addr: genAddr}}
	if err := Execute(context.Background(), dec, nil, &out); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := "Your current MAC address (eth0): " + genAddr.String()
	if !strings.Contains(out.String(), want) {
		t.Errorf("output %q, want %q", out.String(), want)
	}

	out.Reset()
	if err := Execute(context.Background(), Decision{Action: NoCurrentAddress{}}, nil, &out); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "No MAC address found") {
		t.Errorf("output %q", out.String())
	}
}
