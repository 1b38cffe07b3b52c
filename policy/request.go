package policy

// Request is one user intent. The CLI layer constructs exactly one variant
// per invocation, so the set of recognized flag combinations is closed at the
// type level instead of being re-checked at runtime.
type Request interface {
	isRequest()
}

// ShowCurrent asks for the first real interface and its current address.
type ShowCurrent struct{}

// ShowRandom asks for a freshly generated address, nothing applied.
type ShowRandom struct{}

// Set asks for an address to be applied to an interface. Empty Address or
// Interface means the flag was not given.
type Set struct {
	Address   string
	Interface string
	Random    bool
}

func (ShowCurrent) isRequest() {}
func (ShowRandom) isRequest()  {}
func (Set) isRequest()         {}
