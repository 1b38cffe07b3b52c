package policy

import (
	"context"
	"fmt"
	"io"

	"github.com/macshift/macshift/link"
)

// Execute prints a Decision's advisories and result to out and performs its
// mutation, if any. The mutator is invoked exactly once for Apply decisions
// and never otherwise.
func Execute(ctx context.Context, dec Decision, mut link.Mutator, out io.Writer) error {
	for _, a := range dec.Advisories {
		fmt.Fprintln(out, a)
	}

	switch act := dec.Action.(type) {
	case nil:
		return nil
	case CurrentAddress:
		fmt.Fprintf(out, "Your current MAC address (%s): %s\n", act.Interface, act.Addr)
	case NoCurrentAddress:
		fmt.Fprintln(out, "No MAC address found :(")
	case GeneratedAddress:
		fmt.Fprintf(out, "Random MAC address: %s\n", act.Addr)
	case Apply:
		if err := mut.SetAddress(ctx, act.Interface, act.Addr); err != nil {
			return fmt.Errorf("set address: %w", err)
		}
		fmt.Fprintf(out, "Set MAC address (%s) to %s\n", act.Interface, act.Addr)
	}
	return nil
}
