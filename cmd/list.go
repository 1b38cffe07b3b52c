package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/macshift/macshift/iface"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List interfaces and their hardware addresses",
	RunE:    runList,
}

func runList(_ *cobra.Command, _ []string) error {
	entries, err := iface.NewSystemTable().Entries()
	if err != nil {
		return fmt.Errorf("list interfaces: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tADDRESS")
	n := 0
	for _, e := range entries {
		if e.Link == nil {
			continue
		}
		addr := e.Link.String()
		if e.Link.IsZero() {
			addr += " (zero)"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", e.Name, addr)
		n++
	}
	if n == 0 {
		fmt.Println("No interfaces found.")
		return nil
	}
	w.Flush() //nolint:errcheck,gosec
	return nil
}
