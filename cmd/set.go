package cmd

import (
	"github.com/spf13/cobra"

	"github.com/macshift/macshift/policy"
)

var setCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the MAC address of an interface",
		RunE:  runSet,
	}
	cmd.Flags().StringP("address", "a", "", "new MAC address to use")
	cmd.Flags().StringP("interface", "i", "", "interface to use (name)")
	cmd.Flags().BoolP("random", "r", false, "use a random MAC address")
	return cmd
}()

func runSet(cmd *cobra.Command, _ []string) error {
	address, _ := cmd.Flags().GetString("address")
	name, _ := cmd.Flags().GetString("interface")
	random, _ := cmd.Flags().GetBool("random")

	return runRequest(commandContext(cmd), policy.Set{
		Address:   address,
		Interface: name,
		Random:    random,
	})
}
