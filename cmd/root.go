package cmd

import (
	"context"
	"fmt"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/macshift/macshift/config"
	"github.com/macshift/macshift/policy"
)

var (
	cfgFile string
	conf    *config.Config

	flagCurrent bool
	flagRandom  bool
)

var rootCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "macshift",
		Short: "Macshift - MAC address utility",
		Long:  "Inspect, randomize, or set the hardware (MAC) address of a network interface.",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig()
		},
		RunE: runRoot,
	}

	// Flag defaults double as the config defaults: viper ranks unchanged
	// flag values below file and env, so they only apply when nothing else
	// sets the key.
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	cmd.PersistentFlags().String("link-backend", config.BackendIP, "link mutation backend (ip|netlink)")
	cmd.PersistentFlags().String("ip-binary", "ip", "ip executable used by the ip backend")
	cmd.PersistentFlags().String("run-dir", "/var/run/macshift", "runtime directory (lock file)")
	cmd.PersistentFlags().Bool("use-sudo", true, "prefix ip invocations with sudo")

	_ = viper.BindPFlag("link_backend", cmd.PersistentFlags().Lookup("link-backend"))
	_ = viper.BindPFlag("ip_binary", cmd.PersistentFlags().Lookup("ip-binary"))
	_ = viper.BindPFlag("run_dir", cmd.PersistentFlags().Lookup("run-dir"))
	_ = viper.BindPFlag("use_sudo", cmd.PersistentFlags().Lookup("use-sudo"))

	viper.SetEnvPrefix("MACSHIFT")
	viper.AutomaticEnv()

	cmd.Flags().BoolVarP(&flagCurrent, "current", "c", false, "print the current MAC address")
	cmd.Flags().BoolVarP(&flagRandom, "random", "r", false, "generate a random MAC address (display only)")

	cmd.AddCommand(
		setCmd,
		listCmd,
		versionCmd,
	)

	return cmd
}()

func initConfig() error {
	conf = config.DefaultConfig()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	_ = viper.ReadInConfig() // optional; missing file is OK

	if err := viper.Unmarshal(conf); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	return log.SetupLog(context.Background(), &conf.Log, "")
}

func runRoot(cmd *cobra.Command, _ []string) error {
	req, ok := rootRequest(flagCurrent, flagRandom)
	if !ok {
		return cmd.Help()
	}
	return runRequest(commandContext(cmd), req)
}

// rootRequest maps the top-level flags to a request. First match wins:
// --current beats --random when both are given.
func rootRequest(current, random bool) (policy.Request, bool) {
	switch {
	case current:
		return policy.ShowCurrent{}, true
	case random:
		return policy.ShowRandom{}, true
	}
	return nil, false
}

// Execute is the main entry point called from main.go.
func Execute() error {
	ctx, cancel := newCommandContext()
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}
