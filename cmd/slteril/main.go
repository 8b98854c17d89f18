package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ftl/slte-ril/config"
)

var rootFlags = struct {
	configFile string
}{}

func main() {
	rootCmd := &cobra.Command{
		Use:   "slteril",
		Short: "RIL compatibility shim for the XMM7260 modem",
	}
	rootCmd.PersistentFlags().StringVar(&rootFlags.configFile, "config", "", "YAML configuration file")

	rootCmd.AddCommand(newMonitorCmd())
	rootCmd.AddCommand(newVibratorCmd())
	rootCmd.AddCommand(newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func loadConfig() (config.Config, error) {
	return config.Load(rootFlags.configFile)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}
}
