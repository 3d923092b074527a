// Package commands implements the tourcompared CLI.
package commands

import (
	"github.com/spf13/cobra"

	"go-tour-compare/config"
)

var (
	cfgPath string
	cfg     *config.Config
)

func Execute() error {
	root := &cobra.Command{
		Use:   "tourcompared",
		Short: "Tour pricing and comparison service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgPath)
			return err
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ./tourcompare.yaml)")

	root.AddCommand(serveCmd(), currenciesCmd(), formatCmd())
	return root.Execute()
}
