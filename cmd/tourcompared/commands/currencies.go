package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func currenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "Print the configured currency table",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := cfg.Registry()
			if err != nil {
				return err
			}
			for _, c := range registry.List() {
				base := ""
				if c.RateToBase == 1.0 {
					base = " (base)"
				}
				fmt.Printf("%-4s %-3s %-20s rate %g%s\n", c.Code, c.Symbol, c.Name, c.RateToBase, base)
			}
			return nil
		},
	}
}
