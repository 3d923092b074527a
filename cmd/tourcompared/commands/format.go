package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	tours "go-tour-compare"
	"go-tour-compare/currency"
)

func formatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <amount> <code>",
		Short: "Format a base-currency amount in a target currency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parsing amount: %w", err)
			}

			registry, err := cfg.Registry()
			if err != nil {
				return err
			}

			formatted, err := currency.NewFormatter(registry).Format(tours.Amount(amount), tours.CurrencyCode(args[1]))
			if err != nil {
				return err
			}

			fmt.Println(formatted)
			return nil
		},
	}
}
