package cli

import (
	"encoding/json"

	"storefront/internal/repository"

	"github.com/spf13/cobra"
)

func newOrdersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect recorded checkouts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <order-number>",
		Short: "Print the lines of a recorded order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			orders, err := repository.NewOrderRepository(store.DB()).FindByOrderNumber(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			return enc.Encode(orders)
		},
	})

	return cmd
}
