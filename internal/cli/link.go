package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"storefront/internal/checkout"
	"storefront/internal/domain"
	"storefront/internal/service"

	"github.com/spf13/cobra"
)

// cartLine is one line of a cart file for "link cart"
type cartLine struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
}

func readCartLines(path string) ([]domain.CartItem, float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read cart file: %w", err)
	}

	var lines []cartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, 0, fmt.Errorf("failed to parse cart file: %w", err)
	}

	items := make([]domain.CartItem, 0, len(lines))
	total := 0.0
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, 0, fmt.Errorf("%s: quantity must be positive", l.Name)
		}
		item := domain.CartItem{Name: l.Name, Price: l.Price, Quantity: l.Quantity, Size: l.Size, Color: l.Color}
		items = append(items, item)
		total += item.Subtotal()
	}

	return items, total, nil
}

func newLinkCommand(a *app) *cobra.Command {
	var contact string

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Build checkout deep links without a running server",
	}
	cmd.PersistentFlags().StringVar(&contact, "contact", "", "messaging contact (defaults to CHECKOUT_CONTACT)")

	target := func() (checkout.Template, string, string) {
		c := contact
		if c == "" {
			c = a.cfg.Checkout.Contact
		}
		return service.TemplateFromConfig(a.cfg.Checkout), a.cfg.Checkout.Host, c
	}

	var name, size, color string
	product := &cobra.Command{
		Use:   "product",
		Short: "Link ordering a single product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, host, c := target()
			link, err := checkout.DeepLink(host, c, tmpl.ProductMessage(name, size, color))
			if err != nil {
				return err
			}
			printf(a, "%s\n", link)
			return nil
		},
	}
	product.Flags().StringVar(&name, "name", "", "product name")
	product.Flags().StringVar(&size, "size", "", "size")
	product.Flags().StringVar(&color, "color", "", "color")
	product.MarkFlagRequired("name")

	var file string
	var showMessage bool
	cart := &cobra.Command{
		Use:   "cart",
		Short: "Link ordering the lines of a cart file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, total, err := readCartLines(file)
			if err != nil {
				return err
			}

			tmpl, host, c := target()
			message, err := tmpl.FormatMessage(items, total)
			if err != nil {
				return err
			}
			link, err := checkout.DeepLink(host, c, message)
			if err != nil {
				return err
			}

			if showMessage {
				printf(a, "%s\n\n", message)
			}
			printf(a, "%s\n", link)
			return nil
		},
	}
	cart.Flags().StringVarP(&file, "file", "f", "", "cart file")
	cart.Flags().BoolVar(&showMessage, "show-message", false, "print the message before the link")
	cart.MarkFlagRequired("file")

	cmd.AddCommand(product, cart)
	return cmd
}
