// Package checkout turns a cart into an order summary and a deep link to the
// shop's messaging contact.
package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"storefront/internal/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrMissingContact = errors.New("checkout contact is not configured")
)

const (
	DefaultHost            = "wa.me"
	DefaultCurrency        = "KSh"
	DefaultGreeting        = "Hi Eddjos Collections! I'd like to place an order:"
	DefaultProductGreeting = "Hi Eddjos Collections! I'd like to order:"
	DefaultClosing         = "Please confirm availability and delivery details."
)

// Template holds the fixed wording of checkout messages
type Template struct {
	Currency        string
	Greeting        string
	ProductGreeting string
	Closing         string
}

// DefaultTemplate returns the storefront's stock wording
func DefaultTemplate() Template {
	return Template{
		Currency:        DefaultCurrency,
		Greeting:        DefaultGreeting,
		ProductGreeting: DefaultProductGreeting,
		Closing:         DefaultClosing,
	}
}

var printer = message.NewPrinter(language.English)

// FormatAmount renders an amount with comma digit grouping and at most three
// fraction digits, e.g. 2000 -> "2,000", 1234.5 -> "1,234.5"
func FormatAmount(amount float64) string {
	return printer.Sprint(number.Decimal(amount, number.MaxFractionDigits(3)))
}

// Price renders an amount with the template's currency prefix
func (t Template) Price(amount float64) string {
	return t.Currency + " " + FormatAmount(amount)
}

func variant(b *strings.Builder, size, color string) {
	if size != "" {
		fmt.Fprintf(b, " - Size: %s", size)
	}
	if color != "" {
		fmt.Fprintf(b, " - Color: %s", color)
	}
}

// Line renders one cart line, e.g. "Tee (Qty: 2) - Size: M - KSh 2,000"
func (t Template) Line(item domain.CartItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (Qty: %d)", item.Name, item.Quantity)
	variant(&b, item.Size, item.Color)
	b.WriteString(" - ")
	b.WriteString(t.Price(item.Subtotal()))
	return b.String()
}

// FormatMessage renders the order summary sent to the shop
func (t Template) FormatMessage(items []domain.CartItem, total float64) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = t.Line(item)
	}

	return fmt.Sprintf("%s\n\n%s\n\nTotal: %s\n\n%s",
		t.Greeting,
		strings.Join(lines, "\n"),
		t.Price(total),
		t.Closing,
	), nil
}

// ProductMessage renders a request to order a single product
func (t Template) ProductMessage(name, size, color string) string {
	var b strings.Builder
	b.WriteString(t.ProductGreeting)
	b.WriteString("\n\n")
	b.WriteString(name)
	variant(&b, size, color)
	b.WriteString("\n\n")
	b.WriteString(t.Closing)
	return b.String()
}

// EncodeText escapes s for a query value, with spaces as %20
func EncodeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// DeepLink builds https://<host>/<contact>?text=<message>
func DeepLink(host, contact, text string) (string, error) {
	if contact == "" {
		return "", ErrMissingContact
	}
	if host == "" {
		host = DefaultHost
	}
	return fmt.Sprintf("https://%s/%s?text=%s", host, url.PathEscape(contact), EncodeText(text)), nil
}
