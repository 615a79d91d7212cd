package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutResult is the hand-off to the messaging channel
type CheckoutResult struct {
	OrderNumber string  `json:"order_number"`
	Message     string  `json:"message"`
	Link        string  `json:"link"`
	TotalItems  int     `json:"total_items"`
	TotalAmount float64 `json:"total_amount"`
}

// CheckoutService defines the interface for building checkout deep links
type CheckoutService interface {
	Checkout(ctx context.Context, sessionID uuid.UUID) (*CheckoutResult, error)
	ProductLink(ctx context.Context, productID uuid.UUID, size, color string) (string, error)
}

type checkoutService struct {
	carts       CartService
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	template    checkout.Template
	host        string
	contact     string
	logger      *zap.Logger
	now         func() time.Time
}

// TemplateFromConfig builds message wording from configuration, keeping the
// stock wording for unset fields
func TemplateFromConfig(cfg config.CheckoutConfig) checkout.Template {
	t := checkout.DefaultTemplate()
	if cfg.Currency != "" {
		t.Currency = cfg.Currency
	}
	if cfg.Greeting != "" {
		t.Greeting = cfg.Greeting
	}
	if cfg.ProductGreeting != "" {
		t.ProductGreeting = cfg.ProductGreeting
	}
	if cfg.Closing != "" {
		t.Closing = cfg.Closing
	}
	return t
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(
	carts CartService,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	cfg config.CheckoutConfig,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutService{
		carts:       carts,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		template:    TemplateFromConfig(cfg),
		host:        cfg.Host,
		contact:     cfg.Contact,
		logger:      logger,
		now:         time.Now,
	}
}

func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

// Checkout formats the session's cart into an order message and deep link.
// The order is recorded for the shop; a recording failure is logged and does
// not withhold the link.
func (s *checkoutService) Checkout(ctx context.Context, sessionID uuid.UUID) (*CheckoutResult, error) {
	view, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	message, err := s.template.FormatMessage(view.Items, view.TotalAmount)
	if err != nil {
		return nil, err
	}

	link, err := checkout.DeepLink(s.host, s.contact, message)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := &CheckoutResult{
		OrderNumber: newOrderNumber(now),
		Message:     message,
		Link:        link,
		TotalItems:  view.TotalItems,
		TotalAmount: view.TotalAmount,
	}

	orders := make([]*domain.Order, len(view.Items))
	for i, item := range view.Items {
		productID := item.ProductID
		orders[i] = &domain.Order{
			ID:           uuid.New(),
			SessionID:    sessionID,
			OrderNumber:  result.OrderNumber,
			ProductID:    &productID,
			ProductName:  item.Name,
			ProductPrice: item.Price,
			Quantity:     item.Quantity,
			Size:         domain.StringPtr(item.Size),
			Color:        domain.StringPtr(item.Color),
			TotalAmount:  item.Subtotal(),
			Status:       domain.OrderStatusPending,
			CreatedAt:    now,
		}
	}

	if err := s.orderRepo.CreateBatch(ctx, orders); err != nil {
		s.logger.Error("Failed to record order",
			zap.String("order_number", result.OrderNumber),
			zap.String("session_id", sessionID.String()),
			zap.Error(err),
		)
	} else {
		s.logger.Info("Checkout handed off",
			zap.String("order_number", result.OrderNumber),
			zap.Int("lines", len(orders)),
			zap.Float64("total", view.TotalAmount),
		)
	}

	return result, nil
}

// ProductLink builds a deep link ordering a single product. Empty size or
// color fall back to the product's own.
func (s *checkoutService) ProductLink(ctx context.Context, productID uuid.UUID, size, color string) (string, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return "", err
	}

	if size == "" {
		size = domain.StringValue(product.Size)
	}
	if color == "" {
		color = domain.StringValue(product.Color)
	}

	return checkout.DeepLink(s.host, s.contact, s.template.ProductMessage(product.Name, size, color))
}
