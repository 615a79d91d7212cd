package service

import (
	"context"
	"fmt"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BrowseResult is one rendering of the product listing
type BrowseResult struct {
	Products      []*domain.Product `json:"products"`
	Subcategories []string          `json:"subcategories"`
	Count         int               `json:"count"`
	// Degraded is set when the store could not be reached and the listing is
	// empty for that reason rather than because nothing matched.
	Degraded bool `json:"degraded"`
}

// CatalogService defines the interface for browsing the catalog
type CatalogService interface {
	Browse(ctx context.Context, cfg catalog.FilterSortConfig) *BrowseResult
	Categories(ctx context.Context) ([]*domain.Category, error)
	Product(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Browse fetches the in-stock products of the selected category and applies
// the remaining filters and the sort in memory. Store failures are logged and
// produce an empty, degraded listing.
func (s *catalogService) Browse(ctx context.Context, cfg catalog.FilterSortConfig) *BrowseResult {
	products, err := s.productRepo.ListInStock(ctx, cfg.Category)
	if err != nil {
		s.logger.Error("Error fetching products",
			zap.String("category", cfg.Category),
			zap.Error(err),
		)
		return &BrowseResult{
			Products:      []*domain.Product{},
			Subcategories: []string{},
			Degraded:      true,
		}
	}

	filtered := catalog.FilterSort(products, cfg)

	return &BrowseResult{
		Products:      filtered,
		Subcategories: catalog.Subcategories(products),
		Count:         len(filtered),
	}
}

// Categories lists the catalog's categories in display order
func (s *catalogService) Categories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Product retrieves a single product
func (s *catalogService) Product(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return product, nil
}
