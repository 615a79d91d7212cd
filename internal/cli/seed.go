package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Catalog is the seed file layout
type Catalog struct {
	Categories []*domain.Category `json:"categories"`
	Products   []*domain.Product  `json:"products"`
}

// readCatalog parses a seed file, filling in ids and timestamps the file
// leaves out. Products default to in stock unless the file says otherwise.
func readCatalog(path string, now time.Time) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file struct {
		Categories []*domain.Category `json:"categories"`
		Products   []struct {
			domain.Product
			InStock *bool `json:"in_stock"`
		} `json:"products"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	catalog := &Catalog{Categories: file.Categories}
	for _, c := range catalog.Categories {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
	}

	for i, entry := range file.Products {
		p := entry.Product
		if p.Name == "" || p.Category == "" {
			return nil, fmt.Errorf("product %d: name and category are required", i)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %q: price must not be negative", p.Name)
		}
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.InStock = entry.InStock == nil || *entry.InStock
		catalog.Products = append(catalog.Products, &p)
	}

	return catalog, nil
}

// seedCatalog inserts categories and products. Categories whose slug already
// exists are skipped.
func seedCatalog(ctx context.Context, categories repository.CategoryRepository, products repository.ProductRepository, catalog *Catalog, log *zap.Logger) (int, int, error) {
	addedCategories := 0
	for _, c := range catalog.Categories {
		if err := categories.Create(ctx, c); err != nil {
			if errors.Is(err, repository.ErrCategoryAlreadyExists) {
				log.Info("Category exists, skipping", zap.String("slug", c.Slug))
				continue
			}
			return addedCategories, 0, err
		}
		addedCategories++
	}

	for i, p := range catalog.Products {
		if err := products.Create(ctx, p); err != nil {
			return addedCategories, i, err
		}
	}

	return addedCategories, len(catalog.Products), nil
}

func newSeedCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load categories and products from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := readCatalog(file, time.Now())
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			db := store.DB()
			categories, products, err := seedCatalog(cmd.Context(),
				repository.NewCategoryRepository(db),
				repository.NewProductRepository(db),
				catalog, a.log)
			if err != nil {
				return err
			}

			printf(a, "seeded %d categories and %d products\n", categories, products)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed file")
	cmd.MarkFlagRequired("file")

	return cmd
}
