package transport

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductListResponse is the product listing
type ProductListResponse struct {
	Products      []*domain.Product `json:"products"`
	Subcategories []string          `json:"subcategories"`
	Count         int               `json:"count"`
	Degraded      bool              `json:"degraded,omitempty"`
}

// CatalogHandler handles HTTP requests for browsing the catalog
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the public catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/categories", h.ListCategories)
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/products/{id}", h.GetProduct)
}

// parsePrice reads an optional non-negative price bound
func parsePrice(q url.Values, key string, fallback float64) (float64, *middleware.ValidationError) {
	raw := q.Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, &middleware.ValidationError{Field: key, Message: "Must be a non-negative number"}
	}
	return v, nil
}

// parseFilterSort builds a FilterSortConfig from the query string. Absent
// parameters keep their defaults and unknown sort keys fall back to featured.
func parseFilterSort(q url.Values) (catalog.FilterSortConfig, []middleware.ValidationError) {
	cfg := catalog.DefaultConfig()
	if v := q.Get("category"); v != "" {
		cfg.Category = v
	}
	if v := q.Get("subcategory"); v != "" {
		cfg.Subcategory = v
	}
	cfg.Search = q.Get("search")
	cfg.Sort = catalog.ParseSortKey(q.Get("sort"))

	var errs []middleware.ValidationError
	lo, verr := parsePrice(q, "min_price", catalog.DefaultMinPrice)
	if verr != nil {
		errs = append(errs, *verr)
	}
	hi, verr := parsePrice(q, "max_price", catalog.DefaultMaxPrice)
	if verr != nil {
		errs = append(errs, *verr)
	}
	if len(errs) == 0 && lo > hi {
		errs = append(errs, middleware.ValidationError{Field: "min_price", Message: "Must not exceed max_price"})
	}
	cfg.Price = catalog.PriceRange{Min: lo, Max: hi}

	return cfg, errs
}

// ListProducts handles the filtered, sorted product listing
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	cfg, errs := parseFilterSort(r.URL.Query())
	if len(errs) > 0 {
		h.logger.Debug("Invalid product query", zap.String("query", r.URL.RawQuery))
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	result := h.catalogService.Browse(r.Context(), cfg)

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products:      result.Products,
		Subcategories: result.Subcategories,
		Count:         result.Count,
		Degraded:      result.Degraded,
	})
}

// GetProduct handles fetching a single product
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.Product(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// ListCategories handles the category listing
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.Categories(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}
