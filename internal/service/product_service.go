package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/madhupandey29/shopy-admin-api/internal/catalog"
	"github.com/madhupandey29/shopy-admin-api/internal/domain"
)

// listLimit is the practical "all" for list views; the backend paginates but
// the admin tables filter client-side over one large page.
const listLimit = 1000

// StockOutReport is the notification badge payload: the zero-quantity count
// plus one entry per affected product.
type StockOutReport struct {
	Count int                 `json:"count"`
	Items []domain.StockAlert `json:"items"`
}

// ProductService backs the product list view and the notification badge.
type ProductService interface {
	List(ctx context.Context, search string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	StockOut(ctx context.Context) (*StockOutReport, error)
}

type productService struct {
	products catalog.ProductAPI
}

func NewProductService(products catalog.ProductAPI) ProductService {
	return &productService{products: products}
}

// List fetches one large page and applies the case-insensitive substring
// filter across the table's searchable fields.
func (s *productService) List(ctx context.Context, search string) ([]domain.Product, error) {
	products, err := s.products.List(ctx, 1, listLimit)
	if err != nil {
		return nil, err
	}
	return FilterProducts(products, search), nil
}

// FilterProducts matches the search term against name, SKU, product
// identifier, location code and category id, ignoring case. An empty term
// matches everything.
func FilterProducts(products []domain.Product, search string) []domain.Product {
	if search == "" {
		return products
	}
	lower := strings.ToLower(search)

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(strings.ToLower(p.SKU), lower) ||
			strings.Contains(strings.ToLower(p.ProductIdentifier), lower) ||
			strings.Contains(strings.ToLower(p.LocationCode), lower) ||
			strings.Contains(strings.ToLower(p.CategoryID), lower) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (s *productService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

// StockOut derives the badge from the same product list query the table uses;
// it has no fetch cadence of its own.
func (s *productService) StockOut(ctx context.Context) (*StockOutReport, error) {
	products, err := s.products.List(ctx, 1, listLimit)
	if err != nil {
		return nil, err
	}

	report := &StockOutReport{Items: []domain.StockAlert{}}
	for _, p := range products {
		if p.Quantity != 0 {
			continue
		}
		report.Items = append(report.Items, domain.StockAlert{
			ID:        p.ID,
			Name:      p.Name,
			Image:     p.Image,
			UpdatedAt: p.UpdatedAt,
		})
	}
	report.Count = len(report.Items)
	return report, nil
}
