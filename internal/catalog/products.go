package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/madhupandey29/shopy-admin-api/internal/domain"
)

// ProductAPI is the catalog backend's product surface.
type ProductAPI interface {
	List(ctx context.Context, page, limit int) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	ListByGroupCode(ctx context.Context, groupCodeID string) ([]domain.Product, error)
	ListPopular(ctx context.Context) ([]domain.Product, error)
	ListOffers(ctx context.Context) ([]domain.Product, error)
	ListTopRated(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, body io.Reader, contentType string) (*domain.Product, error)
	Update(ctx context.Context, id string, body io.Reader, contentType string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type productAPI struct {
	client *Client
}

// NewProductAPI creates the product client against the shared backend connection.
func NewProductAPI(client *Client) ProductAPI {
	return &productAPI{client: client}
}

func (p *productAPI) List(ctx context.Context, page, limit int) ([]domain.Product, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var products []domain.Product
	if err := p.client.getJSON(ctx, "/api/newproduct/view", query, &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (p *productAPI) Get(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := p.client.getJSON(ctx, "/api/newproduct/view/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &product, nil
}

func (p *productAPI) ListByGroupCode(ctx context.Context, groupCodeID string) ([]domain.Product, error) {
	var products []domain.Product
	if err := p.client.getJSON(ctx, "/api/newproduct/groupcode/"+url.PathEscape(groupCodeID), nil, &products); err != nil {
		return nil, fmt.Errorf("failed to list products by group code: %w", err)
	}
	return products, nil
}

func (p *productAPI) ListPopular(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := p.client.getJSON(ctx, "/api/newproduct/popular", nil, &products); err != nil {
		return nil, fmt.Errorf("failed to list popular products: %w", err)
	}
	return products, nil
}

func (p *productAPI) ListOffers(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := p.client.getJSON(ctx, "/api/newproduct/offers", nil, &products); err != nil {
		return nil, fmt.Errorf("failed to list product offers: %w", err)
	}
	return products, nil
}

func (p *productAPI) ListTopRated(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := p.client.getJSON(ctx, "/api/newproduct/toprated", nil, &products); err != nil {
		return nil, fmt.Errorf("failed to list top rated products: %w", err)
	}
	return products, nil
}

// Create submits an assembled multipart payload. The caller owns the payload
// layout; the backend expects multipart/form-data on this route.
func (p *productAPI) Create(ctx context.Context, body io.Reader, contentType string) (*domain.Product, error) {
	resp, err := p.client.do(ctx, http.MethodPost, "/api/newproduct/add", nil, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	var product domain.Product
	if err := decodeData(resp, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *productAPI) Update(ctx context.Context, id string, body io.Reader, contentType string) (*domain.Product, error) {
	resp, err := p.client.do(ctx, http.MethodPut, "/api/newproduct/update/"+url.PathEscape(id), nil, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	var product domain.Product
	if err := decodeData(resp, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *productAPI) Delete(ctx context.Context, id string) error {
	resp, err := p.client.do(ctx, http.MethodDelete, "/api/newproduct/delete/"+url.PathEscape(id), nil, nil, "")
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return decodeData(resp, nil)
}
