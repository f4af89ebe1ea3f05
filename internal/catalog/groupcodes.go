package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/madhupandey29/shopy-admin-api/internal/domain"
)

// GroupCodeAPI covers the flat group-code taxonomy lifecycle.
type GroupCodeAPI interface {
	List(ctx context.Context) ([]domain.GroupCode, error)
	Get(ctx context.Context, id string) (*domain.GroupCode, error)
	Add(ctx context.Context, gc *domain.GroupCode) (*domain.GroupCode, error)
	Update(ctx context.Context, id string, changes *domain.GroupCode) (*domain.GroupCode, error)
	Delete(ctx context.Context, id string) error
}

type groupCodeAPI struct {
	client *Client
}

func NewGroupCodeAPI(client *Client) GroupCodeAPI {
	return &groupCodeAPI{client: client}
}

func (g *groupCodeAPI) List(ctx context.Context) ([]domain.GroupCode, error) {
	var codes []domain.GroupCode
	if err := g.client.getJSON(ctx, "/api/groupcode/view", nil, &codes); err != nil {
		return nil, fmt.Errorf("failed to list group codes: %w", err)
	}
	return codes, nil
}

func (g *groupCodeAPI) Get(ctx context.Context, id string) (*domain.GroupCode, error) {
	var code domain.GroupCode
	if err := g.client.getJSON(ctx, "/api/groupcode/view/"+url.PathEscape(id), nil, &code); err != nil {
		return nil, fmt.Errorf("failed to get group code %s: %w", id, err)
	}
	return &code, nil
}

func (g *groupCodeAPI) Add(ctx context.Context, gc *domain.GroupCode) (*domain.GroupCode, error) {
	var created domain.GroupCode
	if err := g.client.sendJSON(ctx, http.MethodPost, "/api/groupcode/add", gc, &created); err != nil {
		return nil, fmt.Errorf("failed to add group code: %w", err)
	}
	return &created, nil
}

func (g *groupCodeAPI) Update(ctx context.Context, id string, changes *domain.GroupCode) (*domain.GroupCode, error) {
	var updated domain.GroupCode
	if err := g.client.sendJSON(ctx, http.MethodPut, "/api/groupcode/update/"+url.PathEscape(id), changes, &updated); err != nil {
		return nil, fmt.Errorf("failed to update group code %s: %w", id, err)
	}
	return &updated, nil
}

func (g *groupCodeAPI) Delete(ctx context.Context, id string) error {
	resp, err := g.client.do(ctx, http.MethodDelete, "/api/groupcode/delete/"+url.PathEscape(id), nil, nil, "")
	if err != nil {
		return fmt.Errorf("failed to delete group code %s: %w", id, err)
	}
	return decodeData(resp, nil)
}
