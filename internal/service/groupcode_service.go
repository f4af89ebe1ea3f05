package service

import (
	"context"
	"errors"
	"strings"

	"github.com/madhupandey29/shopy-admin-api/internal/catalog"
	"github.com/madhupandey29/shopy-admin-api/internal/domain"
)

var ErrGroupCodeName = errors.New("group code name is required")

// GroupCodeService fronts the flat group-code taxonomy; every mutation is a
// direct backend round-trip with no local staging.
type GroupCodeService interface {
	List(ctx context.Context, search string) ([]domain.GroupCode, error)
	Get(ctx context.Context, id string) (*domain.GroupCode, error)
	Add(ctx context.Context, gc *domain.GroupCode) (*domain.GroupCode, error)
	Update(ctx context.Context, id string, changes *domain.GroupCode) (*domain.GroupCode, error)
	Delete(ctx context.Context, id string) error
}

type groupCodeService struct {
	codes catalog.GroupCodeAPI
}

func NewGroupCodeService(codes catalog.GroupCodeAPI) GroupCodeService {
	return &groupCodeService{codes: codes}
}

func (s *groupCodeService) List(ctx context.Context, search string) ([]domain.GroupCode, error) {
	codes, err := s.codes.List(ctx)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return codes, nil
	}

	lower := strings.ToLower(search)
	filtered := make([]domain.GroupCode, 0, len(codes))
	for _, gc := range codes {
		if strings.Contains(strings.ToLower(gc.Name), lower) {
			filtered = append(filtered, gc)
		}
	}
	return filtered, nil
}

func (s *groupCodeService) Get(ctx context.Context, id string) (*domain.GroupCode, error) {
	return s.codes.Get(ctx, id)
}

func (s *groupCodeService) Add(ctx context.Context, gc *domain.GroupCode) (*domain.GroupCode, error) {
	if strings.TrimSpace(gc.Name) == "" {
		return nil, ErrGroupCodeName
	}
	return s.codes.Add(ctx, gc)
}

func (s *groupCodeService) Update(ctx context.Context, id string, changes *domain.GroupCode) (*domain.GroupCode, error) {
	if strings.TrimSpace(changes.Name) == "" {
		return nil, ErrGroupCodeName
	}
	return s.codes.Update(ctx, id, changes)
}

func (s *groupCodeService) Delete(ctx context.Context, id string) error {
	return s.codes.Delete(ctx, id)
}
