package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/madhupandey29/shopy-admin-api/internal/catalog"
	"github.com/madhupandey29/shopy-admin-api/internal/domain"
	"github.com/madhupandey29/shopy-admin-api/internal/draft"
	"github.com/madhupandey29/shopy-admin-api/internal/session"
)

// relatedPreviewLimit caps how many group-code siblings the base step shows.
const relatedPreviewLimit = 6

var (
	ErrInvalidMediaField = errors.New("unknown media field")
)

// EditSeed is the form state served when the base step opens in edit mode:
// the existing product's fields plus preview URLs for already-stored media.
type EditSeed struct {
	Form     *draft.BaseForm   `json:"form"`
	Previews map[string]string `json:"previews"`
}

// RelatedPreview lists up to six products sharing a group code, with the
// count of further matches beyond the preview.
type RelatedPreview struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	More     int              `json:"more"`
}

// WorkflowService drives the two-step product draft workflow.
type WorkflowService interface {
	Filters(ctx context.Context) []catalog.FilterOptions
	SeedEdit(ctx context.Context, editID string) (*EditSeed, error)
	CommitBase(ctx context.Context, sessionKey string, form *draft.BaseForm) error
	Related(ctx context.Context, groupCodeID string) (*RelatedPreview, error)
	Staged(ctx context.Context, sessionKey string) (*draft.StagedRecord, error)
	AttachMedia(ctx context.Context, sessionKey, field string, att draft.Attachment) error
	Submit(ctx context.Context, sessionKey, editID string, meta *draft.MetadataForm) (*domain.Product, error)
}

type workflowService struct {
	products catalog.ProductAPI
	taxonomy catalog.TaxonomyAPI
	drafts   session.Store
	files    *session.FileStore
}

func NewWorkflowService(
	products catalog.ProductAPI,
	taxonomy catalog.TaxonomyAPI,
	drafts session.Store,
	files *session.FileStore,
) WorkflowService {
	return &workflowService{
		products: products,
		taxonomy: taxonomy,
		drafts:   drafts,
		files:    files,
	}
}

func (s *workflowService) Filters(ctx context.Context) []catalog.FilterOptions {
	return s.taxonomy.LoadOptions(ctx)
}

// SeedEdit loads the full existing product and shapes it into form state.
// Media previews point at the already-stored URLs.
func (s *workflowService) SeedEdit(ctx context.Context, editID string) (*EditSeed, error) {
	product, err := s.products.Get(ctx, editID)
	if err != nil {
		return nil, fmt.Errorf("failed to seed edit form: %w", err)
	}

	previews := make(map[string]string)
	for field, url := range map[string]string{
		"image":  product.Image,
		"image1": product.Image1,
		"image2": product.Image2,
		"video":  product.Video,
	} {
		if url != "" {
			previews[field] = url
		}
	}

	return &EditSeed{Form: draft.FormFromProduct(product), Previews: previews}, nil
}

// CommitBase validates the base form and stages it, overwriting any prior
// record for the session. A validation failure blocks staging entirely; no
// backend call is made.
func (s *workflowService) CommitBase(ctx context.Context, sessionKey string, form *draft.BaseForm) error {
	form.Normalize()
	if err := draft.Validate(form); err != nil {
		return err
	}
	if err := s.drafts.Put(ctx, sessionKey, form.Stage()); err != nil {
		return fmt.Errorf("failed to stage draft: %w", err)
	}
	return nil
}

// Related previews other products under the same group code. An empty id
// skips the lookup entirely.
func (s *workflowService) Related(ctx context.Context, groupCodeID string) (*RelatedPreview, error) {
	if groupCodeID == "" {
		return &RelatedPreview{Products: []domain.Product{}}, nil
	}

	products, err := s.products.ListByGroupCode(ctx, groupCodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load related products: %w", err)
	}

	preview := &RelatedPreview{Products: products, Total: len(products)}
	if len(products) > relatedPreviewLimit {
		preview.Products = products[:relatedPreviewLimit]
		preview.More = len(products) - relatedPreviewLimit
	}
	return preview, nil
}

// Staged returns the committed base record, or session.ErrNotStaged when the
// workflow was entered without passing through step one.
func (s *workflowService) Staged(ctx context.Context, sessionKey string) (*draft.StagedRecord, error) {
	return s.drafts.Get(ctx, sessionKey)
}

func (s *workflowService) AttachMedia(ctx context.Context, sessionKey, field string, att draft.Attachment) error {
	valid := false
	for _, name := range draft.MediaFields {
		if name == field {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidMediaField
	}

	s.files.Put(sessionKey, field, att)
	return nil
}

// Submit merges the staged record with the metadata fields, assembles the
// multipart payload and dispatches it upstream. Both session stores are
// cleared only on success, so a failed submission can be retried without
// re-entering data.
func (s *workflowService) Submit(ctx context.Context, sessionKey, editID string, meta *draft.MetadataForm) (*domain.Product, error) {
	staged, err := s.drafts.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	merged := draft.Merge(staged, meta)
	body, contentType, err := draft.BuildPayload(merged, s.files.Get(sessionKey))
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	var product *domain.Product
	if editID != "" {
		product, err = s.products.Update(ctx, editID, body, contentType)
	} else {
		product, err = s.products.Create(ctx, body, contentType)
	}
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Delete(ctx, sessionKey); err != nil {
		return nil, fmt.Errorf("failed to clear staged record: %w", err)
	}
	s.files.Clear(sessionKey)

	return product, nil
}
