package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/madhupandey29/shopy-admin-api/internal/catalog"
	"github.com/madhupandey29/shopy-admin-api/internal/domain"
	"github.com/madhupandey29/shopy-admin-api/internal/draft"
	"github.com/madhupandey29/shopy-admin-api/internal/service"
	"github.com/madhupandey29/shopy-admin-api/internal/session"
)

// mockWorkflow lets each test script the workflow service's answers and
// records which operations ran.
type mockWorkflow struct {
	filters []catalog.FilterOptions

	seed    *service.EditSeed
	seedErr error

	commitErr   error
	commitCalls int
	lastForm    *draft.BaseForm

	related    *service.RelatedPreview
	relatedErr error

	staged    *draft.StagedRecord
	stagedErr error

	attachErr   error
	attachCalls int
	lastField   string
	lastAtt     draft.Attachment

	submitProduct *domain.Product
	submitErr     error
	submitCalls   int
	lastEditID    string
}

func (m *mockWorkflow) Filters(ctx context.Context) []catalog.FilterOptions { return m.filters }

func (m *mockWorkflow) SeedEdit(ctx context.Context, editID string) (*service.EditSeed, error) {
	return m.seed, m.seedErr
}

func (m *mockWorkflow) CommitBase(ctx context.Context, sessionKey string, form *draft.BaseForm) error {
	m.commitCalls++
	m.lastForm = form
	return m.commitErr
}

func (m *mockWorkflow) Related(ctx context.Context, groupCodeID string) (*service.RelatedPreview, error) {
	return m.related, m.relatedErr
}

func (m *mockWorkflow) Staged(ctx context.Context, sessionKey string) (*draft.StagedRecord, error) {
	return m.staged, m.stagedErr
}

func (m *mockWorkflow) AttachMedia(ctx context.Context, sessionKey, field string, att draft.Attachment) error {
	if m.attachErr != nil {
		return m.attachErr
	}
	m.attachCalls++
	m.lastField = field
	m.lastAtt = att
	return nil
}

func (m *mockWorkflow) Submit(ctx context.Context, sessionKey, editID string, meta *draft.MetadataForm) (*domain.Product, error) {
	m.submitCalls++
	m.lastEditID = editID
	return m.submitProduct, m.submitErr
}

func newWorkflowRouter(m *mockWorkflow) *chi.Mux {
	r := chi.NewRouter()
	NewWorkflowHandler(m, zap.NewNop()).RegisterRoutes(r)
	return r
}

func decodeError(t *testing.T, body *bytes.Buffer) string {
	t.Helper()
	var resp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return resp.Error.Message
}

func TestCommitBaseValidationFailure(t *testing.T) {
	m := &mockWorkflow{
		commitErr: &draft.ValidationError{Missing: []string{"SKU", "Currency"}},
	}
	router := newWorkflowRouter(m)

	req := httptest.NewRequest("POST", "/api/workflow/base", strings.NewReader(`{"name":"Cotton"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if msg := decodeError(t, w.Body); msg != "Please fill in all required fields: SKU, Currency" {
		t.Errorf("message = %q", msg)
	}
}

func TestCommitBaseSetsSessionCookieAndNext(t *testing.T) {
	m := &mockWorkflow{}
	router := newWorkflowRouter(m)

	req := httptest.NewRequest("POST", "/api/workflow/base", strings.NewReader(`{"name":"Cotton"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "draft_session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("first commit must mint a draft_session cookie")
	}

	var resp CommitResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Next != "/fabric-products/metadata" {
		t.Errorf("next = %q", resp.Next)
	}
}

func TestCommitBaseCarriesEditIDForward(t *testing.T) {
	m := &mockWorkflow{}
	router := newWorkflowRouter(m)

	req := httptest.NewRequest("POST", "/api/workflow/base?editId=prod-7", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp CommitResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Next != "/fabric-products/metadata?editId=prod-7" {
		t.Errorf("next = %q", resp.Next)
	}
}

func TestMetadataGuardRedirectsWithoutStagedRecord(t *testing.T) {
	m := &mockWorkflow{stagedErr: session.ErrNotStaged}
	router := newWorkflowRouter(m)

	req := httptest.NewRequest("GET", "/api/workflow/metadata", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	var resp RedirectResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Redirect != "/add-product" {
		t.Errorf("redirect = %q", resp.Redirect)
	}
}

func TestMetadataServesStagedRecord(t *testing.T) {
	m := &mockWorkflow{staged: &draft.StagedRecord{Name: "Cotton Twill", PopularProduct: "no"}}
	router := newWorkflowRouter(m)

	req := httptest.NewRequest("GET", "/api/workflow/metadata", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var rec draft.StagedRecord
	json.NewDecoder(w.Body).Decode(&rec)
	if rec.Name != "Cotton Twill" {
		t.Errorf("staged record not served: %+v", rec)
	}
}

func TestSubmitMetadataSuccess(t *testing.T) {
	m := &mockWorkflow{submitProduct: &domain.Product{ID: "created-1"}}
	router := newWorkflowRouter(m)

	req := httptest.NewRequest("POST", "/api/workflow/metadata", strings.NewReader(`{"description":"soft"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp SubmitResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Message != "Product saved successfully!" || resp.ID != "created-1" {
		t.Errorf("response = %+v", resp)
	}
}

func TestSubmitMetadataGuard(t *testing.T) {
	m := &mockWorkflow{submitErr: session.ErrNotStaged}
	router := newWorkflowRouter(m)

	req := httptest.NewRequest("POST", "/api/workflow/metadata", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	var resp RedirectResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Redirect != "/add-product" {
		t.Errorf("redirect = %q", resp.Redirect)
	}
}

func TestSubmitMetadataUpstreamRejection(t *testing.T) {
	m := &mockWorkflow{submitErr: &catalog.APIError{
		StatusCode:    400,
		Message:       "Duplicate key error",
		ErrorMessages: []catalog.FieldError{{Path: "sku"}},
	}}
	router := newWorkflowRouter(m)

	req := httptest.NewRequest("POST", "/api/workflow/metadata", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if msg := decodeError(t, w.Body); msg != "This sku is already in use by another product. Please choose a different one." {
		t.Errorf("message = %q", msg)
	}
}

func TestSubmitMetadataPassesEditID(t *testing.T) {
	m := &mockWorkflow{submitProduct: &domain.Product{ID: "prod-7"}}
	router := newWorkflowRouter(m)

	req := httptest.NewRequest("POST", "/api/workflow/metadata?editId=prod-7", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if m.lastEditID != "prod-7" {
		t.Errorf("editId = %q", m.lastEditID)
	}
}

func TestAttachMediaStoresUpload(t *testing.T) {
	m := &mockWorkflow{}
	router := newWorkflowRouter(m)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "front.jpg")
	part.Write([]byte("jpgdata"))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/workflow/media/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if m.lastField != "image" || m.lastAtt.Filename != "front.jpg" || string(m.lastAtt.Data) != "jpgdata" {
		t.Errorf("attachment not forwarded: field=%q att=%+v", m.lastField, m.lastAtt)
	}
}

func TestAttachMediaUnknownField(t *testing.T) {
	m := &mockWorkflow{attachErr: service.ErrInvalidMediaField}
	router := newWorkflowRouter(m)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "x.png")
	part.Write([]byte("png"))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/workflow/media/image9", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestFiltersAlwaysRespondOK(t *testing.T) {
	m := &mockWorkflow{filters: []catalog.FilterOptions{
		{Name: "newCategoryId", Label: "Category", Options: []domain.TaxonomyItem{{ID: "c1", Name: "Woven"}}},
		{Name: "colorId", Label: "Color", Options: []domain.TaxonomyItem{}, LoadErr: "Failed to load Color"},
	}}
	router := newWorkflowRouter(m)

	req := httptest.NewRequest("GET", "/api/filters", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite partial failure", w.Code)
	}
	var options []catalog.FilterOptions
	json.NewDecoder(w.Body).Decode(&options)
	if len(options) != 2 || options[1].LoadErr == "" {
		t.Errorf("options = %+v", options)
	}
}

func TestSeedBaseBlankWithoutEditID(t *testing.T) {
	m := &mockWorkflow{}
	router := newWorkflowRouter(m)

	req := httptest.NewRequest("GET", "/api/workflow/base", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var seed service.EditSeed
	json.NewDecoder(w.Body).Decode(&seed)
	if seed.Form != nil || len(seed.Previews) != 0 {
		t.Errorf("blank seed expected, got %+v", seed)
	}
}

func TestSeedBaseUnknownProduct(t *testing.T) {
	m := &mockWorkflow{seedErr: catalog.ErrNotFound}
	router := newWorkflowRouter(m)

	req := httptest.NewRequest("GET", "/api/workflow/base?editId=ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
