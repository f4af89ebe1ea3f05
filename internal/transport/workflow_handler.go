package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/madhupandey29/shopy-admin-api/internal/catalog"
	"github.com/madhupandey29/shopy-admin-api/internal/draft"
	"github.com/madhupandey29/shopy-admin-api/internal/middleware"
	"github.com/madhupandey29/shopy-admin-api/internal/service"
	"github.com/madhupandey29/shopy-admin-api/internal/session"
)

// maxUploadBytes bounds a single media upload.
const maxUploadBytes = 32 << 20

// baseStepPath is where the metadata guard sends clients that skipped step one.
const baseStepPath = "/add-product"

// CommitResponse acknowledges a successful base-info commit and names the
// next step.
type CommitResponse struct {
	Message string `json:"message"`
	Next    string `json:"next"`
}

// RedirectResponse is the metadata guard's answer when no staged record
// exists: not an error, a pointer back to the start of the workflow.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

// SubmitResponse reports a completed submission.
type SubmitResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// WorkflowHandler exposes the two-step product draft workflow.
type WorkflowHandler struct {
	workflow service.WorkflowService
	logger   *zap.Logger
}

func NewWorkflowHandler(workflow service.WorkflowService, logger *zap.Logger) *WorkflowHandler {
	return &WorkflowHandler{workflow: workflow, logger: logger}
}

// RegisterRoutes registers the workflow routes.
func (h *WorkflowHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/filters", h.Filters)
	r.Route("/api/workflow", func(r chi.Router) {
		r.Get("/base", h.SeedBase)
		r.Post("/base", h.CommitBase)
		r.Post("/media/{field}", h.AttachMedia)
		r.Get("/metadata", h.Metadata)
		r.Post("/metadata", h.SubmitMetadata)
	})
}

// Filters loads every taxonomy selector's options. Individual lookup failures
// surface as per-field load errors; the response is always 200.
func (h *WorkflowHandler) Filters(w http.ResponseWriter, r *http.Request) {
	options := h.workflow.Filters(r.Context())

	for _, opt := range options {
		if opt.LoadErr != "" {
			h.logger.Warn("Taxonomy lookup failed",
				zap.String("field", opt.Name),
				zap.String("label", opt.Label),
			)
		}
	}

	middleware.RespondWithJSON(w, http.StatusOK, options)
}

// SeedBase serves the edit-mode form seed when editId is supplied; without it
// there is nothing to seed and the form starts blank.
func (h *WorkflowHandler) SeedBase(w http.ResponseWriter, r *http.Request) {
	editID := r.URL.Query().Get("editId")
	if editID == "" {
		middleware.RespondWithJSON(w, http.StatusOK, &service.EditSeed{Previews: map[string]string{}})
		return
	}

	seed, err := h.workflow.SeedEdit(r.Context(), editID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to seed edit form", zap.String("edit_id", editID), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to load product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, seed)
}

// CommitBase validates and stages the base-info step. Validation failures are
// one consolidated message and nothing is staged.
func (h *WorkflowHandler) CommitBase(w http.ResponseWriter, r *http.Request) {
	var form draft.BaseForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	key := sessionKey(w, r)
	if err := h.workflow.CommitBase(r.Context(), key, &form); err != nil {
		var verr *draft.ValidationError
		if errors.As(err, &verr) {
			middleware.RespondWithError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.logger.Error("Failed to stage draft", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to stage draft")
		return
	}

	next := "/fabric-products/metadata"
	if editID := r.URL.Query().Get("editId"); editID != "" {
		next += "?editId=" + editID
	}

	h.logger.Info("Base info staged", zap.String("session", key))
	middleware.RespondWithJSON(w, http.StatusOK, CommitResponse{Message: "base info staged", Next: next})
}

// AttachMedia stashes one uploaded file in the transient file store.
func (h *WorkflowHandler) AttachMedia(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing file part")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read upload", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	att := draft.Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	key := sessionKey(w, r)
	if err := h.workflow.AttachMedia(r.Context(), key, field, att); err != nil {
		if errors.Is(err, service.ErrInvalidMediaField) {
			middleware.RespondWithError(w, http.StatusBadRequest, "unknown media field")
			return
		}
		h.logger.Error("Failed to stash attachment", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to stash attachment")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "attachment staged", "field": field})
}

// Metadata guards entry to the second step: without a staged record the
// client is redirected to the base step and no form state is served.
func (h *WorkflowHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	key := sessionKey(w, r)

	staged, err := h.workflow.Staged(r.Context(), key)
	if err != nil {
		if errors.Is(err, session.ErrNotStaged) {
			middleware.RespondWithJSON(w, http.StatusConflict, RedirectResponse{Redirect: baseStepPath})
			return
		}
		h.logger.Error("Failed to load staged record", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load staged record")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, staged)
}

// SubmitMetadata merges, assembles and dispatches the draft. The staged
// record survives failures so the admin can correct and resubmit.
func (h *WorkflowHandler) SubmitMetadata(w http.ResponseWriter, r *http.Request) {
	var meta draft.MetadataForm
	if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	key := sessionKey(w, r)
	editID := r.URL.Query().Get("editId")

	product, err := h.workflow.Submit(r.Context(), key, editID, &meta)
	if err != nil {
		if errors.Is(err, session.ErrNotStaged) {
			middleware.RespondWithJSON(w, http.StatusConflict, RedirectResponse{Redirect: baseStepPath})
			return
		}
		var apiErr *catalog.APIError
		if errors.As(err, &apiErr) {
			h.logger.Warn("Backend rejected product submission",
				zap.Int("status", apiErr.StatusCode),
				zap.String("message", apiErr.Message),
			)
			middleware.RespondWithError(w, http.StatusUnprocessableEntity, apiErr.UserMessage())
			return
		}
		h.logger.Error("Product submission failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "Failed to save product")
		return
	}

	h.logger.Info("Product saved", zap.String("product_id", product.ID), zap.Bool("edit", editID != ""))
	middleware.RespondWithJSON(w, http.StatusOK, SubmitResponse{Message: "Product saved successfully!", ID: product.ID})
}
