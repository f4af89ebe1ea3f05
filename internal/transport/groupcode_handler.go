package transport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/madhupandey29/shopy-admin-api/internal/catalog"
	"github.com/madhupandey29/shopy-admin-api/internal/domain"
	"github.com/madhupandey29/shopy-admin-api/internal/export"
	"github.com/madhupandey29/shopy-admin-api/internal/middleware"
	"github.com/madhupandey29/shopy-admin-api/internal/service"
)

// GroupCodeRequest is the create/update payload for a group code.
type GroupCodeRequest struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"img"`
}

// GroupCodeHandler exposes the flat group-code taxonomy CRUD.
type GroupCodeHandler struct {
	codes  service.GroupCodeService
	logger *zap.Logger
}

func NewGroupCodeHandler(codes service.GroupCodeService, logger *zap.Logger) *GroupCodeHandler {
	return &GroupCodeHandler{codes: codes, logger: logger}
}

func (h *GroupCodeHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/groupcodes", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Add)
		r.Get("/export/csv", h.ExportCSV)
		r.Get("/export/pdf", h.ExportPDF)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *GroupCodeHandler) List(w http.ResponseWriter, r *http.Request) {
	codes, err := h.codes.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("Failed to list group codes", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "Error loading group codes")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, codes)
}

func (h *GroupCodeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	code, err := h.codes.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "group code not found")
			return
		}
		h.logger.Error("Failed to get group code", zap.String("id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to load group code")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, code)
}

func (h *GroupCodeHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req GroupCodeRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.codes.Add(r.Context(), &domain.GroupCode{Name: req.Name, Image: req.Image})
	if err != nil {
		h.respondMutationError(w, "Failed to add Group Code", err)
		return
	}

	h.logger.Info("Group code added", zap.String("id", created.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *GroupCodeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req GroupCodeRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.codes.Update(r.Context(), id, &domain.GroupCode{Name: req.Name, Image: req.Image})
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "group code not found")
			return
		}
		h.respondMutationError(w, "Failed to update Group Code", err)
		return
	}

	h.logger.Info("Group code updated", zap.String("id", id))
	middleware.RespondWithJSON(w, http.StatusOK, updated)
}

// Delete is confirm-gated like product deletion: no confirmation, no
// upstream call.
func (h *GroupCodeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if r.URL.Query().Get("confirm") != "true" {
		middleware.RespondWithJSON(w, http.StatusPreconditionRequired, ConfirmPrompt{
			Message: "Are you sure? Re-issue the request with confirm=true to delete.",
			Confirm: r.URL.Path + "?confirm=true",
		})
		return
	}

	if err := h.codes.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "group code not found")
			return
		}
		h.respondMutationError(w, "Failed to delete Group Code", err)
		return
	}

	h.logger.Info("Group code deleted", zap.String("id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "group code deleted"})
}

func (h *GroupCodeHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	codes, err := h.codes.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("Failed to list group codes for export", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "Error loading group codes")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="group-codes.csv"`)
	if err := export.GroupCodesCSV(w, codes); err != nil {
		h.logger.Error("CSV export failed", zap.Error(err))
	}
}

func (h *GroupCodeHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	codes, err := h.codes.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("Failed to list group codes for export", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "Error loading group codes")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="group-codes.pdf"`)
	if err := export.GroupCodesPDF(w, codes); err != nil {
		h.logger.Error("PDF export failed", zap.Error(err))
	}
}

func (h *GroupCodeHandler) respondMutationError(w http.ResponseWriter, fallback string, err error) {
	if errors.Is(err, service.ErrGroupCodeName) {
		middleware.RespondWithError(w, http.StatusBadRequest, "group code name is required")
		return
	}
	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) {
		h.logger.Warn("Backend rejected group code mutation",
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", apiErr.Message),
		)
		middleware.RespondWithError(w, http.StatusUnprocessableEntity, apiErr.UserMessage())
		return
	}
	h.logger.Error("Group code mutation failed", zap.Error(err))
	middleware.RespondWithError(w, http.StatusBadGateway, fallback)
}
