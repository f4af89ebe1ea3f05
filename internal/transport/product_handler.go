package transport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/madhupandey29/shopy-admin-api/internal/catalog"
	"github.com/madhupandey29/shopy-admin-api/internal/export"
	"github.com/madhupandey29/shopy-admin-api/internal/middleware"
	"github.com/madhupandey29/shopy-admin-api/internal/service"
)

// ConfirmPrompt is returned when a destructive request arrives without the
// confirmation flag. Nothing has been deleted at that point.
type ConfirmPrompt struct {
	Message string `json:"message"`
	Confirm string `json:"confirm"`
}

// ProductHandler backs the product list view, exports, the group-code related
// preview and the stock-out notification badge.
type ProductHandler struct {
	products service.ProductService
	workflow service.WorkflowService
	logger   *zap.Logger
}

func NewProductHandler(products service.ProductService, workflow service.WorkflowService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, workflow: workflow, logger: logger}
}

// RegisterRoutes registers product list, export and notification routes.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/export/csv", h.ExportCSV)
		r.Get("/export/pdf", h.ExportPDF)
		r.Get("/groupcode/{id}", h.Related)
		r.Get("/{id}", h.Get)
		r.Delete("/{id}", h.Delete)
	})
	r.Get("/api/notifications/stock-out", h.StockOut)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to load products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.String("id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to load product")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete only proceeds after explicit confirmation. Without confirm=true no
// upstream request is issued.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if r.URL.Query().Get("confirm") != "true" {
		middleware.RespondWithJSON(w, http.StatusPreconditionRequired, ConfirmPrompt{
			Message: "Are you sure? Re-issue the request with confirm=true to delete.",
			Confirm: r.URL.Path + "?confirm=true",
		})
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		var apiErr *catalog.APIError
		if errors.As(err, &apiErr) {
			middleware.RespondWithError(w, http.StatusBadGateway, apiErr.UserMessage())
			return
		}
		h.logger.Error("Failed to delete product", zap.String("id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "Failed to delete product.")
		return
	}

	h.logger.Info("Product deleted", zap.String("id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// Related previews up to six products sharing a group code.
func (h *ProductHandler) Related(w http.ResponseWriter, r *http.Request) {
	preview, err := h.workflow.Related(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("Failed to load related products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "Error loading related products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, preview)
}

// ExportCSV streams the filtered rows as CSV, produced entirely from the
// already-fetched data.
func (h *ProductHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("Failed to list products for export", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to load products")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="fabric-products.csv"`)
	if err := export.ProductsCSV(w, products); err != nil {
		h.logger.Error("CSV export failed", zap.Error(err))
	}
}

func (h *ProductHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("Failed to list products for export", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to load products")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="fabric-products.pdf"`)
	if err := export.ProductsPDF(w, products); err != nil {
		h.logger.Error("PDF export failed", zap.Error(err))
	}
}

// StockOut serves the notification badge: zero-quantity products with name
// and last-updated date.
func (h *ProductHandler) StockOut(w http.ResponseWriter, r *http.Request) {
	report, err := h.products.StockOut(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute stock-out report", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadGateway, "failed to load notifications")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, report)
}
