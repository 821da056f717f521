package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/models"
	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/repository"
	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// inventoryService is the subset of service.InventoryService used by the handler
type inventoryService interface {
	Add(ctx context.Context, name string, n int) (*models.InventoryChange, error)
	Remove(ctx context.Context, name string, n int) (*models.InventoryChange, error)
	Get(ctx context.Context, name string) (*models.InventoryItem, error)
	List(ctx context.Context, opts service.ViewOptions) ([]models.InventoryItem, error)
}

// QuantityRequest is the optional body of add and remove requests
type QuantityRequest struct {
	Quantity *int `json:"quantity" validate:"omitempty,min=1,max=10000"`
}

// MutationResponse carries the applied change and the refreshed inventory view
type MutationResponse struct {
	Change    *models.InventoryChange `json:"change"`
	Inventory []models.InventoryItem  `json:"inventory"`
}

// InventoryHandler handles inventory-related HTTP requests
type InventoryHandler struct {
	service   inventoryService
	validator *validator.Validate
	logger    *slog.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service inventoryService, validator *validator.Validate, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service:   service,
		validator: validator,
		logger:    logger,
	}
}

// ListInventory handles GET /api/inventory?sort=&q=&low=
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	opts, err := viewOptions(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	items, err := h.service.List(r.Context(), opts)
	if err != nil {
		h.logger.Error("failed to list inventory", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, items, h.logger)
}

// GetItem handles GET /api/inventory/{name}
func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	name := itemName(r)

	item, err := h.service.Get(r.Context(), name)
	if err != nil {
		h.writeServiceError(w, name, err)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.logger)
}

// AddItem handles POST /api/inventory/{name}/add
func (h *InventoryHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.service.Add)
}

// RemoveItem handles POST /api/inventory/{name}/remove
func (h *InventoryHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.service.Remove)
}

type mutation func(ctx context.Context, name string, n int) (*models.InventoryChange, error)

// mutate applies the change, then re-reads the whole inventory for the response
func (h *InventoryHandler) mutate(w http.ResponseWriter, r *http.Request, apply mutation) {
	name := itemName(r)

	opts, err := viewOptions(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	var req QuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("failed to decode quantity request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "Quantity must be between 1 and 10000", h.logger)
		return
	}

	n := 1
	if req.Quantity != nil {
		n = *req.Quantity
	}

	change, err := apply(r.Context(), name, n)
	if err != nil {
		h.writeServiceError(w, name, err)
		return
	}

	items, err := h.service.List(r.Context(), opts)
	if err != nil {
		h.logger.Error("failed to refresh inventory", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, MutationResponse{Change: change, Inventory: items}, h.logger)
}

func (h *InventoryHandler) writeServiceError(w http.ResponseWriter, name string, err error) {
	switch {
	case errors.Is(err, repository.ErrItemNotFound):
		WriteError(w, http.StatusNotFound, "Item not found", h.logger)
	case errors.Is(err, service.ErrInvalidName):
		WriteError(w, http.StatusBadRequest, "Invalid item name", h.logger)
	case errors.Is(err, service.ErrInvalidQuantity):
		WriteError(w, http.StatusBadRequest, "Quantity must be positive", h.logger)
	default:
		h.logger.Error("inventory operation failed", "name", name, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}

// itemName returns the decoded {name} URL parameter
// chi matches against RawPath when it is set, so only then is the segment still escaped
func itemName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return raw
	}
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func viewOptions(r *http.Request) (service.ViewOptions, error) {
	q := r.URL.Query()

	order, err := service.ParseSortOrder(q.Get("sort"))
	if err != nil {
		return service.ViewOptions{}, err
	}

	var low bool
	if v := q.Get("low"); v != "" {
		if low, err = strconv.ParseBool(v); err != nil {
			return service.ViewOptions{}, errors.New("low must be a boolean")
		}
	}

	return service.ViewOptions{
		Sort:    order,
		Search:  q.Get("q"),
		LowOnly: low,
	}, nil
}
