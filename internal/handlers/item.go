package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Ninibaz/Ninibaz-REMWASTE-Assignment/internal/services"
	"github.com/Ninibaz/Ninibaz-REMWASTE-Assignment/internal/store"
	"github.com/Ninibaz/Ninibaz-REMWASTE-Assignment/types"
	"github.com/go-chi/chi/v5"
)

const msgItemNotFound = "item not found"

// ItemHandler provides HTTP handlers for to-do items. Every handler reads
// the caller identity from the request context; the routes must be mounted
// behind the auth middleware.
type ItemHandler struct {
	itemService *services.ItemService
}

// NewItemHandler constructs a handler with the provided service.
func NewItemHandler(itemService *services.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// ItemRouter registers item routes on the given router.
func ItemRouter(r chi.Router, itemService *services.ItemService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewItemHandler(itemService)

	r.Use(authMiddleware)
	r.Get("/", handler.ListItems)
	r.Post("/", handler.CreateItem)
	r.Route("/{itemID}", func(r chi.Router) {
		r.Get("/", handler.GetItem)
		r.Put("/", handler.UpdateItem)
		r.Delete("/", handler.DeleteItem)
	})
}

func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	callerID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}

	items, err := h.itemService.List(r.Context(), callerID)
	if err != nil {
		writeInternalError(w, r, "failed to list items", err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	callerID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}

	id, ok := parseItemID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgItemNotFound)
		return
	}

	item, err := h.itemService.Get(r.Context(), callerID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgItemNotFound)
			return
		}
		writeInternalError(w, r, "failed to fetch item", err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	callerID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}

	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	item, err := h.itemService.Create(r.Context(), callerID, req.Text, req.Completed)
	if err != nil {
		if errors.Is(err, services.ErrEmptyText) {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}
		writeInternalError(w, r, "failed to create item", err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	callerID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}

	id, ok := parseItemID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgItemNotFound)
		return
	}

	var patch types.ItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	item, err := h.itemService.Update(r.Context(), callerID, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyText):
			writeError(w, http.StatusBadRequest, "text is required")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, msgItemNotFound)
		default:
			writeInternalError(w, r, "failed to update item", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	callerID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}

	id, ok := parseItemID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgItemNotFound)
		return
	}

	if err := h.itemService.Delete(r.Context(), callerID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgItemNotFound)
			return
		}
		writeInternalError(w, r, "failed to delete item", err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "item removed"})
}

// CreateItemRequest is the create payload. Completed defaults to false
// when omitted.
type CreateItemRequest struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// parseItemID reports a malformed identifier the same way as a missing
// record, so callers see 404 rather than a storage-shaped error.
func parseItemID(r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "itemID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
