package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/wellnoosh/engine/internal/domain/grocery"
	"github.com/wellnoosh/engine/internal/domain/leftover"
	"github.com/wellnoosh/engine/internal/ports/inbound"
	apperrors "github.com/wellnoosh/engine/pkg/errors"
)

type handlers struct {
	sessions  inbound.SessionService
	inventory inbound.InventoryService
	groceries inbound.GroceryService
	logger    *zap.Logger
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, map[string]string{"status": "healthy"})
}

// --- session ---

func (h *handlers) startSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.Start(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, view)
}

func (h *handlers) sessionView(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.View(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, view)
}

type swipeRequest struct {
	Direction string `json:"direction"`
}

func (h *handlers) swipe(w http.ResponseWriter, r *http.Request) {
	var req swipeRequest
	if !h.decode(w, r, &req) {
		return
	}
	var (
		view *inbound.SessionView
		err  error
	)
	switch req.Direction {
	case "right":
		view, err = h.sessions.SwipeRight(r.Context())
	case "left":
		view, err = h.sessions.SwipeLeft(r.Context())
	default:
		h.writeError(w, r, apperrors.NewValidationError("direction must be \"left\" or \"right\""))
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, view)
}

func (h *handlers) skip(w http.ResponseWriter, r *http.Request) {
	h.sessionAction(w, r, h.sessions.Skip)
}

func (h *handlers) favorite(w http.ResponseWriter, r *http.Request) {
	h.sessionAction(w, r, h.sessions.Favorite)
}

func (h *handlers) cook(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessions.Cook(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, result)
}

func (h *handlers) share(w http.ResponseWriter, r *http.Request) {
	h.sessionAction(w, r, h.sessions.Share)
}

func (h *handlers) continueBrowsing(w http.ResponseWriter, r *http.Request) {
	h.sessionAction(w, r, h.sessions.ContinueBrowsing)
}

type servingsRequest struct {
	Servings int `json:"servings"`
}

func (h *handlers) setServings(w http.ResponseWriter, r *http.Request) {
	var req servingsRequest
	if !h.decode(w, r, &req) {
		return
	}
	view, err := h.sessions.SetServings(r.Context(), req.Servings)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, view)
}

type checklistRequest struct {
	IngredientIndex int  `json:"ingredientIndex"`
	HasIt           bool `json:"hasIt"`
}

func (h *handlers) toggleIngredient(w http.ResponseWriter, r *http.Request) {
	var req checklistRequest
	if !h.decode(w, r, &req) {
		return
	}
	view, err := h.sessions.ToggleIngredient(r.Context(), req.IngredientIndex, req.HasIt)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, view)
}

func (h *handlers) sessionAction(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context) (*inbound.SessionView, error),
) {
	view, err := action(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, view)
}

// --- leftovers ---

func (h *handlers) listLeftovers(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []leftover.Item{}
	}
	h.respond(w, r, http.StatusOK, map[string]interface{}{"leftovers": items})
}

type addLeftoversRequest struct {
	Text  string   `json:"text,omitempty"`
	Names []string `json:"names,omitempty"`
}

func (h *handlers) addLeftovers(w http.ResponseWriter, r *http.Request) {
	var req addLeftoversRequest
	if !h.decode(w, r, &req) {
		return
	}
	var (
		added []leftover.Item
		err   error
	)
	switch {
	case req.Text != "":
		added, err = h.inventory.AddFromText(r.Context(), req.Text)
	case len(req.Names) > 0:
		added, err = h.inventory.AddItems(r.Context(), req.Names)
	default:
		h.writeError(w, r, apperrors.NewValidationError("either text or names is required"))
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, map[string]interface{}{"added": added})
}

func (h *handlers) removeLeftover(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.inventory.Remove(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- grocery ---

func (h *handlers) listGrocery(w http.ResponseWriter, r *http.Request) {
	list, err := h.groceries.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if list == nil {
		list = grocery.List{}
	}
	h.respond(w, r, http.StatusOK, map[string]interface{}{"groceryList": list})
}

type groceryUpdateRequest struct {
	Completed bool `json:"completed"`
}

func (h *handlers) setGroceryCompleted(w http.ResponseWriter, r *http.Request) {
	var req groceryUpdateRequest
	if !h.decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.groceries.SetCompleted(r.Context(), id, req.Completed); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) removeGroceryItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.groceries.Remove(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- helpers ---

func (h *handlers) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, r, apperrors.NewBadRequestError("invalid request body"))
		return false
	}
	return true
}

func (h *handlers) respond(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError("an unexpected error occurred").WithCause(err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("code", string(appErr.Code)),
			zap.Error(err))
	}

	resp := apperrors.ToErrorResponse(appErr, chimiddleware.GetReqID(r.Context()))
	h.respond(w, r, appErr.StatusCode(), resp)
}
