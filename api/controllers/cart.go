package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/contactlearncert-blip/dianda-store/api/responses"
	"github.com/contactlearncert-blip/dianda-store/api/validators"
	cartstore "github.com/contactlearncert-blip/dianda-store/internal/cart"
	pkgerrors "github.com/contactlearncert-blip/dianda-store/pkg/errors"
	"github.com/contactlearncert-blip/dianda-store/pkg/logger"
)

// SessionCookie names the cookie that carries a browser's cart storage key.
// Requests without it all share the manager's default key.
const SessionCookie = "dianda_session"

type cartResponse struct {
	Lines       []cartstore.Line `json:"lines"`
	ItemCount   int              `json:"item_count"`
	TotalAmount int              `json:"total_amount"`
}

func newCartResponse(store *cartstore.Store) cartResponse {
	lines := store.Lines()
	if lines == nil {
		lines = []cartstore.Line{}
	}
	return cartResponse{
		Lines:       lines,
		ItemCount:   store.TotalItemCount(),
		TotalAmount: store.TotalAmount(),
	}
}

func sessionStore(r *http.Request, manager *cartstore.Manager) (*cartstore.Store, error) {
	key := ""
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		key = strings.TrimSpace(cookie.Value)
	}
	return manager.Store(r.Context(), key)
}

// CartFetch returns the session's cart as last persisted.
func CartFetch(manager *cartstore.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		store, err := sessionStore(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart"))
			return
		}

		responses.WriteSuccess(w, newCartResponse(store))
	}
}

type addItemRequest struct {
	ID    int    `json:"id" validate:"required,gt=0"`
	Name  string `json:"name" validate:"required"`
	Price int    `json:"price" validate:"required,gt=0"`
}

// CartAddItem adds one unit of a product snapshot to the cart.
func CartAddItem(manager *cartstore.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := sessionStore(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart"))
			return
		}

		if _, ok := store.Add(r.Context(), payload.ID, strings.TrimSpace(payload.Name), payload.Price); !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid cart item"))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(store))
	}
}

type quantityDeltaRequest struct {
	// Delta is the signed quantity change. Zero is valid and rewrites the
	// line in place; a resulting quantity of zero or less removes it. A
	// pointer keeps "delta": 0 distinct from a missing field.
	Delta *int `json:"delta" validate:"required"`
}

// CartUpdateQuantity applies a signed quantity change to the line at the
// given position.
func CartUpdateQuantity(manager *cartstore.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		index, err := parseLineIndex(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload quantityDeltaRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := sessionStore(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart"))
			return
		}

		if _, ok := store.ApplyQuantityDelta(r.Context(), index, *payload.Delta); !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "ligne de panier introuvable"))
			return
		}

		responses.WriteSuccess(w, newCartResponse(store))
	}
}

// CartRemoveItem deletes the line at the given position.
func CartRemoveItem(manager *cartstore.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		index, err := parseLineIndex(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := sessionStore(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart"))
			return
		}

		if _, ok := store.Remove(r.Context(), index); !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "ligne de panier introuvable"))
			return
		}

		responses.WriteSuccess(w, newCartResponse(store))
	}
}

// CartClear empties the session's cart.
func CartClear(manager *cartstore.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable"))
			return
		}

		store, err := sessionStore(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart"))
			return
		}

		store.Clear(r.Context())
		responses.WriteSuccess(w, newCartResponse(store))
	}
}

func parseLineIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid line index")
	}
	return index, nil
}
