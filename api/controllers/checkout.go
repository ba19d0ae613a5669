package controllers

import (
	"net/http"
	"time"

	"github.com/contactlearncert-blip/dianda-store/api/responses"
	"github.com/contactlearncert-blip/dianda-store/internal/cart"
	"github.com/contactlearncert-blip/dianda-store/internal/checkout"
	pkgerrors "github.com/contactlearncert-blip/dianda-store/pkg/errors"
	"github.com/contactlearncert-blip/dianda-store/pkg/logger"
)

// CheckoutCompose renders the session's cart into an order message and its
// messaging deep link. The cart itself is left untouched; clearing happens
// once the buyer actually sends the message.
func CheckoutCompose(manager *cart.Manager, products checkout.ProductLookup, opts checkout.Options, logg *logger.Logger) http.HandlerFunc {
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

		order, err := checkout.Compose(store.Lines(), products, opts, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
