package controllers

import (
	"net/http"

	"github.com/contactlearncert-blip/dianda-store/api/responses"
	"github.com/contactlearncert-blip/dianda-store/api/validators"
	"github.com/contactlearncert-blip/dianda-store/internal/cart"
	"github.com/contactlearncert-blip/dianda-store/internal/checkout"
	"github.com/contactlearncert-blip/dianda-store/pkg/logger"
)

type whatsappLinkRequest struct {
	Items []whatsappLinkItem `json:"items" validate:"required,min=1,dive"`
}

type whatsappLinkItem struct {
	Name     string `json:"name" validate:"required"`
	Price    int    `json:"price" validate:"required,gt=0"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// WhatsAppLink builds the short order summary and deep link from a caller
// supplied item list, without touching any persisted cart.
func WhatsAppLink(storeName, whatsappNumber string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload whatsappLinkRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := make([]cart.Line, 0, len(payload.Items))
		for _, item := range payload.Items {
			lines = append(lines, cart.Line{
				Name:     item.Name,
				Price:    item.Price,
				Quantity: item.Quantity,
			})
		}

		order, err := checkout.ComposeSimple(lines, storeName, whatsappNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
