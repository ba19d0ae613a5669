package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/contactlearncert-blip/dianda-store/api/responses"
	"github.com/contactlearncert-blip/dianda-store/api/validators"
	"github.com/contactlearncert-blip/dianda-store/internal/catalog"
	pkgerrors "github.com/contactlearncert-blip/dianda-store/pkg/errors"
	"github.com/contactlearncert-blip/dianda-store/pkg/logger"
	"github.com/contactlearncert-blip/dianda-store/pkg/pagination"
)

// ProductList serves one filtered page of the catalog.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		size, err := validators.ParseQueryInt(r, "size", 0, 1, pagination.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category := strings.TrimSpace(r.URL.Query().Get("category"))
		if category == "" {
			category = catalog.CategoryAll
		}

		result := svc.List(catalog.ListInput{
			Category: category,
			Page:     page,
			PageSize: size,
		})

		responses.WriteSuccess(w, result)
	}
}

// ProductDetail resolves a single product by its numeric id.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, ok := svc.FindByID(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Produit non trouvé"))
			return
		}

		responses.WriteSuccess(w, product)
	}
}
