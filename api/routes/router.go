package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/contactlearncert-blip/dianda-store/api/controllers"
	"github.com/contactlearncert-blip/dianda-store/api/middleware"
	"github.com/contactlearncert-blip/dianda-store/internal/cart"
	"github.com/contactlearncert-blip/dianda-store/internal/catalog"
	"github.com/contactlearncert-blip/dianda-store/internal/checkout"
	"github.com/contactlearncert-blip/dianda-store/pkg/config"
	"github.com/contactlearncert-blip/dianda-store/pkg/db"
	"github.com/contactlearncert-blip/dianda-store/pkg/logger"
	"github.com/contactlearncert-blip/dianda-store/pkg/metrics"
	"github.com/contactlearncert-blip/dianda-store/pkg/redis"
)

// Dependencies bundles everything the HTTP surface needs. The cache client
// and metrics handler are optional.
type Dependencies struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Cache    redis.Pinger
	Catalog  catalog.Service
	Carts    *cart.Manager
	Metrics  *metrics.HTTPMetrics
	PromHTTP http.Handler
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Cache, deps.Catalog, logg))
	})

	if deps.PromHTTP != nil {
		r.Method(http.MethodGet, "/metrics", deps.PromHTTP)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	composeOpts := checkout.Options{
		StoreName:        cfg.Store.Name,
		WhatsAppNumber:   cfg.Store.WhatsAppNumber,
		DialPrefix:       cfg.Store.DialPrefix,
		Location:         cfg.Store.Location,
		BaseURL:          cfg.Store.BaseURL,
		PlaceholderImage: cfg.Store.PlaceholderImage,
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Catalog, logg))
			r.Get("/{id}", controllers.ProductDetail(deps.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Carts, logg))
			r.Delete("/", controllers.CartClear(deps.Carts, logg))
			r.Post("/items", controllers.CartAddItem(deps.Carts, logg))
			r.Patch("/items/{index}", controllers.CartUpdateQuantity(deps.Carts, logg))
			r.Delete("/items/{index}", controllers.CartRemoveItem(deps.Carts, logg))
		})

		r.Post("/checkout", controllers.CheckoutCompose(deps.Carts, deps.Catalog, composeOpts, logg))
		r.Post("/whatsapp-link", controllers.WhatsAppLink(cfg.Store.Name, cfg.Store.WhatsAppNumber, logg))
	})

	return r
}
