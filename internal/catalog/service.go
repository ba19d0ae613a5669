package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/contactlearncert-blip/dianda-store/pkg/config"
	pkgerrors "github.com/contactlearncert-blip/dianda-store/pkg/errors"
	"github.com/contactlearncert-blip/dianda-store/pkg/logger"
	"github.com/contactlearncert-blip/dianda-store/pkg/pagination"
)

// Fetcher abstracts the raw payload source for the service.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Service owns the loaded product list and answers point lookups and
// filtered page views. The list is read-only between loads.
type Service interface {
	Load(ctx context.Context) error
	Products() []Product
	FindByID(id int) (Product, bool)
	List(input ListInput) ListResult
	Ping(ctx context.Context) error
}

type service struct {
	cfg    config.CatalogConfig
	source Fetcher
	logg   *logger.Logger

	mu       sync.RWMutex
	products []Product
	byID     map[int]Product
	loaded   bool

	placeholderImage string
}

// NewService builds a catalog service backed by the provided source.
func NewService(cfg config.CatalogConfig, source Fetcher, placeholderImage string, logg *logger.Logger) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	return &service{
		cfg:              cfg,
		source:           source,
		logg:             logg,
		placeholderImage: placeholderImage,
	}, nil
}

// Load replaces the catalog wholesale from the source. A failed load keeps
// the previous list so an already-browsing session survives a flaky source.
func (s *service) Load(ctx context.Context) error {
	payload, err := s.source.Fetch(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
	}

	products, err := decodeProducts(payload, s.placeholderImage)
	if err != nil {
		// A cached copy that no longer decodes would otherwise be served on
		// every retry until its TTL runs out.
		if inv, ok := s.source.(interface{ Invalidate(context.Context) }); ok {
			inv.Invalidate(ctx)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog payload")
	}

	byID := make(map[int]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	s.mu.Lock()
	s.products = products
	s.byID = byID
	s.loaded = true
	s.mu.Unlock()

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "count", len(products)), "catalog loaded")
	}
	return nil
}

// Products returns a copy of the loaded list.
func (s *service) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// FindByID answers the point lookup used for detail pages and image
// resolution during checkout.
func (s *service) FindByID(id int) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}

// List applies the category filter and slices the requested page.
func (s *service) List(input ListInput) ListResult {
	s.mu.RLock()
	products := s.products
	s.mu.RUnlock()

	size := input.PageSize
	if size <= 0 {
		size = s.cfg.PageSize
	}
	size = pagination.NormalizeSize(size)
	page := pagination.NormalizePage(input.Page)

	filtered := filterByCategory(products, input.Category)
	start, end := pagination.Bounds(page, size, len(filtered))

	pageItems := make([]Product, end-start)
	copy(pageItems, filtered[start:end])

	return ListResult{
		Products:  pageItems,
		Category:  input.Category,
		Page:      page,
		PageCount: pagination.PageCount(len(filtered), size),
		Total:     len(filtered),
	}
}

// Ping reports whether a catalog has been loaded for this session.
func (s *service) Ping(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return fmt.Errorf("catalog not loaded")
	}
	return nil
}
