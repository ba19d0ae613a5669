package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/contactlearncert-blip/dianda-store/pkg/config"
	pkgerrors "github.com/contactlearncert-blip/dianda-store/pkg/errors"
	"github.com/contactlearncert-blip/dianda-store/pkg/redis"
)

type stubFetcher struct {
	payload []byte
	err     error
}

func (s *stubFetcher) Fetch(context.Context) ([]byte, error) {
	return s.payload, s.err
}

const testCatalogPayload = `[
	{"id": 1, "name": "Lampe dorée", "price": 18000, "category": "Décoration"},
	{"id": 2, "name": "Sac en cuir", "price": 25000, "category": "Accessoires"},
	{"id": 3, "name": "Montre", "price": 15000, "category": "Accessoires"},
	{"id": 4, "name": "Parfum", "price": 22000, "category": "Beauté"},
	{"id": 5, "name": "Bols", "price": 12000, "category": "Décoration"},
	{"id": 6, "name": "Foulard", "price": 8000, "category": "Accessoires"},
	{"id": 7, "name": "Coffret", "price": 30000, "category": "Beauté"},
	{"id": 8, "name": "Miroir", "price": 20000, "category": "Décoration"},
	{"id": 9, "name": "Bougie", "price": 4000, "category": "Décoration"}
]`

func newTestService(t *testing.T, fetcher Fetcher) Service {
	t.Helper()
	svc, err := NewService(config.CatalogConfig{PageSize: 8}, fetcher, testPlaceholder, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func loadedTestService(t *testing.T) Service {
	t.Helper()
	svc := newTestService(t, &stubFetcher{payload: []byte(testCatalogPayload)})
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return svc
}

func TestServiceFindByID(t *testing.T) {
	svc := loadedTestService(t)

	p, ok := svc.FindByID(4)
	if !ok || p.Name != "Parfum" {
		t.Fatalf("FindByID(4) = %+v, %v", p, ok)
	}
	if _, ok := svc.FindByID(999); ok {
		t.Fatal("unknown id resolved")
	}
}

func TestServiceListPagination(t *testing.T) {
	svc := loadedTestService(t)

	first := svc.List(ListInput{Category: CategoryAll, Page: 1})
	if len(first.Products) != 8 {
		t.Fatalf("page 1 size = %d, want 8", len(first.Products))
	}
	if first.Total != 9 || first.PageCount != 2 {
		t.Fatalf("unexpected totals: %+v", first)
	}

	second := svc.List(ListInput{Category: CategoryAll, Page: 2})
	if len(second.Products) != 1 {
		t.Fatalf("page 2 size = %d, want 1", len(second.Products))
	}
	if second.Products[0].ID != 9 {
		t.Fatalf("page 2 first product = %d, want 9", second.Products[0].ID)
	}

	past := svc.List(ListInput{Category: CategoryAll, Page: 10})
	if len(past.Products) != 0 {
		t.Fatalf("page past the end returned %d products", len(past.Products))
	}
}

func TestServiceListCategoryFilter(t *testing.T) {
	svc := loadedTestService(t)

	result := svc.List(ListInput{Category: "Accessoires", Page: 1})
	if result.Total != 3 {
		t.Fatalf("total = %d, want 3", result.Total)
	}
	for _, p := range result.Products {
		if p.Category != "Accessoires" {
			t.Errorf("filter leaked product %+v", p)
		}
	}

	// Case-insensitive match.
	insensitive := svc.List(ListInput{Category: "accessoires", Page: 1})
	if insensitive.Total != 3 {
		t.Fatalf("case-insensitive total = %d, want 3", insensitive.Total)
	}

	// Both the neutral token and its display label disable filtering.
	for _, all := range []string{CategoryAll, CategoryAllLabel, ""} {
		result := svc.List(ListInput{Category: all, Page: 1})
		if result.Total != 9 {
			t.Errorf("category %q total = %d, want 9", all, result.Total)
		}
	}
}

func TestServiceLoadFailureKeepsPreviousCatalog(t *testing.T) {
	fetcher := &stubFetcher{payload: []byte(testCatalogPayload)}
	svc := newTestService(t, fetcher)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	fetcher.payload = nil
	fetcher.err = errors.New("upstream down")

	err := svc.Load(context.Background())
	if err == nil {
		t.Fatal("expected load error")
	}
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(svc.Products()); got != 9 {
		t.Fatalf("previous catalog lost: %d products", got)
	}
}

func TestServiceLoadRejectsMalformedPayload(t *testing.T) {
	svc := newTestService(t, &stubFetcher{payload: []byte("<html>maintenance</html>")})

	if err := svc.Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
	if got := len(svc.Products()); got != 0 {
		t.Fatalf("malformed payload installed %d products", got)
	}
}

func TestServiceLoadPurgesUndecodableCachedPayload(t *testing.T) {
	cfg := config.CatalogConfig{SourceURL: "https://catalog.example/products", FetchTimeout: time.Second}
	cache := newStubCache()
	cache.values[redis.CatalogKey(cfg.SourceURL)] = "<html>maintenance</html>"

	svc := newTestService(t, NewSource(cfg, cache, nil))

	if err := svc.Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
	if _, ok := cache.values[redis.CatalogKey(cfg.SourceURL)]; ok {
		t.Fatal("undecodable cached payload survived the failed load")
	}
}
