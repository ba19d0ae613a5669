package catalog

import "testing"

const testPlaceholder = "/static/img/placeholder.png"

func TestDecodeProductsAppliesDefaults(t *testing.T) {
	payload := []byte(`[
		{"id": 1, "name": "  Lampe dorée  ", "price": 18000, "category": "Décoration", "image": "static/img/lamp.png"},
		{"id": 2, "name": "", "price": 8000},
		{"id": 3, "name": "Montre", "price": -500, "category": "   "}
	]`)

	products, err := decodeProducts(payload, testPlaceholder)
	if err != nil {
		t.Fatalf("decodeProducts: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("got %d products, want 3", len(products))
	}

	if products[0].Name != "Lampe dorée" {
		t.Errorf("name not trimmed: %q", products[0].Name)
	}

	if products[1].Name != DefaultName {
		t.Errorf("missing name not defaulted: %q", products[1].Name)
	}
	if products[1].Category != DefaultCategory {
		t.Errorf("missing category not defaulted: %q", products[1].Category)
	}
	if products[1].Image != testPlaceholder {
		t.Errorf("missing image not defaulted: %q", products[1].Image)
	}

	if products[2].Price != 0 {
		t.Errorf("negative price not clamped: %d", products[2].Price)
	}
	if products[2].Category != DefaultCategory {
		t.Errorf("blank category not defaulted: %q", products[2].Category)
	}
}

func TestDecodeProductsToleratesLooseNumbers(t *testing.T) {
	payload := []byte(`[
		{"id": "4", "name": "Parfum", "price": "22000"},
		{"id": 5, "name": "Bols", "price": 12000.9},
		{"id": 6, "name": "Foulard", "price": null},
		{"id": 7, "name": "Miroir", "price": "pas un prix"}
	]`)

	products, err := decodeProducts(payload, testPlaceholder)
	if err != nil {
		t.Fatalf("decodeProducts: %v", err)
	}

	wantPrices := map[int]int{4: 22000, 5: 12000, 6: 0, 7: 0}
	for _, p := range products {
		if want, ok := wantPrices[p.ID]; !ok || p.Price != want {
			t.Errorf("product %d price = %d, want %d", p.ID, p.Price, want)
		}
	}
}

func TestDecodeProductsRejectsNonArray(t *testing.T) {
	if _, err := decodeProducts([]byte(`{"products": []}`), testPlaceholder); err == nil {
		t.Fatal("expected error for non-array payload")
	}
	if _, err := decodeProducts([]byte(`not json`), testPlaceholder); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
