package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Defaults substituted for absent or empty upstream fields.
const (
	DefaultName     = "Produit sans nom"
	DefaultCategory = "Non catégorisé"
)

// Product is one purchasable listing, immutable once loaded for a session.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

// flexInt tolerates upstream feeds that serialize numbers as strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		// Feeds occasionally carry float prices; truncate like the grid does.
		var fl float64
		if ferr := json.Unmarshal(data, &fl); ferr != nil {
			return err
		}
		n = int(fl)
	}
	*f = flexInt(n)
	return nil
}

type rawProduct struct {
	ID          flexInt `json:"id"`
	Name        string  `json:"name"`
	Price       flexInt `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// normalize applies the per-field default substitution rules at the boundary.
func (r rawProduct) normalize(placeholderImage string) Product {
	p := Product{
		ID:          int(r.ID),
		Name:        strings.TrimSpace(r.Name),
		Price:       int(r.Price),
		Description: r.Description,
		Image:       strings.TrimSpace(r.Image),
		Category:    strings.TrimSpace(r.Category),
	}
	if p.Name == "" {
		p.Name = DefaultName
	}
	if p.Price < 0 {
		p.Price = 0
	}
	if p.Image == "" {
		p.Image = placeholderImage
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	return p
}

// decodeProducts parses an upstream JSON array into defaulted products.
func decodeProducts(payload []byte, placeholderImage string) ([]Product, error) {
	var raws []rawProduct
	if err := json.Unmarshal(payload, &raws); err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, raw.normalize(placeholderImage))
	}
	return products, nil
}
