package catalog

import "strings"

// CategoryAll disables category filtering; the storefront menu labels the
// same entry "Tous".
const (
	CategoryAll      = "all"
	CategoryAllLabel = "Tous"
)

// ListInput captures the filter and page knobs for the browse endpoint.
type ListInput struct {
	Category string
	Page     int
	PageSize int
}

// ListResult is one page of the filtered catalog view.
type ListResult struct {
	Products  []Product `json:"products"`
	Category  string    `json:"category"`
	Page      int       `json:"page"`
	PageCount int       `json:"page_count"`
	Total     int       `json:"total"`
}

func filterByCategory(products []Product, category string) []Product {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, CategoryAll) || category == CategoryAllLabel {
		return products
	}
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
