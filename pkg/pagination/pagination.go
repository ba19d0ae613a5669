package pagination

const (
	// DefaultPageSize matches the storefront's eight-product grid.
	DefaultPageSize = 8
	// MaxPageSize caps how many products a single page can request.
	MaxPageSize = 48
)

// NormalizePage clamps a page number to a valid 1-based value.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// NormalizeSize enforces the default and maximum page sizes.
func NormalizeSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// PageCount returns how many pages a collection of total items spans.
func PageCount(total, size int) int {
	size = NormalizeSize(size)
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Bounds returns the [start, end) slice window for the requested page.
// Pages past the end yield an empty window at the collection's tail.
func Bounds(page, size, total int) (int, int) {
	page = NormalizePage(page)
	size = NormalizeSize(size)

	start := (page - 1) * size
	if start > total {
		return total, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}
