package usecase

import (
	"strings"

	"catalog_ui/internal/domain"
)

// Filter selects products by name substring and category. Zero values match everything.
type Filter struct {
	Name       string
	CategoryID int
}

func (f Filter) Matches(p domain.Product) bool {
	if f.CategoryID != 0 && p.CategoryID != f.CategoryID {
		return false
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name))
}

// FilterProducts keeps the products matching f, preserving their order.
func FilterProducts(products []domain.Product, f Filter) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
