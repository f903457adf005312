package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"catalog_ui/internal/domain"

	"github.com/sirupsen/logrus"
)

// fakeCatalog is an in-memory catalog that records every call as "METHOD path".
type fakeCatalog struct {
	categories []domain.Category
	products   []domain.Product
	nextID     int

	failCreate bool
	failUpdate bool
	failDelete bool

	calls   []string
	created []domain.ProductDraft
	updated []domain.ProductDraft
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		categories: []domain.Category{{ID: 1, Name: "Sedan"}, {ID: 2, Name: "SUV"}, {ID: 3, Name: "Hatch"}},
		products: []domain.Product{
			{ID: 5, Name: "Cadeira Gamer", Price: 899.9, Quantity: 2, CategoryID: 2},
			{ID: 6, Name: "Mesa", Price: 150, Quantity: 1, CategoryID: 3},
			{ID: 7, Name: "cadeira de praia", Price: 49.9, Quantity: 10, CategoryID: 3},
		},
		nextID: 100,
	}
}

func (f *fakeCatalog) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeCatalog) ListCategories(context.Context) []domain.Category {
	f.calls = append(f.calls, "GET /Categorias")
	return append([]domain.Category{}, f.categories...)
}

func (f *fakeCatalog) CreateProduct(_ context.Context, draft domain.ProductDraft) *domain.Product {
	f.calls = append(f.calls, "POST /Produto")
	f.created = append(f.created, draft)
	if f.failCreate {
		return nil
	}
	p := draft.Apply(f.nextID)
	f.nextID++
	f.products = append(f.products, p)
	return &p
}

func (f *fakeCatalog) ListProducts(context.Context) []domain.Product {
	f.calls = append(f.calls, "GET /Produto")
	return append([]domain.Product{}, f.products...)
}

func (f *fakeCatalog) UpdateProduct(_ context.Context, id int, draft domain.ProductDraft) *domain.Product {
	f.calls = append(f.calls, fmt.Sprintf("PUT /Produto/%d", id))
	f.updated = append(f.updated, draft)
	if f.failUpdate {
		return nil
	}
	for i, p := range f.products {
		if p.ID == id {
			f.products[i] = draft.Apply(id)
			return &f.products[i]
		}
	}
	return nil
}

func (f *fakeCatalog) DeleteProduct(_ context.Context, id int) {
	f.calls = append(f.calls, fmt.Sprintf("DELETE /Produto/%d", id))
	if f.failDelete {
		return
	}
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return
		}
	}
}

func (f *fakeCatalog) SearchProducts(_ context.Context, namePart string, categoryID int) []domain.Product {
	f.calls = append(f.calls, fmt.Sprintf("GET /Produto?nome=%s&categoriaId=%d", namePart, categoryID))
	return FilterProducts(f.products, Filter{Name: namePart, CategoryID: categoryID})
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
