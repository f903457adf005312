package domain

import "context"

// CatalogAPI is the strict view of the external catalog REST API. Every method issues
// exactly one request and reports failures as errors.
type CatalogAPI interface {
	ListCategories(ctx context.Context) ([]Category, error)
	CreateProduct(ctx context.Context, draft ProductDraft) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	UpdateProduct(ctx context.Context, id int, draft ProductDraft) (*Product, error)
	DeleteProduct(ctx context.Context, id int) error
	SearchProducts(ctx context.Context, namePart string, categoryID int) ([]Product, error)
}

// Catalog is the failure-absorbing view used by the UI. Failures are logged by the
// implementation and turned into empty slices or nil products; DeleteProduct reports nothing.
type Catalog interface {
	ListCategories(ctx context.Context) []Category
	CreateProduct(ctx context.Context, draft ProductDraft) *Product
	ListProducts(ctx context.Context) []Product
	UpdateProduct(ctx context.Context, id int, draft ProductDraft) *Product
	DeleteProduct(ctx context.Context, id int)
	SearchProducts(ctx context.Context, namePart string, categoryID int) []Product
}
