package clients

import (
	"context"

	"catalog_ui/internal/domain"

	"github.com/sirupsen/logrus"
)

var _ domain.Catalog = (*FallbackCatalog)(nil)

// FallbackCatalog absorbs API failures: they are logged and replaced by an empty
// result, so the UI always gets back to an interactive state.
type FallbackCatalog struct {
	api domain.CatalogAPI
	log *logrus.Logger
}

func NewFallbackCatalog(api domain.CatalogAPI, logger *logrus.Logger) *FallbackCatalog {
	return &FallbackCatalog{
		api: api,
		log: logger,
	}
}

func (f *FallbackCatalog) ListCategories(ctx context.Context) []domain.Category {
	categories, err := f.api.ListCategories(ctx)
	if err != nil {
		f.log.WithError(err).Error("Erro ao buscar categorias")
		return []domain.Category{}
	}
	return categories
}

func (f *FallbackCatalog) CreateProduct(ctx context.Context, draft domain.ProductDraft) *domain.Product {
	product, err := f.api.CreateProduct(ctx, draft)
	if err != nil {
		f.log.WithError(err).WithField("nome", draft.Name).Error("Erro ao cadastrar produto")
		return nil
	}
	return product
}

func (f *FallbackCatalog) ListProducts(ctx context.Context) []domain.Product {
	products, err := f.api.ListProducts(ctx)
	if err != nil {
		f.log.WithError(err).Error("Erro ao buscar produtos")
		return []domain.Product{}
	}
	return products
}

func (f *FallbackCatalog) UpdateProduct(ctx context.Context, id int, draft domain.ProductDraft) *domain.Product {
	product, err := f.api.UpdateProduct(ctx, id, draft)
	if err != nil {
		f.log.WithError(err).WithField("id", id).Error("Erro ao atualizar produto")
		return nil
	}
	return product
}

func (f *FallbackCatalog) DeleteProduct(ctx context.Context, id int) {
	if err := f.api.DeleteProduct(ctx, id); err != nil {
		f.log.WithError(err).WithField("id", id).Error("Erro ao excluir produto")
	}
}

func (f *FallbackCatalog) SearchProducts(ctx context.Context, namePart string, categoryID int) []domain.Product {
	products, err := f.api.SearchProducts(ctx, namePart, categoryID)
	if err != nil {
		f.log.WithError(err).WithFields(logrus.Fields{
			"nome":        namePart,
			"categoriaId": categoryID,
		}).Error("Erro ao buscar produtos")
		return []domain.Product{}
	}
	return products
}
