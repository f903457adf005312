package usecase

import (
	"context"

	"catalog_ui/internal/currency"
	"catalog_ui/internal/domain"

	"github.com/sirupsen/logrus"
)

type ListMode int

const (
	// ModeClientFilter fetches the full list and filters it locally.
	ModeClientFilter ListMode = iota
	// ModeServerSearch asks the search endpoint with the committed filter.
	ModeServerSearch
)

// EditSession is the working copy of the row being edited inline.
type EditSession struct {
	ProductID int
	Input     FormInput
}

type Row struct {
	Product       domain.Product
	CategoryName  string
	PriceText     string
	Editing       bool
	PendingDelete bool
}

type ListSnapshot struct {
	Mode          ListMode
	Rows          []Row
	Categories    []domain.Category
	Draft         Filter
	Committed     Filter
	Edit          *EditSession
	PendingDelete *Row
	Searched      bool
	Error         string
}

// ListView is the state behind a product table: committed filters, at most one inline
// edit and at most one delete awaiting confirmation. It is not safe for concurrent use.
type ListView struct {
	catalog    domain.Catalog
	categories *CategoryStore
	log        *logrus.Logger
	mode       ListMode

	products      []domain.Product
	draft         Filter
	committed     Filter
	edit          *EditSession
	pendingDelete int
	searched      bool
	errMsg        string
}

func NewListView(mode ListMode, catalog domain.Catalog, categories *CategoryStore, logger *logrus.Logger) *ListView {
	return &ListView{
		catalog:    catalog,
		categories: categories,
		log:        logger,
		mode:       mode,
		products:   []domain.Product{},
	}
}

// Mount runs on every page render. It makes sure categories are loaded and, in
// client-filter mode, refetches the full product list. Search results are only
// refetched by an explicit search.
func (v *ListView) Mount(ctx context.Context) {
	v.categories.Load(ctx)
	if v.mode != ModeClientFilter {
		return
	}
	v.products = v.catalog.ListProducts(ctx)
	v.dropStaleSessions()
	v.log.Debugf("ListView: Mounted with %d products", len(v.products))
}

// Refresh refetches products the way the current mode does.
func (v *ListView) Refresh(ctx context.Context) {
	switch v.mode {
	case ModeClientFilter:
		v.products = v.catalog.ListProducts(ctx)
	case ModeServerSearch:
		if !v.searched {
			return
		}
		v.products = v.catalog.SearchProducts(ctx, v.committed.Name, v.committed.CategoryID)
	}
	v.dropStaleSessions()
}

// OnMutationCommitted refreshes the list after another component changed the catalog.
func (v *ListView) OnMutationCommitted(ctx context.Context, m Mutation) {
	v.log.Debugf("ListView: Refreshing after %s of product %d", m.Kind, m.ProductID)
	v.Refresh(ctx)
}

func (v *ListView) SetDraftName(name string) {
	v.draft.Name = name
}

func (v *ListView) SetDraftCategory(id int) {
	v.draft.CategoryID = id
}

// ApplyFilter commits the draft filter. In server-search mode it runs the search.
func (v *ListView) ApplyFilter(ctx context.Context) {
	v.committed = v.draft
	if v.mode == ModeServerSearch {
		v.products = v.catalog.SearchProducts(ctx, v.committed.Name, v.committed.CategoryID)
		v.searched = true
	}
	v.dropStaleSessions()
}

// StartEdit opens an inline edit of product id, abandoning any edit in progress.
// Only rows the committed filter shows can be edited.
func (v *ListView) StartEdit(id int) bool {
	p, ok := v.findVisible(id)
	if !ok {
		return false
	}
	if v.edit != nil && v.edit.ProductID != id {
		v.log.Debugf("ListView: Abandoning unsaved edit of product %d", v.edit.ProductID)
	}
	v.edit = &EditSession{ProductID: id, Input: inputFromProduct(p)}
	v.errMsg = ""
	return true
}

func (v *ListView) SetEditName(name string) bool {
	if v.edit == nil {
		return false
	}
	v.edit.Input.Name = name
	return true
}

func (v *ListView) SetEditPrice(raw string) bool {
	if v.edit == nil {
		return false
	}
	v.edit.Input = v.edit.Input.withPrice(raw)
	return true
}

func (v *ListView) SetEditQuantity(raw string) bool {
	if v.edit == nil {
		return false
	}
	var ok bool
	v.edit.Input, ok = v.edit.Input.withQuantity(raw)
	return ok
}

func (v *ListView) SetEditCategory(id int) bool {
	if v.edit == nil {
		return false
	}
	v.edit.Input.CategoryID = id
	return true
}

// SaveEdit sends the full working copy, refetches and leaves edit mode. Validation or
// update failures keep the session open with a message.
func (v *ListView) SaveEdit(ctx context.Context) bool {
	if v.edit == nil {
		return false
	}
	draft, err := v.edit.Input.Draft()
	if err != nil {
		v.errMsg = err.Error()
		return false
	}

	id := v.edit.ProductID
	if updated := v.catalog.UpdateProduct(ctx, id, draft); updated == nil {
		v.errMsg = MsgUpdateFailed
		return false
	}

	v.log.Infof("ListView: Product %d saved", id)
	v.Refresh(ctx)
	v.edit = nil
	v.errMsg = ""
	return true
}

// CancelEdit drops the working copy without any network call.
func (v *ListView) CancelEdit() {
	v.edit = nil
	v.errMsg = ""
}

// RequestDelete asks for confirmation before deleting product id.
func (v *ListView) RequestDelete(id int) bool {
	if _, ok := v.find(id); !ok {
		return false
	}
	v.pendingDelete = id
	return true
}

// ConfirmDelete deletes the product awaiting confirmation and refetches. Delete
// failures are only logged by the catalog, the refetch shows what really happened.
func (v *ListView) ConfirmDelete(ctx context.Context) bool {
	id := v.pendingDelete
	if id == 0 {
		return false
	}
	v.pendingDelete = 0

	v.catalog.DeleteProduct(ctx, id)
	v.log.Infof("ListView: Delete of product %d requested", id)
	v.Refresh(ctx)
	return true
}

func (v *ListView) RejectDelete() {
	v.pendingDelete = 0
}

func (v *ListView) Editing() (EditSession, bool) {
	if v.edit == nil {
		return EditSession{}, false
	}
	return *v.edit, true
}

// Visible returns the products to display, in API order.
func (v *ListView) Visible() []domain.Product {
	if v.mode == ModeClientFilter {
		return FilterProducts(v.products, v.committed)
	}
	return append([]domain.Product{}, v.products...)
}

func (v *ListView) Snapshot() ListSnapshot {
	visible := v.Visible()
	rows := make([]Row, 0, len(visible))
	for _, p := range visible {
		rows = append(rows, v.row(p))
	}

	snap := ListSnapshot{
		Mode:       v.mode,
		Rows:       rows,
		Categories: v.categories.All(),
		Draft:      v.draft,
		Committed:  v.committed,
		Searched:   v.searched,
		Error:      v.errMsg,
	}
	if v.edit != nil {
		edit := *v.edit
		snap.Edit = &edit
	}
	if p, ok := v.find(v.pendingDelete); ok {
		r := v.row(p)
		snap.PendingDelete = &r
	}
	return snap
}

func (v *ListView) row(p domain.Product) Row {
	return Row{
		Product:       p,
		CategoryName:  v.categoryName(p),
		PriceText:     currency.Format(p.Price),
		Editing:       v.edit != nil && v.edit.ProductID == p.ID,
		PendingDelete: v.pendingDelete != 0 && v.pendingDelete == p.ID,
	}
}

func (v *ListView) categoryName(p domain.Product) string {
	if name, ok := v.categories.Name(p.CategoryID); ok {
		return name
	}
	return p.CategoryName
}

func (v *ListView) find(id int) (domain.Product, bool) {
	if id == 0 {
		return domain.Product{}, false
	}
	for _, p := range v.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (v *ListView) findVisible(id int) (domain.Product, bool) {
	for _, p := range v.Visible() {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// dropStaleSessions closes the delete prompt whose product is gone and the edit whose
// row is no longer shown.
func (v *ListView) dropStaleSessions() {
	if v.edit != nil {
		if _, ok := v.findVisible(v.edit.ProductID); !ok {
			v.edit = nil
		}
	}
	if _, ok := v.find(v.pendingDelete); !ok {
		v.pendingDelete = 0
	}
}
