package domain

// Product as returned by the catalog API.
type Product struct {
	ID           int     `json:"id"`
	Name         string  `json:"nome"`
	Price        float64 `json:"preco"`
	Quantity     int     `json:"quantidade"`
	CategoryID   int     `json:"categoriaId"`
	CategoryName string  `json:"categoria,omitempty"` // denormalized name, only some responses carry it
}

// ProductDraft is the body sent on create and on full-replace update.
type ProductDraft struct {
	Name       string  `json:"nome"`
	Price      float64 `json:"preco"`
	CategoryID int     `json:"categoriaId"`
	Quantity   int     `json:"quantidade"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"nome"`
}

// Draft returns the editable fields of p.
func (p Product) Draft() ProductDraft {
	return ProductDraft{
		Name:       p.Name,
		Price:      p.Price,
		CategoryID: p.CategoryID,
		Quantity:   p.Quantity,
	}
}

// Apply returns the product with id carrying the draft's fields.
func (d ProductDraft) Apply(id int) Product {
	return Product{
		ID:         id,
		Name:       d.Name,
		Price:      d.Price,
		Quantity:   d.Quantity,
		CategoryID: d.CategoryID,
	}
}
