// Package stockrepo keeps per-product stock counts used at checkout.
package stockrepo

// ProductDTO is one row of the products table. Only the stock column is
// written by this service; the catalogue owns the rest.
type ProductDTO struct {
	ID    string `gorm:"primaryKey;size:64"`
	Name  string
	Stock int `gorm:"not null;default:0;check:stock >= 0"`
}

func (ProductDTO) TableName() string {
	return "products"
}
