package models

// Product represents a catalog item in the store.
// Price is stored in cents.
type Product struct {
	ID          int    `json:"id" validate:"gt=0"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Price       int    `json:"price" validate:"gte=0"`
	Category    string `json:"category" validate:"required"`
	ImageURL    string `json:"imageUrl" validate:"required"`
	InStock     bool   `json:"inStock"`
}

// InsertProduct is the shape accepted when creating a product. The ID is
// always assigned by storage. A nil InStock means in stock.
type InsertProduct struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Price       int    `json:"price" validate:"gte=0"`
	Category    string `json:"category" validate:"required"`
	ImageURL    string `json:"imageUrl" validate:"required,url"`
	InStock     *bool  `json:"inStock,omitempty"`
}

// Categories a product is conventionally filed under. Not enforced.
const (
	CategoryMedicine = "Medicine"
	CategoryVitamins = "Vitamins"
	CategoryFirstAid = "First Aid"
	CategorySkincare = "Skincare"
)

// InStockOrDefault resolves the optional InStock flag.
func (p InsertProduct) InStockOrDefault() bool {
	if p.InStock == nil {
		return true
	}
	return *p.InStock
}
