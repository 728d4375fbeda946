package repositories

import "storefront/internal/models"

// productRecord is the persisted form of a product.
type productRecord struct {
	ID          int    `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:text;not null"`
	Description string `gorm:"type:text;not null"`
	Price       int    `gorm:"type:integer;not null"`
	Category    string `gorm:"type:text;not null"`
	ImageURL    string `gorm:"column:image_url;type:text;not null"`
	// Pointer so that an explicit false is written instead of the column default.
	InStock *bool `gorm:"column:in_stock;not null;default:true"`
}

func (productRecord) TableName() string { return "products" }

func newProductRecord(p models.InsertProduct) productRecord {
	inStock := p.InStockOrDefault()
	return productRecord{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		InStock:     &inStock,
	}
}

func (r productRecord) toModel() models.Product {
	return models.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		InStock:     r.InStock == nil || *r.InStock,
	}
}

// contactMessageRecord is the persisted form of a contact message.
type contactMessageRecord struct {
	ID      int    `gorm:"primaryKey;autoIncrement"`
	Name    string `gorm:"type:text;not null"`
	Email   string `gorm:"type:text;not null"`
	Message string `gorm:"type:text;not null"`
}

func (contactMessageRecord) TableName() string { return "contact_messages" }

func (r contactMessageRecord) toModel() models.ContactMessage {
	return models.ContactMessage{ID: r.ID, Name: r.Name, Email: r.Email, Message: r.Message}
}

// Records lists the persisted row types, for migrations.
func Records() []any {
	return []any{&productRecord{}, &contactMessageRecord{}}
}
