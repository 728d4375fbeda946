package repositories

import (
	"context"
	"errors"

	"storefront/internal/models"
)

// ErrStorage wraps every failure reported by a Storage implementation.
// Callers are not expected to interpret it further.
var ErrStorage = errors.New("storage failure")

// Storage is the persistence boundary for the storefront.
type Storage interface {
	// GetProducts returns every product in insertion order.
	GetProducts(ctx context.Context) ([]models.Product, error)

	// GetProduct returns the product with the given id, or (nil, nil)
	// when no such product exists.
	GetProduct(ctx context.Context, id int) (*models.Product, error)

	// CreateProduct inserts a product and returns it with its generated id.
	CreateProduct(ctx context.Context, product models.InsertProduct) (*models.Product, error)

	// CreateContactMessage inserts a contact message and returns it with
	// its generated id.
	CreateContactMessage(ctx context.Context, message models.InsertContactMessage) (*models.ContactMessage, error)
}

// SeedLocker is implemented by stores that can serialise catalog seeding
// across processes. fn receives a Storage bound to the locked scope.
type SeedLocker interface {
	WithSeedLock(ctx context.Context, fn func(Storage) error) error
}
