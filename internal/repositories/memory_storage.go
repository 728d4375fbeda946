package repositories

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/contract"
	"storefront/internal/models"
)

// MemoryStorage is an in-memory implementation of Storage. Ids start at 1
// and are never reused.
type MemoryStorage struct {
	mu       sync.RWMutex
	seedMu   sync.Mutex
	products []models.Product
	byID     map[int]int
	contacts []models.ContactMessage
	nextID   int
	nextMsg  int
}

// NewMemoryStorage creates a new instance of MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byID:    make(map[int]int),
		nextID:  1,
		nextMsg: 1,
	}
}

// GetProducts returns all products.
func (s *MemoryStorage) GetProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, len(s.products))
	copy(products, s.products)
	return products, nil
}

// GetProduct returns a product by its ID, or nil when it does not exist.
func (s *MemoryStorage) GetProduct(_ context.Context, id int) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	product := s.products[idx]
	return &product, nil
}

// CreateProduct adds a new product.
func (s *MemoryStorage) CreateProduct(_ context.Context, product models.InsertProduct) (*models.Product, error) {
	if verr := contract.Validate(product); verr != nil {
		return nil, fmt.Errorf("%w: invalid product: %w", ErrStorage, verr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := models.Product{
		ID:          s.nextID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		ImageURL:    product.ImageURL,
		InStock:     product.InStockOrDefault(),
	}
	s.nextID++
	s.byID[created.ID] = len(s.products)
	s.products = append(s.products, created)
	return &created, nil
}

// CreateContactMessage adds a new contact message.
func (s *MemoryStorage) CreateContactMessage(_ context.Context, message models.InsertContactMessage) (*models.ContactMessage, error) {
	if verr := contract.Validate(message); verr != nil {
		return nil, fmt.Errorf("%w: invalid contact message: %w", ErrStorage, verr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := models.ContactMessage{
		ID:      s.nextMsg,
		Name:    message.Name,
		Email:   message.Email,
		Message: message.Message,
	}
	s.nextMsg++
	s.contacts = append(s.contacts, created)
	return &created, nil
}

// ContactMessages returns a copy of every stored contact message.
func (s *MemoryStorage) ContactMessages() []models.ContactMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]models.ContactMessage, len(s.contacts))
	copy(messages, s.contacts)
	return messages
}

// WithSeedLock serialises seeders within the process.
func (s *MemoryStorage) WithSeedLock(_ context.Context, fn func(Storage) error) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	return fn(s)
}

// Ping always succeeds.
func (s *MemoryStorage) Ping(_ context.Context) error { return nil }
