package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/rs/zerolog"
)

// ProductService handles catalog reads.
type ProductService struct {
	store  repositories.Storage
	logger zerolog.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(store repositories.Storage, logger zerolog.Logger) *ProductService {
	return &ProductService{
		store:  store,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

// GetAllProducts retrieves all products. The result is never nil.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")
	return products, nil
}

// GetProductByID retrieves a single product by its ID. A nil product with a
// nil error means no such product.
func (s *ProductService) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	return s.store.GetProduct(ctx, id)
}
