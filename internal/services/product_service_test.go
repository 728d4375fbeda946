package services_test

import (
	"context"
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of repositories.Storage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockStorage) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockStorage) CreateProduct(ctx context.Context, product models.InsertProduct) (*models.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockStorage) CreateContactMessage(ctx context.Context, message models.InsertContactMessage) (*models.ContactMessage, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactMessage), args.Error(1)
}

var storageDown = fmt.Errorf("%w: connection refused", repositories.ErrStorage)

func TestProductService_GetAllProducts(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStorage)
	service := services.NewProductService(mockStore, zerolog.Nop())

	expectedProducts := []models.Product{
		{ID: 1, Name: "Product A", Price: 1000, Category: models.CategoryMedicine, InStock: true},
		{ID: 2, Name: "Product B", Price: 2000, Category: models.CategoryVitamins, InStock: true},
	}

	mockStore.On("GetProducts", ctx).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(ctx)

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockStore.AssertExpectations(t)
}

func TestProductService_GetAllProducts_NeverNil(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStorage)
	service := services.NewProductService(mockStore, zerolog.Nop())

	mockStore.On("GetProducts", ctx).Return(nil, nil).Once()

	products, err := service.GetAllProducts(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductService_GetAllProducts_StorageFailure(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStorage)
	service := services.NewProductService(mockStore, zerolog.Nop())

	mockStore.On("GetProducts", ctx).Return(nil, storageDown).Once()

	products, err := service.GetAllProducts(ctx)
	assert.ErrorIs(t, err, repositories.ErrStorage)
	assert.Nil(t, products)
}

func TestProductService_GetProductByID(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStorage)
	service := services.NewProductService(mockStore, zerolog.Nop())

	expectedProduct := &models.Product{ID: 1, Name: "Product A", Price: 1000}

	// Test successful retrieval
	mockStore.On("GetProduct", ctx, 1).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	// Test product not found
	mockStore.On("GetProduct", ctx, 99).Return(nil, nil).Once()
	product, err = service.GetProductByID(ctx, 99)
	assert.NoError(t, err)
	assert.Nil(t, product)

	// Test storage failure
	mockStore.On("GetProduct", ctx, 5).Return(nil, storageDown).Once()
	product, err = service.GetProductByID(ctx, 5)
	assert.ErrorIs(t, err, repositories.ErrStorage)
	assert.Nil(t, product)

	mockStore.AssertExpectations(t)
}
