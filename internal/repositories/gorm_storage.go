package repositories

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"storefront/internal/contract"
	"storefront/internal/metrics"
	"storefront/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// DefaultQueryTimeout bounds a single storage call when no timeout is configured.
const DefaultQueryTimeout = 5 * time.Second

// seedLockKey identifies the postgres advisory lock taken while seeding.
const seedLockKey int64 = 0x73746f7265 // "store"

// GORMStorage is a GORM implementation of Storage.
type GORMStorage struct {
	db           *gorm.DB
	queryTimeout time.Duration
	logger       zerolog.Logger
}

// NewGORMStorage creates a new instance of GORMStorage.
func NewGORMStorage(db *gorm.DB, queryTimeout time.Duration, logger zerolog.Logger) *GORMStorage {
	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}
	return &GORMStorage{
		db:           db,
		queryTimeout: queryTimeout,
		logger:       logger.With().Str("repository", "gorm").Logger(),
	}
}

// Migrate creates or updates the products and contact_messages tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Records()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (s *GORMStorage) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	return s.db.WithContext(ctx), cancel
}

// GetProducts retrieves all products from the database.
func (s *GORMStorage) GetProducts(ctx context.Context) ([]models.Product, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	var records []productRecord
	if err := db.Order("id").Find(&records).Error; err != nil {
		metrics.ObserveStorage("get_products", metrics.ResultError)
		s.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("%w: failed to get products: %w", ErrStorage, err)
	}

	products := make([]models.Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.toModel())
	}
	metrics.ObserveStorage("get_products", metrics.ResultSuccess)
	return products, nil
}

// GetProduct retrieves a single product by its ID from the database.
func (s *GORMStorage) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	// products.id is a serial column; ids outside int4 cannot exist.
	if id < math.MinInt32 || id > math.MaxInt32 {
		metrics.ObserveStorage("get_product", metrics.ResultNotFound)
		return nil, nil
	}

	db, cancel := s.session(ctx)
	defer cancel()

	var record productRecord
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.ObserveStorage("get_product", metrics.ResultNotFound)
			s.logger.Debug().Int("product_id", id).Msg("product not found")
			return nil, nil
		}
		metrics.ObserveStorage("get_product", metrics.ResultError)
		s.logger.Error().Err(err).Int("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("%w: failed to get product by ID %d: %w", ErrStorage, id, err)
	}

	product := record.toModel()
	metrics.ObserveStorage("get_product", metrics.ResultSuccess)
	return &product, nil
}

// CreateProduct creates a new product in the database.
func (s *GORMStorage) CreateProduct(ctx context.Context, product models.InsertProduct) (*models.Product, error) {
	if verr := contract.Validate(product); verr != nil {
		metrics.ObserveStorage("create_product", metrics.ResultInvalid)
		return nil, fmt.Errorf("%w: invalid product: %w", ErrStorage, verr)
	}

	db, cancel := s.session(ctx)
	defer cancel()

	record := newProductRecord(product)
	if err := db.Create(&record).Error; err != nil {
		metrics.ObserveStorage("create_product", metrics.ResultError)
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to insert product")
		return nil, fmt.Errorf("%w: failed to create product: %w", ErrStorage, err)
	}

	created := record.toModel()
	metrics.ObserveStorage("create_product", metrics.ResultSuccess)
	return &created, nil
}

// CreateContactMessage stores a new contact message in the database.
func (s *GORMStorage) CreateContactMessage(ctx context.Context, message models.InsertContactMessage) (*models.ContactMessage, error) {
	if verr := contract.Validate(message); verr != nil {
		metrics.ObserveStorage("create_contact_message", metrics.ResultInvalid)
		return nil, fmt.Errorf("%w: invalid contact message: %w", ErrStorage, verr)
	}

	db, cancel := s.session(ctx)
	defer cancel()

	record := contactMessageRecord{Name: message.Name, Email: message.Email, Message: message.Message}
	if err := db.Create(&record).Error; err != nil {
		metrics.ObserveStorage("create_contact_message", metrics.ResultError)
		s.logger.Error().Err(err).Msg("failed to insert contact message")
		return nil, fmt.Errorf("%w: failed to create contact message: %w", ErrStorage, err)
	}

	created := record.toModel()
	metrics.ObserveStorage("create_contact_message", metrics.ResultSuccess)
	return &created, nil
}

// WithSeedLock runs fn inside a transaction. On postgres the transaction
// also holds an advisory lock, so concurrent first starts seed only once.
func (s *GORMStorage) WithSeedLock(ctx context.Context, fn func(Storage) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", seedLockKey).Error; err != nil {
				return fmt.Errorf("%w: failed to acquire seed lock: %w", ErrStorage, err)
			}
		}
		return fn(&GORMStorage{db: tx, queryTimeout: s.queryTimeout, logger: s.logger})
	})
	if err != nil && !errors.Is(err, ErrStorage) {
		return fmt.Errorf("%w: seed transaction: %w", ErrStorage, err)
	}
	return err
}

// Ping checks that the database is reachable.
func (s *GORMStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping failed: %w", ErrStorage, err)
	}
	return nil
}
