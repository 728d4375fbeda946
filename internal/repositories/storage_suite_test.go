package repositories_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"storefront/internal/contract"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func sampleProduct(name string) models.InsertProduct {
	return models.InsertProduct{
		Name:        name,
		Description: name + " description",
		Price:       1299,
		Category:    models.CategoryMedicine,
		ImageURL:    "https://example.com/" + name + ".jpg",
	}
}

// runStorageSuite checks the behaviour every Storage implementation shares.
// newStore must return an empty store.
func runStorageSuite(t *testing.T, newStore func(t *testing.T) repositories.Storage) {
	t.Run("empty catalog", func(t *testing.T) {
		store := newStore(t)
		products, err := store.GetProducts(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("create then get", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		in := sampleProduct("thermometer")
		created, err := store.CreateProduct(ctx, in)
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		assert.Equal(t, in.Name, created.Name)
		assert.Equal(t, in.Description, created.Description)
		assert.Equal(t, in.Price, created.Price)
		assert.Equal(t, in.Category, created.Category)
		assert.Equal(t, in.ImageURL, created.ImageURL)
		assert.True(t, created.InStock, "inStock defaults to true")

		got, err := store.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, *created, *got)
	})

	t.Run("explicit out of stock is kept", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		in := sampleProduct("cream")
		in.InStock = boolPtr(false)
		created, err := store.CreateProduct(ctx, in)
		require.NoError(t, err)
		assert.False(t, created.InStock)

		got, err := store.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.False(t, got.InStock)
	})

	t.Run("insertion order and increasing ids", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		names := []string{"a", "b", "c", "d"}
		lastID := 0
		for _, name := range names {
			created, err := store.CreateProduct(ctx, sampleProduct(name))
			require.NoError(t, err)
			assert.Greater(t, created.ID, lastID)
			lastID = created.ID
		}

		products, err := store.GetProducts(ctx)
		require.NoError(t, err)
		require.Len(t, products, len(names))
		for i, p := range products {
			assert.Equal(t, names[i], p.Name)
		}
	})

	t.Run("absent product", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		_, err := store.CreateProduct(ctx, sampleProduct("only"))
		require.NoError(t, err)

		for _, id := range []int{9999, 0, -1, math.MaxInt32 + 1, math.MinInt32 - 1} {
			got, err := store.GetProduct(ctx, id)
			assert.NoError(t, err, "id %d", id)
			assert.Nil(t, got, "id %d", id)
		}
	})

	t.Run("invalid product is rejected", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		invalid := map[string]func(p *models.InsertProduct){
			"name":     func(p *models.InsertProduct) { p.Name = "" },
			"price":    func(p *models.InsertProduct) { p.Price = -1 },
			"imageUrl": func(p *models.InsertProduct) { p.ImageURL = "not a url" },
			"category": func(p *models.InsertProduct) { p.Category = "" },
		}
		for field, mutate := range invalid {
			in := sampleProduct("bad")
			mutate(&in)
			created, err := store.CreateProduct(ctx, in)
			assert.Nil(t, created)
			require.ErrorIs(t, err, repositories.ErrStorage)

			var verr *contract.ValidationError
			require.True(t, errors.As(err, &verr), "field %s", field)
			assert.Equal(t, field, verr.Field)
		}

		products, err := store.GetProducts(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("contact messages", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		first, err := store.CreateContactMessage(ctx, models.InsertContactMessage{Name: "Ann", Email: "ann@example.com", Message: "Hello"})
		require.NoError(t, err)
		assert.Positive(t, first.ID)
		assert.Equal(t, "Ann", first.Name)
		assert.Equal(t, "ann@example.com", first.Email)
		assert.Equal(t, "Hello", first.Message)

		second, err := store.CreateContactMessage(ctx, models.InsertContactMessage{Name: "Bob", Email: "not-checked", Message: "Hi"})
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("invalid contact message is rejected", func(t *testing.T) {
		store := newStore(t)
		created, err := store.CreateContactMessage(context.Background(), models.InsertContactMessage{Name: "Ann", Email: "", Message: "Hello"})
		assert.Nil(t, created)
		require.ErrorIs(t, err, repositories.ErrStorage)

		var verr *contract.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "email", verr.Field)
	})

	t.Run("seed lock", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)
		locker, ok := store.(repositories.SeedLocker)
		require.True(t, ok, "store must implement SeedLocker")

		err := locker.WithSeedLock(ctx, func(s repositories.Storage) error {
			_, err := s.CreateProduct(ctx, sampleProduct("locked"))
			return err
		})
		require.NoError(t, err)

		products, err := store.GetProducts(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "locked", products[0].Name)

		sentinel := errors.New("stop")
		err = locker.WithSeedLock(ctx, func(repositories.Storage) error { return sentinel })
		assert.ErrorIs(t, err, sentinel)
	})
}
