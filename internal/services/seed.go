package services

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/rs/zerolog"
)

// CatalogSeed is inserted into an empty catalog.
var CatalogSeed = []models.InsertProduct{
	{
		Name:        "Daily Multi-Vitamin",
		Description: "Complete daily nutrition support with essential vitamins and minerals.",
		Price:       2499,
		Category:    models.CategoryVitamins,
		ImageURL:    "https://images.unsplash.com/photo-1574688862214-7275883fe9b8?auto=format&fit=crop&q=80&w=800",
	},
	{
		Name:        "Advanced First Aid Kit",
		Description: "Comprehensive medical kit for home and travel emergencies.",
		Price:       4999,
		Category:    models.CategoryFirstAid,
		ImageURL:    "https://images.unsplash.com/photo-1603398938378-e54eab446dde?auto=format&fit=crop&q=80&w=800",
	},
	{
		Name:        "Hydrating Facial Cream",
		Description: "Dermatologist-tested moisturizer for sensitive skin.",
		Price:       1850,
		Category:    models.CategorySkincare,
		ImageURL:    "https://images.unsplash.com/photo-1620916566398-39f1143ab7be?auto=format&fit=crop&q=80&w=800",
	},
	{
		Name:        "Pain Relief Tablets",
		Description: "Fast-acting relief for headaches and muscle pain.",
		Price:       899,
		Category:    models.CategoryMedicine,
		ImageURL:    "https://images.unsplash.com/photo-1584308666744-24d5c474f2ae?auto=format&fit=crop&q=80&w=800",
	},
	{
		Name:        "Vitamin C Immune Support",
		Description: "High-potency Vitamin C supplement for immune health.",
		Price:       1599,
		Category:    models.CategoryVitamins,
		ImageURL:    "https://images.unsplash.com/photo-1584017911766-d451b3d0e843?auto=format&fit=crop&q=80&w=800",
	},
	{
		Name:        "Digital Thermometer",
		Description: "Accurate and fast temperature readings for the whole family.",
		Price:       1299,
		Category:    models.CategoryFirstAid,
		ImageURL:    "https://images.unsplash.com/photo-1588775405975-6c820f5a9c6c?auto=format&fit=crop&q=80&w=800",
	},
}

// SeedCatalog inserts CatalogSeed when the store holds no products and
// returns the number of rows inserted. Stores implementing
// repositories.SeedLocker run the check and the inserts under their lock.
//
// The count is only meaningful when err is nil. On failure it is 0, even
// though a store without transactions may keep the rows inserted before
// the failing one.
func SeedCatalog(ctx context.Context, store repositories.Storage, logger zerolog.Logger) (int, error) {
	logger = logger.With().Str("component", "seed").Logger()

	inserted := 0
	seed := func(s repositories.Storage) error {
		existing, err := s.GetProducts(ctx)
		if err != nil {
			return fmt.Errorf("failed to read catalog: %w", err)
		}
		if len(existing) > 0 {
			logger.Info().Int("existing", len(existing)).Msg("catalog already populated, skipping seed")
			return nil
		}
		for _, p := range CatalogSeed {
			created, err := s.CreateProduct(ctx, p)
			if err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.Name, err)
			}
			inserted++
			logger.Debug().Int("product_id", created.ID).Str("name", created.Name).Msg("seeded product")
		}
		return nil
	}

	var err error
	if locker, ok := store.(repositories.SeedLocker); ok {
		err = locker.WithSeedLock(ctx, seed)
	} else {
		err = seed(store)
	}
	if err != nil {
		return 0, err
	}

	if inserted > 0 {
		logger.Info().Int("inserted", inserted).Msg("catalog seeded")
	}
	return inserted, nil
}
