package client

import (
	"fmt"
	"strings"

	"storefront/internal/models"
)

// AllCategories selects every category in FilterProducts.
const AllCategories = "All"

// Categories lists the catalog filter choices in display order.
var Categories = []string{
	AllCategories,
	models.CategoryMedicine,
	models.CategoryVitamins,
	models.CategoryFirstAid,
	models.CategorySkincare,
}

// FilterProducts keeps the products in category whose name or description
// contains query, ignoring case. An empty category or AllCategories matches
// everything.
func FilterProducts(products []models.Product, category, query string) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// FormatPrice renders an amount in cents as dollars, e.g. 2499 as "$24.99".
func FormatPrice(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
