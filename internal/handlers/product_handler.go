package handlers

import (
	"storefront/internal/contract"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ProductNotFoundMessage is returned with a 404 for an unknown product id.
const ProductNotFoundMessage = "Product not found"

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service *services.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// RegisterRoutes registers the product routes with the Fiber router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get(contract.ListProducts.Path, h.HandleGetProducts)
	router.Get(contract.GetProduct.Path, h.HandleGetProductByID)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, verr := contract.ParseID(c.Params("id"))
	if verr != nil {
		h.logger.Debug().Str("id", c.Params("id")).Msg("malformed product id")
		return c.Status(fiber.StatusBadRequest).JSON(verr.Response())
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(contract.ErrorResponse{Message: ProductNotFoundMessage})
	}
	return c.JSON(product)
}
