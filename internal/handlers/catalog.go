package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/AsanSh/zakup.one/internal/database"
	"github.com/AsanSh/zakup.one/internal/models"
)

// ListCategories returns all categories with their product counts
func (h *Handler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.db.ListCategories(c.Context())
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list categories")
	}

	return Success(c, categories)
}

// ListProducts returns a paginated, filterable product catalog
func (h *Handler) ListProducts(c *fiber.Ctx) error {
	params := &models.ProductListParams{
		Limit:      c.QueryInt("limit", 50),
		Offset:     c.QueryInt("offset", 0),
		Search:     c.Query("search"),
		ActiveOnly: c.Query("include_inactive") != "true",
	}

	if categoryID := c.Query("category_id"); categoryID != "" {
		if id, err := strconv.Atoi(categoryID); err == nil {
			params.CategoryID = &id
		}
	}

	if supplierID := c.Query("supplier_id"); supplierID != "" {
		if id, err := strconv.Atoi(supplierID); err == nil {
			params.SupplierID = &id
		}
	}

	// Validate limits
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 50
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	products, total, err := h.db.ListProducts(c.Context(), params)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list products")
	}

	return SuccessWithMeta(c, products, total, params.Limit, params.Offset)
}

// GetProduct returns a single product by ID
func (h *Handler) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid product id")
	}

	product, err := h.db.GetProductByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrProductNotFound) {
			return Error(c, fiber.StatusNotFound, "product not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get product")
	}

	return Success(c, product)
}
