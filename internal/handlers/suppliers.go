package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/AsanSh/zakup.one/internal/database"
	"github.com/AsanSh/zakup.one/internal/models"
)

// ListSuppliers returns a paginated list of suppliers with their stats
func (h *Handler) ListSuppliers(c *fiber.Ctx) error {
	params := &models.SupplierListParams{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}

	if active := c.Query("is_active"); active != "" {
		v := active == "true"
		params.IsActive = &v
	}

	// Validate limits
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 50
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	suppliers, total, err := h.db.ListSuppliers(c.Context(), params)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list suppliers")
	}

	return SuccessWithMeta(c, suppliers, total, params.Limit, params.Offset)
}

// GetSupplier returns a single supplier by ID
func (h *Handler) GetSupplier(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid supplier id")
	}

	supplier, err := h.db.GetSupplierByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrSupplierNotFound) {
			return Error(c, fiber.StatusNotFound, "supplier not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get supplier")
	}

	return Success(c, supplier)
}

// CreateSupplier creates a new supplier (admin only)
func (h *Handler) CreateSupplier(c *fiber.Ctx) error {
	var req models.CreateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	// Validate required fields
	if req.Name == "" {
		return Error(c, fiber.StatusBadRequest, "name is required")
	}
	if req.InternalCode == "" {
		return Error(c, fiber.StatusBadRequest, "internal_code is required")
	}
	if req.MarkupSom < 0 {
		return Error(c, fiber.StatusBadRequest, "markup_som must not be negative")
	}

	supplier, err := h.db.CreateSupplier(c.Context(), &req)
	if err != nil {
		if errors.Is(err, database.ErrSupplierCodeExists) {
			return Error(c, fiber.StatusConflict, "internal_code already in use")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to create supplier")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    supplier,
	})
}

// UpdateSupplier updates an existing supplier (admin only). Changing the
// markup recomputes the final price of every product from this supplier.
func (h *Handler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid supplier id")
	}

	var req models.UpdateSupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.MarkupSom != nil && *req.MarkupSom < 0 {
		return Error(c, fiber.StatusBadRequest, "markup_som must not be negative")
	}

	supplier, err := h.db.UpdateSupplier(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, database.ErrSupplierNotFound) {
			return Error(c, fiber.StatusNotFound, "supplier not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update supplier")
	}

	return Success(c, supplier)
}

// DeleteSupplier deletes a supplier and its price lists (admin only)
func (h *Handler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid supplier id")
	}

	if err := h.db.DeleteSupplier(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrSupplierNotFound) {
			return Error(c, fiber.StatusNotFound, "supplier not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete supplier")
	}

	return Success(c, fiber.Map{"deleted": true})
}
