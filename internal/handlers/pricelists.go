package handlers

import (
	"errors"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AsanSh/zakup.one/internal/database"
	"github.com/AsanSh/zakup.one/internal/models"
	"github.com/AsanSh/zakup.one/internal/services"
)

const maxPriceListSize = 50 * 1024 * 1024 // 50MB

// UploadPriceList accepts a supplier spreadsheet, stores it and queues it
// for processing (admin only)
func (h *Handler) UploadPriceList(c *fiber.Ctx) error {
	supplierID, err := strconv.Atoi(c.FormValue("supplier_id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "supplier_id is required")
	}

	supplier, err := h.db.GetSupplierByID(c.Context(), supplierID)
	if err != nil {
		if errors.Is(err, database.ErrSupplierNotFound) {
			return Error(c, fiber.StatusNotFound, "supplier not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get supplier")
	}

	// Get the uploaded file
	file, err := c.FormFile("file")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "file is required")
	}

	// Validate file type
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		return Error(c, fiber.StatusBadRequest, "invalid file type. Supported: .xlsx, .xls")
	}

	// Validate file size
	if file.Size > maxPriceListSize {
		return Error(c, fiber.StatusBadRequest, "file too large. Maximum size is 50MB")
	}

	// Generate unique storage key
	storageKey := services.PriceListObjectKey(file.Filename)

	// Open file for reading
	src, err := file.Open()
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to read file")
	}
	defer src.Close()

	// Upload to S3
	contentType := file.Header.Get("Content-Type")
	if _, err := h.storage.Upload(c.Context(), storageKey, src, file.Size, contentType); err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to store file")
	}

	// Create price list record
	priceList, err := h.db.CreatePriceList(c.Context(), supplier.ID, file.Filename, storageKey)
	if err != nil {
		// Clean up S3 on failure
		if deleteErr := h.storage.Delete(c.Context(), storageKey); deleteErr != nil {
			log.Printf("Warning: Failed to clean up S3 object %s after price list creation failure: %v", storageKey, deleteErr)
		}
		return Error(c, fiber.StatusInternalServerError, "failed to create price list record")
	}

	// Queue background processing
	if err := h.processor.ProcessAsync(priceList.ID); err != nil {
		log.Printf("Warning: Failed to queue price list %d: %v", priceList.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    priceList,
	})
}

// ListPriceLists returns a paginated list of uploaded price lists
func (h *Handler) ListPriceLists(c *fiber.Ctx) error {
	params := &models.PriceListListParams{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}

	if supplierID := c.Query("supplier_id"); supplierID != "" {
		if id, err := strconv.Atoi(supplierID); err == nil {
			params.SupplierID = &id
		}
	}

	if status := c.Query("status"); status != "" {
		s := models.PriceListStatus(status)
		params.Status = &s
	}

	// Validate limits
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 50
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	priceLists, total, err := h.db.ListPriceLists(c.Context(), params)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list price lists")
	}

	return SuccessWithMeta(c, priceLists, total, params.Limit, params.Offset)
}

// GetPriceList returns a single price list by ID
func (h *Handler) GetPriceList(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid price list id")
	}

	priceList, err := h.db.GetPriceListByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrPriceListNotFound) {
			return Error(c, fiber.StatusNotFound, "price list not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get price list")
	}

	return Success(c, priceList)
}

// ProcessPriceList re-runs parsing and import for a price list (admin only)
func (h *Handler) ProcessPriceList(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid price list id")
	}

	priceList, err := h.db.GetPriceListByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrPriceListNotFound) {
			return Error(c, fiber.StatusNotFound, "price list not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get price list")
	}

	if err := h.processor.ProcessAsync(priceList.ID); err != nil {
		if errors.Is(err, services.ErrAlreadyProcessing) {
			return Error(c, fiber.StatusConflict, "price list is already being processed")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to queue processing")
	}

	return Success(c, fiber.Map{
		"id":     priceList.ID,
		"status": models.PriceListProcessing,
	})
}

// GetPriceListDownloadURL returns a short-lived URL for the original file
func (h *Handler) GetPriceListDownloadURL(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid price list id")
	}

	priceList, err := h.db.GetPriceListByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrPriceListNotFound) {
			return Error(c, fiber.StatusNotFound, "price list not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get price list")
	}

	url, err := h.storage.GetPresignedURL(c.Context(), priceList.StorageKey, 15*time.Minute)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to generate download URL")
	}

	return Success(c, fiber.Map{
		"url":       url,
		"file_name": priceList.FileName,
	})
}

// DeletePriceList removes a price list, its stored file and the products
// imported from it (admin only)
func (h *Handler) DeletePriceList(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid price list id")
	}

	priceList, err := h.db.GetPriceListByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrPriceListNotFound) {
			return Error(c, fiber.StatusNotFound, "price list not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get price list")
	}

	deleted, err := h.db.DeleteProductsByPriceList(c.Context(), priceList.ID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to delete imported products")
	}

	if err := h.db.DeletePriceList(c.Context(), priceList.ID); err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to delete price list")
	}

	if err := h.storage.Delete(c.Context(), priceList.StorageKey); err != nil {
		log.Printf("Warning: Failed to delete S3 object %s: %v", priceList.StorageKey, err)
	}

	return Success(c, fiber.Map{
		"deleted":          true,
		"products_removed": deleted,
	})
}
