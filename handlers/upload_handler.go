package handlers

import (
	"log"
	"strings"

	"github.com/prnvgithub28/Foundry/internal/imagestore"
	"github.com/prnvgithub28/Foundry/models"

	"github.com/gofiber/fiber/v2"
)

// maxUploadSize caps image uploads at 5MB.
const maxUploadSize = 5 * 1024 * 1024

// UploadHandler forwards image uploads to the configured image store.
type UploadHandler struct {
	Store imagestore.Store
}

func NewUploadHandler(store imagestore.Store) *UploadHandler {
	return &UploadHandler{Store: store}
}

// UploadImage - POST /api/upload/upload
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "No image file provided"})
	}

	if file.Size > maxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Image must be smaller than 5MB"})
	}

	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Only image files are allowed"})
	}

	folder := c.FormValue("folder", "foundry")

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Upload failed"})
	}
	defer src.Close()

	result, err := h.Store.Upload(c.Context(), src, file.Filename, folder)
	if err != nil {
		log.Printf("Upload error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Upload failed"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"url":      result.URL,
			"publicId": result.PublicID,
			"format":   result.Format,
			"size":     result.Size,
		},
	})
}

// DeleteImage - DELETE /api/upload/delete/+
//
// A wildcard segment because Cloudinary public IDs contain slashes.
func (h *UploadHandler) DeleteImage(c *fiber.Ctx) error {
	publicID := c.Params("+")
	if publicID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Public ID is required"})
	}

	if err := h.Store.Delete(c.Context(), publicID); err != nil {
		log.Printf("Delete error for %s: %v", publicID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Delete failed"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Image deleted successfully",
	})
}
