package handlers

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prnvgithub28/Foundry/internal/mailer"
	"github.com/prnvgithub28/Foundry/internal/matcher"
	"github.com/prnvgithub28/Foundry/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// matchConfidenceThreshold is the similarity score above which a found-item
// report triggers notification emails to both parties.
const matchConfidenceThreshold = 0.7

// similarTopK limits the found-side similarity pass.
const similarTopK = 5

// contactPlaceholder fills contactInfo when the client omits it.
const contactPlaceholder = "not provided"

// MatchingClient is the boundary to the external AI matching service.
type MatchingClient interface {
	Report(ctx context.Context, imageURL, description, location, category, reportType string) (*matcher.ReportResult, error)
	FindSimilar(ctx context.Context, embedding []float64, topK int) []matcher.Candidate
}

type ItemHandler struct {
	DB       *gorm.DB
	Matcher  MatchingClient
	Notifier mailer.MatchNotifier
}

func NewItemHandler(db *gorm.DB, matchClient MatchingClient, notifier mailer.MatchNotifier) *ItemHandler {
	return &ItemHandler{DB: db, Matcher: matchClient, Notifier: notifier}
}

// ReportItemRequest is the payload for POST /api/items/lost and /api/items/found.
type ReportItemRequest struct {
	ItemType      string `json:"itemType"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	DateLost      string `json:"dateLost"`
	DateFound     string `json:"dateFound"`
	ContactInfo   string `json:"contactInfo"`
	ContactNumber string `json:"contactNumber"`
	ReporterName  string `json:"reporterName"`
	ImageURL      string `json:"imageUrl"`
}

// CreateLostItem - POST /api/items/lost
func (h *ItemHandler) CreateLostItem(c *fiber.Ctx) error {
	return h.createItem(c, models.ReportTypeLost)
}

// CreateFoundItem - POST /api/items/found
func (h *ItemHandler) CreateFoundItem(c *fiber.Ctx) error {
	return h.createItem(c, models.ReportTypeFound)
}

// createItem runs the report pipeline: validate, persist, then best-effort
// enrichment through the matching service. The item is durable after step
// two; a matching outage degrades to matchStatus=failed but never blocks
// the write.
func (h *ItemHandler) createItem(c *fiber.Ctx, reportType string) error {
	var req ReportItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid request body"})
	}

	dateField, dateValue := "dateLost", req.DateLost
	if reportType == models.ReportTypeFound {
		dateField, dateValue = "dateFound", req.DateFound
	}

	if req.ItemType == "" || req.Description == "" || req.Location == "" || dateValue == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Missing required fields: itemType, description, location, " + dateField,
		})
	}

	reportDate, err := parseReportDate(dateValue)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid " + dateField + ": " + dateValue,
		})
	}

	contactInfo := req.ContactInfo
	if contactInfo == "" {
		contactInfo = contactPlaceholder
	}

	item := models.Item{
		ItemType:      req.ItemType,
		Category:      req.Category,
		Description:   req.Description,
		Location:      req.Location,
		ContactInfo:   contactInfo,
		ContactNumber: req.ContactNumber,
		ReporterName:  req.ReporterName,
		ImageURL:      req.ImageURL,
		ReportType:    reportType,
		Status:        models.StatusActive,
		MatchStatus:   models.MatchStatusPending,
	}
	if reportType == models.ReportTypeLost {
		item.DateLost = &reportDate
	} else {
		item.DateFound = &reportDate
	}

	if err := h.DB.Create(&item).Error; err != nil {
		log.Printf("Failed to create %s item: %v", reportType, err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Failed to create " + reportType + " item",
		})
	}

	message := "Lost item created successfully"
	if reportType == models.ReportTypeFound {
		message = "Found item reported successfully"
	}

	category := req.Category
	if category == "" {
		category = req.ItemType
	}

	result, err := h.Matcher.Report(c.Context(), req.ImageURL, req.Description, req.Location, category, reportType)
	if err != nil {
		log.Printf("Matching service error for item %d: %v", item.ID, err)
		item.MatchStatus = models.MatchStatusFailed
		if err := h.DB.Model(&item).Update("match_status", models.MatchStatusFailed).Error; err != nil {
			log.Printf("Failed to record match status for item %d: %v", item.ID, err)
		}
		return c.Status(fiber.StatusCreated).JSON(models.ItemResponse{
			Message: message + " (AI processing pending)",
			Item:    &item,
		})
	}

	item.ExternalID = result.ItemID
	item.MatchStatus = models.MatchStatusCompleted
	if reportType == models.ReportTypeLost {
		item.Matches = h.hydrateMatches(result.Matches)
	}
	if err := h.DB.Save(&item).Error; err != nil {
		log.Printf("Failed to save enrichment for item %d: %v", item.ID, err)
		item.MatchStatus = models.MatchStatusFailed
	}

	if reportType == models.ReportTypeFound && len(result.Embedding) > 0 {
		h.notifyLostReporters(c.Context(), &item, result.Embedding)
	}

	return c.Status(fiber.StatusCreated).JSON(models.ItemResponse{Message: message, Item: &item})
}

// hydrateMatches merges candidate hits with the stored counterpart rows so
// the frontend can render matches without extra lookups. Unknown candidates
// keep their id/score only.
func (h *ItemHandler) hydrateMatches(candidates []matcher.Candidate) models.MatchList {
	matches := make(models.MatchList, 0, len(candidates))
	for _, cand := range candidates {
		match := models.Match{
			ItemID:     cand.ItemID,
			Score:      cand.Score,
			Confidence: cand.Confidence,
			Reason:     cand.Reason,
		}
		var stored models.Item
		if err := h.DB.Where("external_id = ?", cand.ItemID).First(&stored).Error; err == nil {
			match.ItemType = stored.ItemType
			match.Description = stored.Description
			match.Location = stored.Location
			match.ReportType = stored.ReportType
			match.ImageURL = stored.ImageURL
		}
		matches = append(matches, match)
	}
	return matches
}

// notifyLostReporters runs the found-side similarity pass and emails both
// parties for every pairing above the confidence threshold.
func (h *ItemHandler) notifyLostReporters(ctx context.Context, found *models.Item, embedding []float64) {
	for _, cand := range h.Matcher.FindSimilar(ctx, embedding, similarTopK) {
		if cand.Score <= matchConfidenceThreshold {
			continue
		}

		var lost models.Item
		err := h.DB.Where("external_id = ? AND report_type = ?", cand.ItemID, models.ReportTypeLost).First(&lost).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				log.Printf("Failed to look up lost item %s: %v", cand.ItemID, err)
			}
			continue
		}

		if !h.Notifier.SendMatchNotification(&lost, found, cand.Score) {
			log.Printf("Failed to notify match between items %d and %d", lost.ID, found.ID)
		}
	}
}

// GetDiscoverItems - GET /api/items/discover
func (h *ItemHandler) GetDiscoverItems(c *fiber.Ctx) error {
	var items []models.Item
	if err := h.DB.Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to fetch items"})
	}

	category := c.Query("category")
	if category == "" {
		category = c.Query("itemType")
	}

	filtered := FilterItems(items, DiscoverFilters{
		Search:    c.Query("search"),
		Category:  category,
		Status:    c.Query("status"),
		DateRange: c.Query("dateRange"),
		SortBy:    c.Query("sortBy", "newest"),
	}, time.Now())

	return c.JSON(models.ListResponse{Items: filtered, Total: len(filtered)})
}

// GetLostItems - GET /api/items/lost
func (h *ItemHandler) GetLostItems(c *fiber.Ctx) error {
	return h.listByKind(c, models.ReportTypeLost)
}

// GetFoundItems - GET /api/items/found
func (h *ItemHandler) GetFoundItems(c *fiber.Ctx) error {
	return h.listByKind(c, models.ReportTypeFound)
}

func (h *ItemHandler) listByKind(c *fiber.Ctx, reportType string) error {
	items := make([]models.Item, 0)
	err := h.DB.Where("report_type = ?", reportType).Order("created_at desc").Find(&items).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Failed to fetch " + reportType + " items",
		})
	}
	return c.JSON(models.ListResponse{Items: items, Total: len(items)})
}

// GetUserItems - GET /api/items/user/:email
func (h *ItemHandler) GetUserItems(c *fiber.Ctx) error {
	return h.listForContact(c, "")
}

// GetUserLostItems - GET /api/items/lost/user/:email
func (h *ItemHandler) GetUserLostItems(c *fiber.Ctx) error {
	return h.listForContact(c, models.ReportTypeLost)
}

// GetUserFoundItems - GET /api/items/found/user/:email
func (h *ItemHandler) GetUserFoundItems(c *fiber.Ctx) error {
	return h.listForContact(c, models.ReportTypeFound)
}

func (h *ItemHandler) listForContact(c *fiber.Ctx, reportType string) error {
	email, err := urlDecodedParam(c, "email")
	if err != nil || email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Email is required"})
	}

	query := h.DB.Where("LOWER(contact_info) = ?", strings.ToLower(email))
	if reportType != "" {
		query = query.Where("report_type = ?", reportType)
	}

	items := make([]models.Item, 0)
	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to fetch items"})
	}
	return c.JSON(models.ListResponse{Items: items, Total: len(items)})
}

// DeleteItem - DELETE /api/items/:id
//
// Deletes by the store's own identifier; the matcher's external id is a
// correlation tag only and never a delete key.
func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid item id"})
	}

	var item models.Item
	if err := h.DB.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "Item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete item"})
	}

	if err := h.DB.Delete(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete item"})
	}

	return c.JSON(fiber.Map{"message": "Item deleted successfully"})
}

// parseReportDate accepts the date-only form the frontend sends, plus full
// RFC 3339 timestamps.
func parseReportDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// urlDecodedParam decodes a path segment. PathUnescape, not QueryUnescape:
// a literal "+" in a plus-addressed email must stay a "+".
func urlDecodedParam(c *fiber.Ctx, name string) (string, error) {
	return url.PathUnescape(c.Params(name))
}
