package config

import (
	"log"
	"time"

	"github.com/prnvgithub28/Foundry/models"

	"gorm.io/gorm"
)

func SeedCategories(db *gorm.DB) {
	log.Println("🌱 Seeding categories...")

	categories := []models.Category{
		{Name: "Electronics", Slug: "electronics"},
		{Name: "Clothing", Slug: "clothing"},
		{Name: "Accessories", Slug: "accessories"},
		{Name: "Books", Slug: "books"},
		{Name: "Documents", Slug: "documents"},
		{Name: "Keys", Slug: "keys"},
		{Name: "Wallet/Purse", Slug: "wallet"},
		{Name: "Other", Slug: "other"},
	}

	for _, category := range categories {
		var existing models.Category
		if err := db.Where("slug = ?", category.Slug).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&category).Error; err != nil {
					log.Printf("Failed to seed category %s: %v", category.Slug, err)
				}
			}
		}
	}
}

func SeedItems(db *gorm.DB) {
	var count int64
	db.Model(&models.Item{}).Count(&count)
	if count > 0 {
		return
	}

	log.Println("🌱 Seeding demo items...")

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -6)

	items := []models.Item{
		{
			ItemType:    "iPhone 13",
			Category:    "electronics",
			Description: "Black iPhone 13 with clear case. Lock screen visible.",
			Location:    "Student Center",
			DateFound:   &yesterday,
			ContactInfo: "finder@example.edu",
			ReportType:  models.ReportTypeFound,
			Status:      models.StatusActive,
			MatchStatus: models.MatchStatusPending,
		},
		{
			ItemType:    "Blue Backpack",
			Category:    "accessories",
			Description: "Navy blue backpack with multiple compartments. Contains textbooks and laptop.",
			Location:    "Library 2nd Floor",
			DateLost:    &lastWeek,
			ContactInfo: "owner@example.edu",
			ReportType:  models.ReportTypeLost,
			Status:      models.StatusActive,
			MatchStatus: models.MatchStatusPending,
		},
	}

	for _, item := range items {
		if err := db.Create(&item).Error; err != nil {
			log.Printf("Failed to seed item %s: %v", item.ItemType, err)
		} else {
			log.Printf("Item seeded: %s (ID: %d)", item.ItemType, item.ID)
		}
	}
}
