package handlers

import (
	"sort"
	"strings"
	"time"

	"github.com/prnvgithub28/Foundry/models"
)

// DiscoverFilters are the query parameters of GET /api/items/discover.
// All filters are conjunctive.
type DiscoverFilters struct {
	Search    string // case-insensitive substring over itemType/description/location
	Category  string // category slug or exact item type
	Status    string // lost, found, or all
	DateRange string // today, week, month, three-months
	SortBy    string // newest (default), oldest
}

// categoryKeywords buckets legacy rows whose category field was never set.
// Best-effort migration aid, not exhaustive.
var categoryKeywords = map[string][]string{
	"electronics": {"phone", "iphone", "laptop", "macbook", "tablet", "charger", "earbuds", "headphone", "camera", "watch", "calculator"},
	"clothing":    {"jacket", "hoodie", "coat", "shirt", "sweater", "scarf", "hat", "glove", "shoe"},
	"accessories": {"bag", "backpack", "umbrella", "glasses", "sunglasses", "ring", "necklace", "bracelet"},
	"books":       {"book", "notebook", "textbook", "binder"},
	"documents":   {"card", "passport", "license", "document", "certificate"},
	"keys":        {"key", "keychain", "fob"},
	"wallet":      {"wallet", "purse"},
}

// FilterItems applies the discover filters in memory over the full item list
// and sorts the survivors. now anchors the date-range cutoffs.
func FilterItems(items []models.Item, filters DiscoverFilters, now time.Time) []models.Item {
	cutoff, hasCutoff := dateCutoff(filters.DateRange, now)

	out := make([]models.Item, 0, len(items))
	for _, item := range items {
		if filters.Status != "" && filters.Status != "all" && item.ReportType != filters.Status {
			continue
		}
		if filters.Category != "" && !matchesCategory(item, filters.Category) {
			continue
		}
		if filters.Search != "" && !matchesSearch(item, filters.Search) {
			continue
		}
		if hasCutoff && item.CreatedAt.Before(cutoff) {
			continue
		}
		out = append(out, item)
	}

	if filters.SortBy == "oldest" {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}

	return out
}

func matchesCategory(item models.Item, category string) bool {
	category = strings.ToLower(category)
	if strings.ToLower(item.Category) == category {
		return true
	}
	if strings.EqualFold(item.ItemType, category) {
		return true
	}
	if item.Category != "" {
		return false
	}

	// Legacy rows without a structured category fall back to keyword buckets.
	name := strings.ToLower(item.ItemType)
	for _, keyword := range categoryKeywords[category] {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

func matchesSearch(item models.Item, search string) bool {
	search = strings.ToLower(search)
	for _, field := range []string{item.ItemType, item.Description, item.Location} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// dateCutoff maps a date-range bucket to the earliest createdAt retained.
func dateCutoff(dateRange string, now time.Time) (time.Time, bool) {
	switch dateRange {
	case "today":
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	case "three-months":
		return now.AddDate(0, -3, 0), true
	default:
		return time.Time{}, false
	}
}
