package models

import (
	"time"

	"gorm.io/gorm"
)

// Report kinds.
const (
	ReportTypeLost  = "lost"
	ReportTypeFound = "found"
)

// Item lifecycle statuses.
const (
	StatusActive   = "active"
	StatusResolved = "resolved"
)

// Enrichment states of the AI matching round-trip. A report is durable before
// enrichment starts, so a failed round-trip leaves a visible "failed" marker
// instead of silently missing data.
const (
	MatchStatusPending   = "pending"
	MatchStatusCompleted = "completed"
	MatchStatusFailed    = "failed"
)

type Item struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// ExternalID is the correlation tag assigned by the matching service.
	// Set at most once; never used as a lookup key for update/delete,
	// the store ID is canonical.
	ExternalID string `gorm:"size:64;index" json:"itemId,omitempty"`

	ItemType    string `gorm:"size:255;not null" json:"itemType"`
	Category    string `gorm:"size:50;index" json:"category,omitempty"` // electronics, keys, wallet, etc.
	Description string `gorm:"type:text;not null" json:"description"`
	Location    string `gorm:"size:255;not null" json:"location"`

	// Exactly one of these is set, matching ReportType.
	DateLost  *time.Time `json:"dateLost,omitempty"`
	DateFound *time.Time `json:"dateFound,omitempty"`

	ContactInfo   string `gorm:"size:255;index" json:"contactInfo"`
	ContactNumber string `gorm:"size:50" json:"contactNumber,omitempty"`
	ReporterName  string `gorm:"size:100" json:"reporterName,omitempty"`

	ImageURL string `json:"imageUrl,omitempty"`

	ReportType  string `gorm:"size:10;index;not null" json:"reportType"`
	Status      string `gorm:"default:'active';size:20" json:"status"`
	MatchStatus string `gorm:"default:'pending';size:20" json:"matchStatus"`

	// Candidate matches, lost items only. Stored denormalized so the
	// listing views never need a second query.
	Matches MatchList `gorm:"serializer:json" json:"matches,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Match is one candidate pairing returned by the matching service, hydrated
// with the stored counterpart's details where the counterpart is known.
type Match struct {
	ItemID      string  `json:"itemId,omitempty"`
	ItemType    string  `json:"itemType,omitempty"`
	Description string  `json:"description,omitempty"`
	Location    string  `json:"location,omitempty"`
	ReportType  string  `json:"reportType,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Score       float64 `json:"score"`
	Confidence  string  `json:"confidence,omitempty"`
	Reason      string  `json:"reason,omitempty"`
}

type MatchList []Match
