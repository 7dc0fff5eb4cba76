package models

import "time"

// Site statuses
const (
	SiteStatusActive   = "active"
	SiteStatusInactive = "inactive"
	SiteStatusArchived = "archived"
)

type SiteModel struct {
	Id            int             `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string          `json:"name" gorm:"type:varchar(100);not null"`
	Latitude      float64         `json:"latitude" gorm:"not null"`
	Longitude     float64         `json:"longitude" gorm:"not null"`
	Description   *string         `json:"description" gorm:"type:text"`
	ResearchNotes *string         `json:"researchNotes" gorm:"type:text"`
	DiscoveryDate *time.Time      `json:"discoveryDate"`
	Period        *string         `json:"period" gorm:"type:varchar(100)"`
	Status        string          `json:"status" gorm:"type:varchar(20);default:active;not null"`
	ImageURLs     []string        `json:"imageUrls" gorm:"serializer:json"`
	Artifacts     []ArtifactModel `json:"artifacts,omitempty" gorm:"foreignKey:SiteID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	CreatedBy     *int            `json:"createdBy" gorm:"column:created_by"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// IsValidSiteStatus reports whether s is one of the three allowed statuses.
func IsValidSiteStatus(s string) bool {
	return s == SiteStatusActive || s == SiteStatusInactive || s == SiteStatusArchived
}
