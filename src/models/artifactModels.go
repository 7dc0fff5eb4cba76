package models

import "time"

type ArtifactModel struct {
	Id           int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string     `json:"name" gorm:"type:varchar(100);not null"`
	Type         string     `json:"type" gorm:"type:varchar(100)"`
	Period       *string    `json:"period" gorm:"type:varchar(100)"`
	Material     *string    `json:"material" gorm:"type:varchar(100)"`
	Condition    *string    `json:"condition" gorm:"type:varchar(100)"`
	Significance *string    `json:"significance" gorm:"type:varchar(100)"`
	Description  *string    `json:"description" gorm:"type:text"`
	FindContext  *string    `json:"findContext" gorm:"type:text"`
	SiteID       *int       `json:"siteId" gorm:"column:site_id"`
	// SiteName is a cached copy of the owning site's name. It is refreshed
	// only when the artifact itself is written, never when the site is
	// renamed, so it can go stale.
	SiteName      *string   `json:"siteName" gorm:"type:varchar(100)"`
	ImageURLs     []string  `json:"imageUrls" gorm:"serializer:json"`
	AISummary     *string   `json:"aiSummary" gorm:"type:text"`
	ModelImageURL *string   `json:"modelImageUrl" gorm:"type:varchar(500)"`
	ForSale       bool      `json:"forSale" gorm:"default:false"`
	SalePrice     *float64  `json:"salePrice"`
	// SyncKey is the client-generated dedup key used by the offline queue so
	// a replayed create never produces a second document.
	SyncKey   *string   `json:"syncKey,omitempty" gorm:"type:varchar(64);uniqueIndex"`
	CreatedBy *int      `json:"createdBy" gorm:"column:created_by"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
