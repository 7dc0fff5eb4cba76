package dtos

// ArtifactSummaryDTO represents a summarized view of an artifact for list
// pages, avoiding the full document payload.
type ArtifactSummaryDTO struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Period       *string `json:"period,omitempty"`
	Significance *string `json:"significance,omitempty"`
	SiteName     *string `json:"siteName,omitempty"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
	ForSale      bool    `json:"forSale"`
}
