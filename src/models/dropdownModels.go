package models

import "time"

// Option kinds stored in the registry document.
const (
	OptionKindArtifactTypes      = "artifactTypes"
	OptionKindPeriods            = "periods"
	OptionKindMaterials          = "materials"
	OptionKindConditions         = "conditions"
	OptionKindSignificanceLevels = "significanceLevels"
)

// DropdownOptionsModel is the single registry row holding the allowed values
// for every artifact select input. Users can extend each list through the
// custom option, so the lists grow over time.
type DropdownOptionsModel struct {
	Id                 int       `json:"id" gorm:"primaryKey;autoIncrement"`
	ArtifactTypes      []string  `json:"artifactTypes" gorm:"serializer:json"`
	Periods            []string  `json:"periods" gorm:"serializer:json"`
	Materials          []string  `json:"materials" gorm:"serializer:json"`
	Conditions         []string  `json:"conditions" gorm:"serializer:json"`
	SignificanceLevels []string  `json:"significanceLevels" gorm:"serializer:json"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Option is a single selectable value. Custom marks the free-text catch-all
// entry that lets the user submit a value not yet in the registry; it is
// always the last element of a display list.
type Option struct {
	Value  string `json:"value"`
	Custom bool   `json:"custom"`
}
