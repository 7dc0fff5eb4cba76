package services

import (
	"errors"
	"strings"

	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"gorm.io/gorm"
)

// Default option lists used to lazily initialize the registry document the
// first time it is read.
var defaultOptions = models.DropdownOptionsModel{
	ArtifactTypes:      []string{"Pottery", "Tool", "Weapon", "Jewelry", "Coin", "Sculpture"},
	Periods:            []string{"Paleolithic", "Neolithic", "Bronze Age", "Iron Age", "Classical", "Medieval"},
	Materials:          []string{"Ceramic", "Stone", "Bronze", "Iron", "Gold", "Bone", "Glass"},
	Conditions:         []string{"Excellent", "Good", "Fair", "Poor", "Fragmentary"},
	SignificanceLevels: []string{"Low", "Medium", "High", "Exceptional"},
}

type DropdownService struct {
	db *gorm.DB
}

// NewDropdownService creates a new instance of DropdownService
func NewDropdownService(db *gorm.DB) *DropdownService {
	return &DropdownService{db: db}
}

// GetOptions returns the registry document, creating it with defaults when it
// does not exist yet.
func (s *DropdownService) GetOptions() (*models.DropdownOptionsModel, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("store is not available", nil)
	}

	var options models.DropdownOptionsModel
	err := s.db.First(&options).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		options = defaultOptions
		if err := s.db.Create(&options).Error; err != nil {
			return nil, apperrors.FromStore(err, "could not initialize dropdown options")
		}
		return &options, nil
	}
	if err != nil {
		return nil, apperrors.FromStore(err, "could not load dropdown options")
	}
	return &options, nil
}

// GetDisplayOptions returns the list for one kind shaped for a select input:
// every known value in registry order, with the single custom catch-all entry
// always last.
func (s *DropdownService) GetDisplayOptions(kind string) ([]models.Option, error) {
	options, err := s.GetOptions()
	if err != nil {
		return nil, err
	}

	values, err := listForKind(options, kind)
	if err != nil {
		return nil, err
	}

	display := make([]models.Option, 0, len(*values)+1)
	for _, v := range *values {
		display = append(display, models.Option{Value: v})
	}
	display = append(display, models.Option{Value: "Other", Custom: true})
	return display, nil
}

// AddOptionValue appends a user-submitted value to the list for kind. The
// call is idempotent: a value already present (exact match, no case-folding)
// is left alone, so "Bronze" and "bronze" can coexist but a repeat submission
// cannot duplicate an entry.
func (s *DropdownService) AddOptionValue(kind, value string) (*models.DropdownOptionsModel, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, apperrors.Validation("option value cannot be empty")
	}

	options, err := s.GetOptions()
	if err != nil {
		return nil, err
	}

	values, err := listForKind(options, kind)
	if err != nil {
		return nil, err
	}

	for _, existing := range *values {
		if existing == value {
			return options, nil
		}
	}
	*values = append(*values, value)

	if err := s.db.Save(options).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not save dropdown options")
	}
	return options, nil
}

func listForKind(options *models.DropdownOptionsModel, kind string) (*[]string, error) {
	switch kind {
	case models.OptionKindArtifactTypes:
		return &options.ArtifactTypes, nil
	case models.OptionKindPeriods:
		return &options.Periods, nil
	case models.OptionKindMaterials:
		return &options.Materials, nil
	case models.OptionKindConditions:
		return &options.Conditions, nil
	case models.OptionKindSignificanceLevels:
		return &options.SignificanceLevels, nil
	}
	return nil, apperrors.Validation("unknown option kind: " + kind)
}
