package services

import (
	"errors"
	"log"
	"sort"
	"strings"

	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"gorm.io/gorm"
)

type SiteService struct {
	db *gorm.DB
}

// NewSiteService creates a new instance of SiteService
func NewSiteService(db *gorm.DB) *SiteService {
	return &SiteService{db: db}
}

// GetAllSites retrieves all Site records. Read paths never fail hard: when
// the store is unavailable an empty list is returned so pages keep rendering.
func (s *SiteService) GetAllSites() ([]models.SiteModel, error) {
	sites := []models.SiteModel{}
	if s.db == nil {
		return sites, nil
	}
	if err := s.db.Preload("Artifacts").Find(&sites).Error; err != nil {
		log.Printf("Could not load sites: %v\n", err)
		return []models.SiteModel{}, nil
	}
	return sites, nil
}

// GetSitesByStatus retrieves sites with the given status, newest first. The
// ordered query is attempted first; if it fails the unordered result is
// sorted in memory so the call never fails just because an index is missing.
func (s *SiteService) GetSitesByStatus(status string) ([]models.SiteModel, error) {
	sites := []models.SiteModel{}
	if s.db == nil {
		return sites, nil
	}

	err := s.db.Where("status = ?", status).Order("created_at DESC").Find(&sites).Error
	if err != nil {
		sites = []models.SiteModel{}
		if err := s.db.Where("status = ?", status).Find(&sites).Error; err != nil {
			log.Printf("Could not load sites by status %s: %v\n", status, err)
			return []models.SiteModel{}, nil
		}
		sort.Slice(sites, func(i, j int) bool {
			return sites[i].CreatedAt.After(sites[j].CreatedAt)
		})
	}
	return sites, nil
}

// SearchSites filters sites client-side on name and description, since the
// store has no full-text index.
func (s *SiteService) SearchSites(query string) ([]models.SiteModel, error) {
	sites, err := s.GetAllSites()
	if err != nil {
		return []models.SiteModel{}, nil
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return sites, nil
	}

	matched := []models.SiteModel{}
	for _, site := range sites {
		if strings.Contains(strings.ToLower(site.Name), query) {
			matched = append(matched, site)
			continue
		}
		if site.Description != nil && strings.Contains(strings.ToLower(*site.Description), query) {
			matched = append(matched, site)
		}
	}
	return matched, nil
}

// GetSiteByID retrieves a Site by ID. A missing site is (nil, nil), not an
// error.
func (s *SiteService) GetSiteByID(id int) (*models.SiteModel, error) {
	if s.db == nil {
		return nil, nil
	}
	var site models.SiteModel
	err := s.db.Preload("Artifacts").First(&site, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.FromStore(err, "could not load site")
	}
	return &site, nil
}

// CreateSite creates a new Site record in the database
func (s *SiteService) CreateSite(site *models.SiteModel) (*models.SiteModel, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("store is not available", nil)
	}
	if site.Status == "" {
		site.Status = models.SiteStatusActive
	}
	if !models.IsValidSiteStatus(site.Status) {
		return nil, apperrors.Validation("status must be active, inactive or archived")
	}
	if err := s.db.Create(site).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not create site")
	}
	return site, nil
}

// UpdateSite merges partial fields into an existing Site and refreshes its
// update timestamp.
func (s *SiteService) UpdateSite(id int, updatedData *models.SiteModel) (*models.SiteModel, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("store is not available", nil)
	}
	if updatedData.Status != "" && !models.IsValidSiteStatus(updatedData.Status) {
		return nil, apperrors.Validation("status must be active, inactive or archived")
	}

	var site models.SiteModel
	if err := s.db.First(&site, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not load site")
	}
	if err := s.db.Model(&site).Updates(updatedData).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not update site")
	}
	return &site, nil
}

// AttachSiteImage appends an uploaded image URL to the site.
func (s *SiteService) AttachSiteImage(id int, url string) error {
	if s.db == nil {
		return apperrors.Unavailable("store is not available", nil)
	}
	var site models.SiteModel
	if err := s.db.First(&site, "id = ?", id).Error; err != nil {
		return apperrors.FromStore(err, "could not load site")
	}
	site.ImageURLs = append(site.ImageURLs, url)
	// Updates with the typed struct so the slice goes through the json
	// serializer; a raw column update would write the bare value.
	if err := s.db.Model(&site).Updates(models.SiteModel{ImageURLs: site.ImageURLs}).Error; err != nil {
		return apperrors.FromStore(err, "could not attach image")
	}
	return nil
}

// DeleteSite deletes a Site record from the database. Deletion is
// unconditional at the service layer; ownership is checked by callers.
func (s *SiteService) DeleteSite(id int) error {
	if s.db == nil {
		return apperrors.Unavailable("store is not available", nil)
	}
	result := s.db.Delete(&models.SiteModel{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.FromStore(result.Error, "could not delete site")
	}
	return nil
}
