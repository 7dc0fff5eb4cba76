package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/dtos"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	excelize "github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Cache entry
type CacheEntry struct {
	Data      interface{}
	ExpiresAt time.Time
}

type ArtifactService struct {
	db    *gorm.DB
	cache map[string]*CacheEntry
	mutex sync.RWMutex
}

func NewArtifactService(db *gorm.DB) *ArtifactService {
	service := &ArtifactService{
		db:    db,
		cache: make(map[string]*CacheEntry),
	}

	// Clean up cache every 30 minutes
	go service.cleanupCache()

	return service
}

func (s *ArtifactService) cleanupCache() {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mutex.Lock()
		now := time.Now()
		for key, entry := range s.cache {
			if now.After(entry.ExpiresAt) {
				delete(s.cache, key)
			}
		}
		s.mutex.Unlock()
	}
}

func (s *ArtifactService) setCache(key string, data interface{}, duration time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.cache[key] = &CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(duration),
	}
}

func (s *ArtifactService) getCache(key string) (interface{}, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, exists := s.cache[key]
	if !exists || time.Now().After(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Data, true
}

func (s *ArtifactService) invalidateCache(pattern string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key := range s.cache {
		if strings.HasPrefix(key, pattern) {
			delete(s.cache, key)
		}
	}
}

// ======================= CRUD =======================

// GetAllArtifacts retrieves all Artifact records, optionally filtered by
// site. Read paths degrade to an empty list when the store is unavailable.
func (s *ArtifactService) GetAllArtifacts(siteId *int) ([]models.ArtifactModel, error) {
	artifacts := []models.ArtifactModel{}
	if s.db == nil {
		return artifacts, nil
	}

	var cacheKey string
	if siteId != nil {
		cacheKey = fmt.Sprintf("artifacts_site_%d", *siteId)
	} else {
		cacheKey = "all_artifacts"
	}

	// Try to get from cache
	if cached, found := s.getCache(cacheKey); found {
		return cached.([]models.ArtifactModel), nil
	}

	query := s.db
	if siteId != nil {
		query = query.Where("site_id = ?", *siteId)
	}

	if err := query.Find(&artifacts).Error; err != nil {
		log.Printf("Could not load artifacts: %v\n", err)
		return []models.ArtifactModel{}, nil
	}

	// Save to cache for 5 minutes
	s.setCache(cacheKey, artifacts, 5*time.Minute)

	return artifacts, nil
}

// GetArtifactByID retrieves an Artifact by ID. A missing artifact is
// (nil, nil), not an error.
func (s *ArtifactService) GetArtifactByID(id int) (*models.ArtifactModel, error) {
	if s.db == nil {
		return nil, nil
	}

	cacheKey := fmt.Sprintf("artifact_%d", id)
	if cached, found := s.getCache(cacheKey); found {
		artifact := cached.(models.ArtifactModel)
		return &artifact, nil
	}

	var artifact models.ArtifactModel
	err := s.db.First(&artifact, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.FromStore(err, "could not load artifact")
	}

	// Save to cache for 10 minutes
	s.setCache(cacheKey, artifact, 10*time.Minute)

	return &artifact, nil
}

// GetArtifactBySyncKey looks an artifact up by its offline-queue dedup key.
func (s *ArtifactService) GetArtifactBySyncKey(key string) (*models.ArtifactModel, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("store is not available", nil)
	}
	var artifact models.ArtifactModel
	err := s.db.First(&artifact, "sync_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.FromStore(err, "could not load artifact")
	}
	return &artifact, nil
}

// CreateArtifact creates a new Artifact record, resolving the denormalized
// site name from the owning site.
func (s *ArtifactService) CreateArtifact(artifact *models.ArtifactModel) (*models.ArtifactModel, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("store is not available", nil)
	}

	s.refreshSiteName(artifact)

	if err := s.db.Create(artifact).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not create artifact")
	}

	s.invalidateCache("all_artifacts")
	s.invalidateCache("artifacts_site")
	s.invalidateCache("artifact_summaries")

	return artifact, nil
}

// UpdateArtifact merges partial fields into an existing Artifact. The cached
// site name is refreshed here (and only here) when the site reference
// changes: renaming a site does not rewrite its artifacts.
func (s *ArtifactService) UpdateArtifact(id int, updatedData *models.ArtifactModel) (*models.ArtifactModel, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("store is not available", nil)
	}

	var artifact models.ArtifactModel
	if err := s.db.First(&artifact, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not load artifact")
	}

	if updatedData.SiteID != nil {
		s.refreshSiteName(updatedData)
	}

	if err := s.db.Model(&artifact).Updates(updatedData).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not update artifact")
	}

	s.invalidateCache(fmt.Sprintf("artifact_%d", id))
	s.invalidateCache("all_artifacts")
	s.invalidateCache("artifacts_site")
	s.invalidateCache("artifact_summaries")

	return &artifact, nil
}

// DeleteArtifact deletes an Artifact record. Unconditional at the service
// layer; ownership is checked by callers.
func (s *ArtifactService) DeleteArtifact(id int) error {
	if s.db == nil {
		return apperrors.Unavailable("store is not available", nil)
	}

	result := s.db.Delete(&models.ArtifactModel{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.FromStore(result.Error, "could not delete artifact")
	}

	s.invalidateCache(fmt.Sprintf("artifact_%d", id))
	s.invalidateCache("all_artifacts")
	s.invalidateCache("artifacts_site")
	s.invalidateCache("artifact_summaries")

	return nil
}

func (s *ArtifactService) refreshSiteName(artifact *models.ArtifactModel) {
	if artifact.SiteID == nil {
		artifact.SiteName = nil
		return
	}
	var site models.SiteModel
	if err := s.db.First(&site, "id = ?", *artifact.SiteID).Error; err != nil {
		log.Printf("Could not resolve site name for site %d: %v\n", *artifact.SiteID, err)
		return
	}
	artifact.SiteName = &site.Name
}

// ======================= QUERY HELPERS =======================

// GetArtifactsBySite returns the artifacts of a site ordered by creation time
// descending. The ordered query runs first; if it fails (e.g. no composite
// index provisioned) the unordered result is sorted in memory, so the helper
// never hard-fails for that reason alone.
func (s *ArtifactService) GetArtifactsBySite(siteId int) ([]models.ArtifactModel, error) {
	artifacts := []models.ArtifactModel{}
	if s.db == nil {
		return artifacts, nil
	}

	err := s.db.Where("site_id = ?", siteId).Order("created_at DESC").Find(&artifacts).Error
	if err != nil {
		artifacts = []models.ArtifactModel{}
		if err := s.db.Where("site_id = ?", siteId).Find(&artifacts).Error; err != nil {
			log.Printf("Could not load artifacts for site %d: %v\n", siteId, err)
			return []models.ArtifactModel{}, nil
		}
		sortArtifactsByCreatedDesc(artifacts)
	}
	return artifacts, nil
}

// GetArtifactsByType returns artifacts of the given type.
func (s *ArtifactService) GetArtifactsByType(artifactType string) ([]models.ArtifactModel, error) {
	artifacts := []models.ArtifactModel{}
	if s.db == nil {
		return artifacts, nil
	}
	if err := s.db.Where("type = ?", artifactType).Find(&artifacts).Error; err != nil {
		log.Printf("Could not load artifacts by type %s: %v\n", artifactType, err)
		return []models.ArtifactModel{}, nil
	}
	return artifacts, nil
}

// GetArtifactsBySignificance returns artifacts of the given significance.
func (s *ArtifactService) GetArtifactsBySignificance(significance string) ([]models.ArtifactModel, error) {
	artifacts := []models.ArtifactModel{}
	if s.db == nil {
		return artifacts, nil
	}
	if err := s.db.Where("significance = ?", significance).Find(&artifacts).Error; err != nil {
		log.Printf("Could not load artifacts by significance %s: %v\n", significance, err)
		return []models.ArtifactModel{}, nil
	}
	return artifacts, nil
}

// GetRecentArtifacts returns the n most recently created artifacts.
func (s *ArtifactService) GetRecentArtifacts(n int) ([]models.ArtifactModel, error) {
	artifacts := []models.ArtifactModel{}
	if s.db == nil {
		return artifacts, nil
	}

	err := s.db.Order("created_at DESC").Limit(n).Find(&artifacts).Error
	if err != nil {
		artifacts = []models.ArtifactModel{}
		if err := s.db.Find(&artifacts).Error; err != nil {
			log.Printf("Could not load recent artifacts: %v\n", err)
			return []models.ArtifactModel{}, nil
		}
		sortArtifactsByCreatedDesc(artifacts)
		if len(artifacts) > n {
			artifacts = artifacts[:n]
		}
	}
	return artifacts, nil
}

// SearchArtifacts filters artifacts client-side on name and description.
func (s *ArtifactService) SearchArtifacts(query string) ([]models.ArtifactModel, error) {
	artifacts, err := s.GetAllArtifacts(nil)
	if err != nil {
		return []models.ArtifactModel{}, nil
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return artifacts, nil
	}

	matched := []models.ArtifactModel{}
	for _, artifact := range artifacts {
		if strings.Contains(strings.ToLower(artifact.Name), query) {
			matched = append(matched, artifact)
			continue
		}
		if artifact.Description != nil && strings.Contains(strings.ToLower(*artifact.Description), query) {
			matched = append(matched, artifact)
		}
	}
	return matched, nil
}

// GetArtifactSummaries returns the lightweight list view. The site name
// comes from the denormalized column, so no join is needed.
func (s *ArtifactService) GetArtifactSummaries(siteId *int) ([]dtos.ArtifactSummaryDTO, error) {
	cacheKey := "artifact_summaries"
	if siteId != nil {
		cacheKey = fmt.Sprintf("artifact_summaries_site_%d", *siteId)
	}
	if cached, found := s.getCache(cacheKey); found {
		return cached.([]dtos.ArtifactSummaryDTO), nil
	}

	artifacts, err := s.GetAllArtifacts(siteId)
	if err != nil {
		return []dtos.ArtifactSummaryDTO{}, nil
	}

	summaries := make([]dtos.ArtifactSummaryDTO, 0, len(artifacts))
	for _, artifact := range artifacts {
		summary := dtos.ArtifactSummaryDTO{
			ID:           artifact.Id,
			Name:         artifact.Name,
			Type:         artifact.Type,
			Period:       artifact.Period,
			Significance: artifact.Significance,
			SiteName:     artifact.SiteName,
			ForSale:      artifact.ForSale,
		}
		if len(artifact.ImageURLs) > 0 {
			summary.ThumbnailURL = &artifact.ImageURLs[0]
		}
		summaries = append(summaries, summary)
	}

	s.setCache(cacheKey, summaries, 5*time.Minute)

	return summaries, nil
}

func sortArtifactsByCreatedDesc(artifacts []models.ArtifactModel) {
	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].CreatedAt.After(artifacts[j].CreatedAt)
	})
}

// ======================= IMAGES =======================

// AttachArtifactImage appends an uploaded image URL to the artifact.
func (s *ArtifactService) AttachArtifactImage(id int, url string) error {
	if s.db == nil {
		return apperrors.Unavailable("store is not available", nil)
	}
	var artifact models.ArtifactModel
	if err := s.db.First(&artifact, "id = ?", id).Error; err != nil {
		return apperrors.FromStore(err, "could not load artifact")
	}
	artifact.ImageURLs = append(artifact.ImageURLs, url)
	// Updates with the typed struct so the slice goes through the json
	// serializer; a raw column update would write the bare value.
	if err := s.db.Model(&artifact).Updates(models.ArtifactModel{ImageURLs: artifact.ImageURLs}).Error; err != nil {
		return apperrors.FromStore(err, "could not attach image")
	}

	s.invalidateCache(fmt.Sprintf("artifact_%d", id))
	s.invalidateCache("all_artifacts")
	s.invalidateCache("artifacts_site")
	s.invalidateCache("artifact_summaries")

	return nil
}

// SetModelImage stores the "3D image" URL and optional sale fields.
func (s *ArtifactService) SetModelImage(id int, url string, forSale bool, salePrice *float64) error {
	if s.db == nil {
		return apperrors.Unavailable("store is not available", nil)
	}
	var artifact models.ArtifactModel
	if err := s.db.First(&artifact, "id = ?", id).Error; err != nil {
		return apperrors.FromStore(err, "could not load artifact")
	}
	updates := map[string]interface{}{
		"model_image_url": url,
		"for_sale":        forSale,
		"sale_price":      salePrice,
	}
	if err := s.db.Model(&artifact).Updates(updates).Error; err != nil {
		return apperrors.FromStore(err, "could not save model image")
	}

	s.invalidateCache(fmt.Sprintf("artifact_%d", id))
	s.invalidateCache("all_artifacts")
	s.invalidateCache("artifacts_site")
	s.invalidateCache("artifact_summaries")

	return nil
}

// SetAISummary stores the analysis text produced for an artifact image.
func (s *ArtifactService) SetAISummary(id int, summary string) error {
	if s.db == nil {
		return apperrors.Unavailable("store is not available", nil)
	}
	result := s.db.Model(&models.ArtifactModel{}).Where("id = ?", id).Update("ai_summary", summary)
	if result.Error != nil {
		return apperrors.FromStore(result.Error, "could not save summary")
	}

	s.invalidateCache(fmt.Sprintf("artifact_%d", id))

	return nil
}

// ======================= CATALOG EXPORT =======================

// ExportArtifactsToExcel writes the full artifact catalog as an xlsx sheet.
func (s *ArtifactService) ExportArtifactsToExcel(w io.Writer) error {
	artifacts, err := s.GetAllArtifacts(nil)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Catalog"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Name", "Type", "Period", "Material", "Condition", "Significance", "Site", "For sale", "Sale price", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, artifact := range artifacts {
		values := []interface{}{
			artifact.Id,
			artifact.Name,
			artifact.Type,
			deref(artifact.Period),
			deref(artifact.Material),
			deref(artifact.Condition),
			deref(artifact.Significance),
			deref(artifact.SiteName),
			artifact.ForSale,
			derefFloat(artifact.SalePrice),
			artifact.CreatedAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f.Write(w)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
