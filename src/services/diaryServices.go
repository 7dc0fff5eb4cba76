package services

import (
	"errors"
	"log"
	"sort"

	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"gorm.io/gorm"
)

type DiaryService struct {
	db *gorm.DB
}

// NewDiaryService creates a new instance of DiaryService
func NewDiaryService(db *gorm.DB) *DiaryService {
	return &DiaryService{db: db}
}

// GetEntriesForUser retrieves the diary entries of one user, most recent
// entry date first. Diary entries are private: every accessor is scoped by
// user id.
func (s *DiaryService) GetEntriesForUser(userID int) ([]models.DiaryEntryModel, error) {
	entries := []models.DiaryEntryModel{}
	if s.db == nil {
		return entries, nil
	}

	err := s.db.Where("user_id = ?", userID).Order("entry_date DESC").Find(&entries).Error
	if err != nil {
		entries = []models.DiaryEntryModel{}
		if err := s.db.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
			log.Printf("Could not load diary entries for user %d: %v\n", userID, err)
			return []models.DiaryEntryModel{}, nil
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].EntryDate.After(entries[j].EntryDate)
		})
	}
	return entries, nil
}

// GetEntryByID retrieves a single entry of a user. Missing entries and
// entries belonging to someone else are both (nil, nil).
func (s *DiaryService) GetEntryByID(userID, id int) (*models.DiaryEntryModel, error) {
	if s.db == nil {
		return nil, nil
	}
	var entry models.DiaryEntryModel
	err := s.db.First(&entry, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.FromStore(err, "could not load diary entry")
	}
	return &entry, nil
}

// CreateEntry creates a new diary entry for the user.
func (s *DiaryService) CreateEntry(entry *models.DiaryEntryModel) (*models.DiaryEntryModel, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("store is not available", nil)
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not create diary entry")
	}
	return entry, nil
}

// UpdateEntry merges partial fields into one of the user's entries.
func (s *DiaryService) UpdateEntry(userID, id int, updatedData *models.DiaryEntryModel) (*models.DiaryEntryModel, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("store is not available", nil)
	}
	var entry models.DiaryEntryModel
	if err := s.db.First(&entry, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not load diary entry")
	}
	if err := s.db.Model(&entry).Updates(updatedData).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not update diary entry")
	}
	return &entry, nil
}

// AttachEntryImage appends an uploaded image URL to one of the user's entries.
func (s *DiaryService) AttachEntryImage(userID, id int, url string) error {
	if s.db == nil {
		return apperrors.Unavailable("store is not available", nil)
	}
	var entry models.DiaryEntryModel
	if err := s.db.First(&entry, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return apperrors.FromStore(err, "could not load diary entry")
	}
	entry.ImageURLs = append(entry.ImageURLs, url)
	// Updates with the typed struct so the slice goes through the json
	// serializer; a raw column update would write the bare value.
	if err := s.db.Model(&entry).Updates(models.DiaryEntryModel{ImageURLs: entry.ImageURLs}).Error; err != nil {
		return apperrors.FromStore(err, "could not attach image")
	}
	return nil
}

// DeleteEntry deletes one of the user's entries.
func (s *DiaryService) DeleteEntry(userID, id int) error {
	if s.db == nil {
		return apperrors.Unavailable("store is not available", nil)
	}
	result := s.db.Delete(&models.DiaryEntryModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return apperrors.FromStore(result.Error, "could not delete diary entry")
	}
	return nil
}
