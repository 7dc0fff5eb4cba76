package services

import (
	"errors"
	"log"
	"strings"

	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"gorm.io/gorm"
)

type MerchandiseService struct {
	db *gorm.DB
}

// NewMerchandiseService creates a new instance of MerchandiseService
func NewMerchandiseService(db *gorm.DB) *MerchandiseService {
	return &MerchandiseService{db: db}
}

// GetAllMerchandise retrieves all Merchandise records from the database
func (s *MerchandiseService) GetAllMerchandise() ([]models.MerchandiseModel, error) {
	items := []models.MerchandiseModel{}
	if s.db == nil {
		return items, nil
	}
	if err := s.db.Find(&items).Error; err != nil {
		log.Printf("Could not load merchandise: %v\n", err)
		return []models.MerchandiseModel{}, nil
	}
	return items, nil
}

// GetMerchandiseByCategory retrieves merchandise filtered by category
func (s *MerchandiseService) GetMerchandiseByCategory(category string) ([]models.MerchandiseModel, error) {
	items := []models.MerchandiseModel{}
	if s.db == nil {
		return items, nil
	}
	if err := s.db.Where("category = ?", category).Find(&items).Error; err != nil {
		log.Printf("Could not load merchandise by category %s: %v\n", category, err)
		return []models.MerchandiseModel{}, nil
	}
	return items, nil
}

// SearchMerchandise filters merchandise client-side on name and description.
func (s *MerchandiseService) SearchMerchandise(query string) ([]models.MerchandiseModel, error) {
	items, err := s.GetAllMerchandise()
	if err != nil {
		return []models.MerchandiseModel{}, nil
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items, nil
	}

	matched := []models.MerchandiseModel{}
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			matched = append(matched, item)
			continue
		}
		if item.Description != nil && strings.Contains(strings.ToLower(*item.Description), query) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// GetMerchandiseByID retrieves a Merchandise item by ID. Missing items are
// (nil, nil), not an error.
func (s *MerchandiseService) GetMerchandiseByID(id int) (*models.MerchandiseModel, error) {
	if s.db == nil {
		return nil, nil
	}
	var item models.MerchandiseModel
	err := s.db.First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.FromStore(err, "could not load merchandise item")
	}
	return &item, nil
}

// CreateMerchandise creates a new Merchandise record in the database
func (s *MerchandiseService) CreateMerchandise(item *models.MerchandiseModel) (*models.MerchandiseModel, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("store is not available", nil)
	}
	if item.Currency == "" {
		item.Currency = "EUR"
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not create merchandise item")
	}
	return item, nil
}

// UpdateMerchandise merges partial fields into an existing Merchandise item.
func (s *MerchandiseService) UpdateMerchandise(id int, updatedData *models.MerchandiseModel) (*models.MerchandiseModel, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("store is not available", nil)
	}
	var item models.MerchandiseModel
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not load merchandise item")
	}
	if err := s.db.Model(&item).Updates(updatedData).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not update merchandise item")
	}
	return &item, nil
}

// UpdateQuantity sets the remaining quantity of an item.
func (s *MerchandiseService) UpdateQuantity(id int, quantity int) error {
	if s.db == nil {
		return apperrors.Unavailable("store is not available", nil)
	}
	if quantity < 0 {
		return apperrors.Validation("quantity cannot be negative")
	}
	result := s.db.Model(&models.MerchandiseModel{}).Where("id = ?", id).Update("quantity", quantity)
	if result.Error != nil {
		return apperrors.FromStore(result.Error, "could not update quantity")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("merchandise item not found")
	}
	return nil
}

// Purchase decrements stock atomically with a conditional update, so two
// concurrent buyers cannot oversell: the decrement only applies while enough
// stock remains.
func (s *MerchandiseService) Purchase(id int, amount int) error {
	if s.db == nil {
		return apperrors.Unavailable("store is not available", nil)
	}
	if amount <= 0 {
		return apperrors.Validation("purchase amount must be positive")
	}

	result := s.db.Model(&models.MerchandiseModel{}).
		Where("id = ? AND quantity >= ?", id, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if result.Error != nil {
		return apperrors.FromStore(result.Error, "could not complete purchase")
	}
	if result.RowsAffected == 0 {
		item, err := s.GetMerchandiseByID(id)
		if err != nil {
			return err
		}
		if item == nil {
			return apperrors.NotFound("merchandise item not found")
		}
		return apperrors.Conflict("not enough stock remaining")
	}
	return nil
}

// DeleteMerchandise deletes a Merchandise record from the database
func (s *MerchandiseService) DeleteMerchandise(id int) error {
	if s.db == nil {
		return apperrors.Unavailable("store is not available", nil)
	}
	result := s.db.Delete(&models.MerchandiseModel{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.FromStore(result.Error, "could not delete merchandise item")
	}
	return nil
}
