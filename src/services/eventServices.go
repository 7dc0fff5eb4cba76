package services

import (
	"errors"
	"log"
	"sort"
	"time"

	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"gorm.io/gorm"
)

type EventService struct {
	db *gorm.DB
}

// NewEventService creates a new instance of EventService
func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// GetAllEvents retrieves all Event records from the database
func (s *EventService) GetAllEvents() ([]models.EventModel, error) {
	events := []models.EventModel{}
	if s.db == nil {
		return events, nil
	}
	if err := s.db.Find(&events).Error; err != nil {
		log.Printf("Could not load events: %v\n", err)
		return []models.EventModel{}, nil
	}
	return events, nil
}

// GetEventsByCategory retrieves events of a category ordered by date. Falls
// back to an in-memory sort when the ordered query fails.
func (s *EventService) GetEventsByCategory(category string) ([]models.EventModel, error) {
	events := []models.EventModel{}
	if s.db == nil {
		return events, nil
	}

	err := s.db.Where("category = ?", category).Order("date ASC").Find(&events).Error
	if err != nil {
		events = []models.EventModel{}
		if err := s.db.Where("category = ?", category).Find(&events).Error; err != nil {
			log.Printf("Could not load events by category %s: %v\n", category, err)
			return []models.EventModel{}, nil
		}
		sort.Slice(events, func(i, j int) bool {
			return events[i].Date.Before(events[j].Date)
		})
	}
	return events, nil
}

// GetUpcomingEvents retrieves events dated today or later, soonest first.
func (s *EventService) GetUpcomingEvents() ([]models.EventModel, error) {
	events := []models.EventModel{}
	if s.db == nil {
		return events, nil
	}

	today := time.Now().Truncate(24 * time.Hour)
	err := s.db.Where("date >= ?", today).Order("date ASC").Find(&events).Error
	if err != nil {
		events = []models.EventModel{}
		if err := s.db.Where("date >= ?", today).Find(&events).Error; err != nil {
			log.Printf("Could not load upcoming events: %v\n", err)
			return []models.EventModel{}, nil
		}
		sort.Slice(events, func(i, j int) bool {
			return events[i].Date.Before(events[j].Date)
		})
	}
	return events, nil
}

// GetEventByID retrieves an Event by ID. Missing events are (nil, nil).
func (s *EventService) GetEventByID(id int) (*models.EventModel, error) {
	if s.db == nil {
		return nil, nil
	}
	var event models.EventModel
	err := s.db.First(&event, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.FromStore(err, "could not load event")
	}
	return &event, nil
}

// CreateEvent creates a new Event record in the database
func (s *EventService) CreateEvent(event *models.EventModel) (*models.EventModel, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("store is not available", nil)
	}
	if err := s.db.Create(event).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not create event")
	}
	return event, nil
}

// UpdateEvent merges partial fields into an existing Event
func (s *EventService) UpdateEvent(id int, updatedData *models.EventModel) (*models.EventModel, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("store is not available", nil)
	}
	var event models.EventModel
	if err := s.db.First(&event, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not load event")
	}
	if err := s.db.Model(&event).Updates(updatedData).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not update event")
	}
	return &event, nil
}

// DeleteEvent deletes an Event record from the database
func (s *EventService) DeleteEvent(id int) error {
	if s.db == nil {
		return apperrors.Unavailable("store is not available", nil)
	}
	result := s.db.Delete(&models.EventModel{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.FromStore(result.Error, "could not delete event")
	}
	return nil
}
