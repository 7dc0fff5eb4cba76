package controllers

import (
	"strconv"
	"strings"

	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type EventController struct {
	service *services.EventService
}

func NewEventController(service *services.EventService) *EventController {
	return &EventController{service: service}
}

func (ec *EventController) GetAllEvents(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		events, _ := ec.service.GetEventsByCategory(category)
		c.JSON(200, events)
		return
	}
	if c.Query("upcoming") == "true" {
		events, _ := ec.service.GetUpcomingEvents()
		c.JSON(200, events)
		return
	}

	events, err := ec.service.GetAllEvents()
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, events)
}

func (ec *EventController) GetEventByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	event, err := ec.service.GetEventByID(id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if event == nil {
		c.JSON(404, gin.H{"error": "Event not found"})
		return
	}
	c.JSON(200, event)
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	var event models.EventModel
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(event.Title) == "" {
		c.JSON(400, gin.H{"error": "Title is required"})
		return
	}
	if event.Date.IsZero() {
		c.JSON(400, gin.H{"error": "Date is required"})
		return
	}

	if userID := currentUser(c); userID != 0 {
		event.CreatedBy = &userID
	}

	created, err := ec.service.CreateEvent(&event)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, created)
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	var event models.EventModel
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	updated, err := ec.service.UpdateEvent(id, &event)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, updated)
}

func (ec *EventController) DeleteEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	event, err := ec.service.GetEventByID(id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if event == nil {
		c.JSON(404, gin.H{"error": "Event not found"})
		return
	}
	if event.CreatedBy != nil && *event.CreatedBy != currentUser(c) {
		c.JSON(403, gin.H{"error": "Only the creator can delete this event"})
		return
	}

	if err := ec.service.DeleteEvent(id); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Event deleted successfully"})
}
