package controllers

import (
	"strconv"
	"strings"

	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/ArchePal/ArchePal-Backend/src/storage"
	"github.com/gin-gonic/gin"
)

// DiaryController serves the personal field diary. Every handler is scoped to
// the authenticated user; there is no way to read someone else's entries.
type DiaryController struct {
	service *services.DiaryService
	store   *storage.LocalStorage
}

func NewDiaryController(service *services.DiaryService, store *storage.LocalStorage) *DiaryController {
	return &DiaryController{service: service, store: store}
}

func (dc *DiaryController) GetEntries(c *gin.Context) {
	entries, err := dc.service.GetEntriesForUser(currentUser(c))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, entries)
}

func (dc *DiaryController) GetEntryByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	entry, err := dc.service.GetEntryByID(currentUser(c), id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if entry == nil {
		c.JSON(404, gin.H{"error": "Diary entry not found"})
		return
	}
	c.JSON(200, entry)
}

func (dc *DiaryController) CreateEntry(c *gin.Context) {
	var entry models.DiaryEntryModel
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(entry.Title) == "" {
		c.JSON(400, gin.H{"error": "Title is required"})
		return
	}

	entry.UserID = currentUser(c)
	if entry.UserID == 0 {
		c.JSON(401, gin.H{"error": "Authentication required"})
		return
	}

	created, err := dc.service.CreateEntry(&entry)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, created)
}

func (dc *DiaryController) UpdateEntry(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	var entry models.DiaryEntryModel
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	updated, err := dc.service.UpdateEntry(currentUser(c), id, &entry)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, updated)
}

func (dc *DiaryController) UploadEntryImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	userID := currentUser(c)
	entry, err := dc.service.GetEntryByID(userID, id)
	if err != nil || entry == nil {
		c.JSON(404, gin.H{"error": "Diary entry not found"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(400, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		c.JSON(400, gin.H{"error": "File must be an image"})
		return
	}

	url, err := dc.store.Upload(storage.DiaryImageKey(userID, id, header.Filename), file)
	if err != nil {
		c.JSON(500, gin.H{"error": "Could not save file"})
		return
	}

	if err := dc.service.AttachEntryImage(userID, id, url); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"url": url})
}

func (dc *DiaryController) DeleteEntry(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	userID := currentUser(c)
	entry, err := dc.service.GetEntryByID(userID, id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if entry == nil {
		c.JSON(404, gin.H{"error": "Diary entry not found"})
		return
	}

	if err := dc.service.DeleteEntry(userID, id); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	for _, url := range entry.ImageURLs {
		if key := dc.store.KeyFromURL(url); key != "" {
			dc.store.Delete(key)
		}
	}

	c.JSON(200, gin.H{"message": "Diary entry deleted successfully"})
}
