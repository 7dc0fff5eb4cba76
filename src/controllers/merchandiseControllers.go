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

type MerchandiseController struct {
	service *services.MerchandiseService
	store   *storage.LocalStorage
}

func NewMerchandiseController(service *services.MerchandiseService, store *storage.LocalStorage) *MerchandiseController {
	return &MerchandiseController{service: service, store: store}
}

func (mc *MerchandiseController) GetAllMerchandise(c *gin.Context) {
	if query := c.Query("q"); query != "" {
		items, _ := mc.service.SearchMerchandise(query)
		c.JSON(200, items)
		return
	}
	if category := c.Query("category"); category != "" {
		items, _ := mc.service.GetMerchandiseByCategory(category)
		c.JSON(200, items)
		return
	}

	items, err := mc.service.GetAllMerchandise()
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, items)
}

func (mc *MerchandiseController) GetMerchandiseByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	item, err := mc.service.GetMerchandiseByID(id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if item == nil {
		c.JSON(404, gin.H{"error": "Merchandise item not found"})
		return
	}
	c.JSON(200, item)
}

func (mc *MerchandiseController) CreateMerchandise(c *gin.Context) {
	var item models.MerchandiseModel
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(item.Name) == "" {
		c.JSON(400, gin.H{"error": "Name is required"})
		return
	}
	if item.Price < 0 {
		c.JSON(400, gin.H{"error": "Price cannot be negative"})
		return
	}

	created, err := mc.service.CreateMerchandise(&item)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, created)
}

func (mc *MerchandiseController) UpdateMerchandise(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	var item models.MerchandiseModel
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	updated, err := mc.service.UpdateMerchandise(id, &item)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, updated)
}

// Purchase decrements stock atomically; selling out mid-request answers 409.
func (mc *MerchandiseController) Purchase(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	var body struct {
		Amount int `json:"amount"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
	}
	if body.Amount == 0 {
		body.Amount = 1
	}

	if err := mc.service.Purchase(id, body.Amount); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	item, err := mc.service.GetMerchandiseByID(id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, item)
}

func (mc *MerchandiseController) UploadMerchandiseImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	item, err := mc.service.GetMerchandiseByID(id)
	if err != nil || item == nil {
		c.JSON(404, gin.H{"error": "Merchandise item not found"})
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

	url, err := mc.store.Upload(storage.MerchandiseImageKey(header.Filename), file)
	if err != nil {
		c.JSON(500, gin.H{"error": "Could not save file"})
		return
	}

	// Replacing an image leaves the old blob to best-effort cleanup.
	if item.ImageURL != nil {
		if key := mc.store.KeyFromURL(*item.ImageURL); key != "" {
			mc.store.Delete(key)
		}
	}

	if _, err := mc.service.UpdateMerchandise(id, &models.MerchandiseModel{ImageURL: &url}); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"url": url})
}

func (mc *MerchandiseController) DeleteMerchandise(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	item, err := mc.service.GetMerchandiseByID(id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if item == nil {
		c.JSON(404, gin.H{"error": "Merchandise item not found"})
		return
	}

	if err := mc.service.DeleteMerchandise(id); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	if item.ImageURL != nil {
		if key := mc.store.KeyFromURL(*item.ImageURL); key != "" {
			mc.store.Delete(key)
		}
	}

	c.JSON(200, gin.H{"message": "Merchandise item deleted successfully"})
}
