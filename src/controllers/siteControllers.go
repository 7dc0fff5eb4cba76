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

type SiteController struct {
	service *services.SiteService
	store   *storage.LocalStorage
}

func NewSiteController(service *services.SiteService, store *storage.LocalStorage) *SiteController {
	return &SiteController{service: service, store: store}
}

func (sc *SiteController) GetAllSites(c *gin.Context) {
	if query := c.Query("q"); query != "" {
		sites, _ := sc.service.SearchSites(query)
		c.JSON(200, sites)
		return
	}
	if status := c.Query("status"); status != "" {
		sites, _ := sc.service.GetSitesByStatus(status)
		c.JSON(200, sites)
		return
	}

	sites, err := sc.service.GetAllSites()
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, sites)
}

func (sc *SiteController) GetSiteByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	site, err := sc.service.GetSiteByID(id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if site == nil {
		c.JSON(404, gin.H{"error": "Site not found"})
		return
	}
	c.JSON(200, site)
}

func (sc *SiteController) CreateSite(c *gin.Context) {
	var site models.SiteModel
	if err := c.ShouldBindJSON(&site); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(site.Name) == "" {
		c.JSON(400, gin.H{"error": "Name is required"})
		return
	}

	if userID := currentUser(c); userID != 0 {
		site.CreatedBy = &userID
	}

	created, err := sc.service.CreateSite(&site)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, created)
}

func (sc *SiteController) UpdateSite(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	var site models.SiteModel
	if err := c.ShouldBindJSON(&site); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	updated, err := sc.service.UpdateSite(id, &site)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, updated)
}

func (sc *SiteController) DeleteSite(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	// Ownership check lives here, not in the service: the caller must be the
	// creator to remove a site through the API.
	site, err := sc.service.GetSiteByID(id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if site == nil {
		c.JSON(404, gin.H{"error": "Site not found"})
		return
	}
	if site.CreatedBy != nil && *site.CreatedBy != currentUser(c) {
		c.JSON(403, gin.H{"error": "Only the creator can delete this site"})
		return
	}

	if err := sc.service.DeleteSite(id); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	// Blob deletions are best-effort: the files may already be gone.
	for _, url := range site.ImageURLs {
		if key := sc.store.KeyFromURL(url); key != "" {
			sc.store.Delete(key)
		}
	}

	c.JSON(200, gin.H{"message": "Site deleted successfully"})
}

func (sc *SiteController) UploadSiteImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	site, err := sc.service.GetSiteByID(id)
	if err != nil || site == nil {
		c.JSON(404, gin.H{"error": "Site not found"})
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

	url, err := sc.store.Upload(storage.SiteImageKey(id, header.Filename), file)
	if err != nil {
		c.JSON(500, gin.H{"error": "Could not save file"})
		return
	}

	if err := sc.service.AttachSiteImage(id, url); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"url": url})
}
