package controllers

import (
	"io"
	"strconv"
	"strings"

	"github.com/ArchePal/ArchePal-Backend/src/analysis"
	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"github.com/ArchePal/ArchePal-Backend/src/offline"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/ArchePal/ArchePal-Backend/src/storage"
	"github.com/ArchePal/ArchePal-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

type ArtifactController struct {
	service  *services.ArtifactService
	store    *storage.LocalStorage
	queue    *offline.Queue
	analyzer *analysis.Client
	drive    *utils.DriveClient
}

func NewArtifactController(service *services.ArtifactService, store *storage.LocalStorage, queue *offline.Queue, analyzer *analysis.Client, driveClient *utils.DriveClient) *ArtifactController {
	return &ArtifactController{
		service:  service,
		store:    store,
		queue:    queue,
		analyzer: analyzer,
		drive:    driveClient,
	}
}

func (ac *ArtifactController) GetAllArtifacts(c *gin.Context) {
	// Optional filters: ?siteId= / ?type= / ?significance= / ?q= / ?recent=
	siteIdStr := c.Query("siteId")
	var siteId *int
	if siteIdStr != "" {
		parsedId, err := strconv.Atoi(siteIdStr)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid siteId parameter"})
			return
		}
		siteId = &parsedId
	}

	switch {
	case c.Query("q") != "":
		artifacts, _ := ac.service.SearchArtifacts(c.Query("q"))
		c.JSON(200, artifacts)
	case c.Query("type") != "":
		artifacts, _ := ac.service.GetArtifactsByType(c.Query("type"))
		c.JSON(200, artifacts)
	case c.Query("significance") != "":
		artifacts, _ := ac.service.GetArtifactsBySignificance(c.Query("significance"))
		c.JSON(200, artifacts)
	case c.Query("recent") != "":
		n, err := strconv.Atoi(c.Query("recent"))
		if err != nil || n <= 0 {
			c.JSON(400, gin.H{"error": "Invalid recent parameter"})
			return
		}
		artifacts, _ := ac.service.GetRecentArtifacts(n)
		c.JSON(200, artifacts)
	case siteId != nil:
		artifacts, _ := ac.service.GetArtifactsBySite(*siteId)
		c.JSON(200, artifacts)
	default:
		artifacts, _ := ac.service.GetAllArtifacts(nil)
		c.JSON(200, artifacts)
	}
}

func (ac *ArtifactController) GetArtifactSummaries(c *gin.Context) {
	siteIdStr := c.Query("siteId")
	var siteId *int
	if siteIdStr != "" {
		parsedId, err := strconv.Atoi(siteIdStr)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid siteId parameter"})
			return
		}
		siteId = &parsedId
	}

	summaries, err := ac.service.GetArtifactSummaries(siteId)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, summaries)
}

func (ac *ArtifactController) GetArtifactByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	artifact, err := ac.service.GetArtifactByID(id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if artifact == nil {
		c.JSON(404, gin.H{"error": "Artifact not found"})
		return
	}
	c.JSON(200, artifact)
}

func (ac *ArtifactController) CreateArtifact(c *gin.Context) {
	var artifact models.ArtifactModel
	if err := c.ShouldBindJSON(&artifact); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(artifact.Name) == "" {
		c.JSON(400, gin.H{"error": "Name is required"})
		return
	}
	if strings.TrimSpace(artifact.Type) == "" {
		c.JSON(400, gin.H{"error": "Type is required"})
		return
	}

	if userID := currentUser(c); userID != 0 {
		artifact.CreatedBy = &userID
	}

	created, err := ac.service.CreateArtifact(&artifact)
	if err != nil {
		// An unreachable store queues the creation for a later sync instead
		// of failing the request.
		if apperrors.IsUnavailable(err) && ac.queue != nil {
			key, qerr := ac.queue.Enqueue(offline.PayloadFromArtifact(&artifact), "")
			if qerr != nil {
				c.JSON(503, gin.H{"error": "Store unavailable and artifact could not be queued"})
				return
			}
			c.JSON(202, gin.H{"queued": true, "key": key})
			return
		}
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, created)
}

func (ac *ArtifactController) UpdateArtifact(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	var artifact models.ArtifactModel
	if err := c.ShouldBindJSON(&artifact); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	updated, err := ac.service.UpdateArtifact(id, &artifact)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, updated)
}

func (ac *ArtifactController) DeleteArtifact(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	artifact, err := ac.service.GetArtifactByID(id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if artifact == nil {
		c.JSON(404, gin.H{"error": "Artifact not found"})
		return
	}
	if artifact.CreatedBy != nil && *artifact.CreatedBy != currentUser(c) {
		c.JSON(403, gin.H{"error": "Only the creator can delete this artifact"})
		return
	}

	if err := ac.service.DeleteArtifact(id); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	// Best-effort blob cleanup
	for _, url := range artifact.ImageURLs {
		if key := ac.store.KeyFromURL(url); key != "" {
			ac.store.Delete(key)
		}
	}
	if artifact.ModelImageURL != nil {
		if key := ac.store.KeyFromURL(*artifact.ModelImageURL); key != "" {
			ac.store.Delete(key)
		}
	}

	c.JSON(200, gin.H{"message": "Artifact deleted successfully"})
}

// ======================= IMAGES =======================

func (ac *ArtifactController) UploadArtifactImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	artifact, err := ac.service.GetArtifactByID(id)
	if err != nil || artifact == nil {
		c.JSON(404, gin.H{"error": "Artifact not found"})
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

	url, err := ac.store.Upload(storage.ArtifactImageKey(id, header.Filename), file)
	if err != nil {
		c.JSON(500, gin.H{"error": "Could not save file"})
		return
	}

	if err := ac.service.AttachArtifactImage(id, url); err != nil {
		// The blob made it to storage; the document update is the part that
		// failed. Partial success, surfaced as a warning.
		c.JSON(200, gin.H{"url": url, "warning": "Image stored but not attached: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"url": url})
}

func (ac *ArtifactController) UploadModelImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	artifact, err := ac.service.GetArtifactByID(id)
	if err != nil || artifact == nil {
		c.JSON(404, gin.H{"error": "Artifact not found"})
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

	forSale := c.PostForm("forSale") == "true"
	var salePrice *float64
	if priceStr := c.PostForm("salePrice"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid salePrice"})
			return
		}
		salePrice = &price
	}

	url, err := ac.store.Upload(storage.ArtifactModelImageKey(id, header.Filename), file)
	if err != nil {
		c.JSON(500, gin.H{"error": "Could not save file"})
		return
	}

	if err := ac.service.SetModelImage(id, url, forSale, salePrice); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"url": url})
}

// AnalyzeImage runs the third-party image analysis on an uploaded image and
// stores the result on the artifact. Analysis never fails the request: any
// endpoint problem yields the fallback text.
func (ac *ArtifactController) AnalyzeImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	artifact, err := ac.service.GetArtifactByID(id)
	if err != nil || artifact == nil {
		c.JSON(404, gin.H{"error": "Artifact not found"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(400, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(400, gin.H{"error": "Could not read file"})
		return
	}

	summary := ac.analyzer.AnalyzeImage(data, header.Header.Get("Content-Type"))

	if err := ac.service.SetAISummary(id, summary); err != nil {
		c.JSON(200, gin.H{"summary": summary, "warning": "Summary was not saved: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"summary": summary})
}

// ImportDriveImage downloads an image shared through a Google Drive link and
// attaches it to the artifact.
func (ac *ArtifactController) ImportDriveImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	artifact, err := ac.service.GetArtifactByID(id)
	if err != nil || artifact == nil {
		c.JSON(404, gin.H{"error": "Artifact not found"})
		return
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.URL == "" {
		c.JSON(400, gin.H{"error": "url is required"})
		return
	}
	if !utils.IsGoogleDriveURL(body.URL) {
		c.JSON(400, gin.H{"error": "Not a Google Drive URL"})
		return
	}

	fileID, err := utils.ExtractFileIDFromURL(body.URL)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	reader, filename, err := ac.drive.DownloadFile(fileID)
	if err != nil {
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}
	defer reader.Close()

	url, err := ac.store.Upload(storage.ArtifactImageKey(id, filename), reader)
	if err != nil {
		c.JSON(500, gin.H{"error": "Could not save file"})
		return
	}

	if err := ac.service.AttachArtifactImage(id, url); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"url": url})
}

// ======================= EXPORT =======================

func (ac *ArtifactController) ExportArtifacts(c *gin.Context) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="artifact-catalog.xlsx"`)

	if err := ac.service.ExportArtifactsToExcel(c.Writer); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
}
