package controllers

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ArchePal/ArchePal-Backend/src/models"
	"github.com/ArchePal/ArchePal-Backend/src/offline"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/ArchePal/ArchePal-Backend/src/storage"
	"github.com/gin-gonic/gin"
)

// SyncController exposes the offline artifact queue: enqueueing a creation
// (with an optional image cached locally) and draining the queue against the
// store.
type SyncController struct {
	queue    *offline.Queue
	service  *services.ArtifactService
	store    *storage.LocalStorage
	cacheDir string
}

func NewSyncController(queue *offline.Queue, service *services.ArtifactService, store *storage.LocalStorage, cacheDir string) *SyncController {
	return &SyncController{
		queue:    queue,
		service:  service,
		store:    store,
		cacheDir: cacheDir,
	}
}

// EnqueueArtifact accepts a multipart form with an "artifact" JSON part and
// an optional "image" file. The image is cached locally next to the queue and
// uploaded during the next sync.
func (sc *SyncController) EnqueueArtifact(c *gin.Context) {
	payloadStr := c.PostForm("artifact")
	if payloadStr == "" {
		c.JSON(400, gin.H{"error": "artifact payload is required"})
		return
	}

	var artifact models.ArtifactModel
	if err := json.Unmarshal([]byte(payloadStr), &artifact); err != nil {
		c.JSON(400, gin.H{"error": "Invalid artifact payload: " + err.Error()})
		return
	}
	if strings.TrimSpace(artifact.Name) == "" {
		c.JSON(400, gin.H{"error": "Name is required"})
		return
	}

	if userID := currentUser(c); userID != 0 {
		artifact.CreatedBy = &userID
	}

	imagePath := ""
	if file, err := c.FormFile("image"); err == nil {
		imagePath = filepath.Join(sc.cacheDir, fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename)))
		if err := c.SaveUploadedFile(file, imagePath); err != nil {
			c.JSON(500, gin.H{"error": "Could not cache image"})
			return
		}
	}

	key, err := sc.queue.Enqueue(offline.PayloadFromArtifact(&artifact), imagePath)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(202, gin.H{"queued": true, "key": key})
}

// SyncOfflineData drains the queue. Safe to call repeatedly; a drain already
// in progress makes this a no-op.
func (sc *SyncController) SyncOfflineData(c *gin.Context) {
	result, err := sc.queue.Sync(sc.service, sc.store)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, result)
}

// GetQueueStatus reports how many entries are waiting for the next sync.
func (sc *SyncController) GetQueueStatus(c *gin.Context) {
	n, err := sc.queue.Len()
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"pending": n})
}
