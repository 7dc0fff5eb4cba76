package routes

import (
	"github.com/ArchePal/ArchePal-Backend/src/controllers"
	"github.com/ArchePal/ArchePal-Backend/src/middleware"
	"github.com/ArchePal/ArchePal-Backend/src/offline"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/ArchePal/ArchePal-Backend/src/storage"
	"github.com/gin-gonic/gin"
)

func SetupSyncRoutes(router *gin.Engine, queue *offline.Queue, service *services.ArtifactService, store *storage.LocalStorage, cacheDir string) {
	syncController := controllers.NewSyncController(queue, service, store, cacheDir)

	offlineGroup := router.Group("/offline")
	offlineGroup.Use(middleware.AuthMiddleware())
	{
		offlineGroup.POST("/artifacts", syncController.EnqueueArtifact)
		offlineGroup.POST("/sync", syncController.SyncOfflineData)
		offlineGroup.GET("/queue", syncController.GetQueueStatus)
	}
}
