package routes

import (
	"github.com/ArchePal/ArchePal-Backend/src/analysis"
	"github.com/ArchePal/ArchePal-Backend/src/controllers"
	"github.com/ArchePal/ArchePal-Backend/src/middleware"
	"github.com/ArchePal/ArchePal-Backend/src/offline"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/ArchePal/ArchePal-Backend/src/storage"
	"github.com/ArchePal/ArchePal-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

func SetupArtifactRoutes(router *gin.Engine, service *services.ArtifactService, store *storage.LocalStorage, queue *offline.Queue, analyzer *analysis.Client, driveClient *utils.DriveClient) {
	controller := controllers.NewArtifactController(service, store, queue, analyzer, driveClient)

	// Public reads
	router.GET("/artifacts", controller.GetAllArtifacts)
	router.GET("/artifacts/summaries", controller.GetArtifactSummaries)
	router.GET("/artifacts/:id", controller.GetArtifactByID)

	// Protected routes
	artifactGroup := router.Group("/artifacts")
	artifactGroup.Use(middleware.AuthMiddleware())
	{
		// CRUD
		artifactGroup.POST("", controller.CreateArtifact)
		artifactGroup.PUT("/:id", controller.UpdateArtifact)
		artifactGroup.DELETE("/:id", controller.DeleteArtifact)

		// Images
		artifactGroup.POST("/:id/images", controller.UploadArtifactImage)
		artifactGroup.POST("/:id/model-image", controller.UploadModelImage)
		artifactGroup.POST("/:id/analyze-image", controller.AnalyzeImage)
		artifactGroup.POST("/:id/import-drive-image", controller.ImportDriveImage)

		// Catalog export
		artifactGroup.GET("/export", controller.ExportArtifacts)
	}
}
