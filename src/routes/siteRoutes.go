package routes

import (
	"github.com/ArchePal/ArchePal-Backend/src/controllers"
	"github.com/ArchePal/ArchePal-Backend/src/middleware"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/ArchePal/ArchePal-Backend/src/storage"
	"github.com/gin-gonic/gin"
)

func SetupSiteRoutes(router *gin.Engine, service *services.SiteService, store *storage.LocalStorage) {
	controller := controllers.NewSiteController(service, store)

	// Public reads
	router.GET("/sites", controller.GetAllSites)
	router.GET("/sites/:id", controller.GetSiteByID)

	// Protected writes
	siteGroup := router.Group("/sites")
	siteGroup.Use(middleware.AuthMiddleware())
	{
		siteGroup.POST("", controller.CreateSite)
		siteGroup.PUT("/:id", controller.UpdateSite)
		siteGroup.DELETE("/:id", controller.DeleteSite)
		siteGroup.POST("/:id/images", controller.UploadSiteImage)
	}
}
