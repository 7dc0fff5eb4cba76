package routes

import (
	"github.com/ArchePal/ArchePal-Backend/src/controllers"
	"github.com/ArchePal/ArchePal-Backend/src/middleware"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/ArchePal/ArchePal-Backend/src/storage"
	"github.com/gin-gonic/gin"
)

func SetupMerchandiseRoutes(router *gin.Engine, service *services.MerchandiseService, store *storage.LocalStorage) {
	controller := controllers.NewMerchandiseController(service, store)

	// Public reads
	router.GET("/merchandise", controller.GetAllMerchandise)
	router.GET("/merchandise/:id", controller.GetMerchandiseByID)

	// Protected routes
	merchGroup := router.Group("/merchandise")
	merchGroup.Use(middleware.AuthMiddleware())
	{
		merchGroup.POST("", controller.CreateMerchandise)
		merchGroup.PUT("/:id", controller.UpdateMerchandise)
		merchGroup.DELETE("/:id", controller.DeleteMerchandise)
		merchGroup.POST("/:id/purchase", controller.Purchase)
		merchGroup.POST("/:id/image", controller.UploadMerchandiseImage)
	}
}
