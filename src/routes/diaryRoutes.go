package routes

import (
	"github.com/ArchePal/ArchePal-Backend/src/controllers"
	"github.com/ArchePal/ArchePal-Backend/src/middleware"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/ArchePal/ArchePal-Backend/src/storage"
	"github.com/gin-gonic/gin"
)

func SetupDiaryRoutes(router *gin.Engine, service *services.DiaryService, store *storage.LocalStorage) {
	controller := controllers.NewDiaryController(service, store)

	// The diary is entirely private; every route requires authentication.
	diaryGroup := router.Group("/diary")
	diaryGroup.Use(middleware.AuthMiddleware())
	{
		diaryGroup.GET("", controller.GetEntries)
		diaryGroup.GET("/:id", controller.GetEntryByID)
		diaryGroup.POST("", controller.CreateEntry)
		diaryGroup.PUT("/:id", controller.UpdateEntry)
		diaryGroup.DELETE("/:id", controller.DeleteEntry)
		diaryGroup.POST("/:id/images", controller.UploadEntryImage)
	}
}
