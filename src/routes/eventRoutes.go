package routes

import (
	"github.com/ArchePal/ArchePal-Backend/src/controllers"
	"github.com/ArchePal/ArchePal-Backend/src/middleware"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.Engine, service *services.EventService) {
	controller := controllers.NewEventController(service)

	// Public reads
	router.GET("/events", controller.GetAllEvents)
	router.GET("/events/:id", controller.GetEventByID)

	// Protected writes
	eventGroup := router.Group("/events")
	eventGroup.Use(middleware.AuthMiddleware())
	{
		eventGroup.POST("", controller.CreateEvent)
		eventGroup.PUT("/:id", controller.UpdateEvent)
		eventGroup.DELETE("/:id", controller.DeleteEvent)
	}
}
