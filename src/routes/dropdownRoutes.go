package routes

import (
	"github.com/ArchePal/ArchePal-Backend/src/controllers"
	"github.com/ArchePal/ArchePal-Backend/src/middleware"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupDropdownRoutes(router *gin.Engine, service *services.DropdownService) {
	controller := controllers.NewDropdownController(service)

	// Public reads: the form selects need options before login
	router.GET("/dropdown-options", controller.GetOptions)
	router.GET("/dropdown-options/:kind", controller.GetDisplayOptions)

	// Extending a list requires authentication
	optionGroup := router.Group("/dropdown-options")
	optionGroup.Use(middleware.AuthMiddleware())
	{
		optionGroup.POST("/:kind", controller.AddOptionValue)
	}
}
