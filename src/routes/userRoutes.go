package routes

import (
	"github.com/ArchePal/ArchePal-Backend/src/controllers"
	"github.com/ArchePal/ArchePal-Backend/src/middleware"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(router *gin.Engine, service *services.UserService) {
	userController := controllers.NewUserController(service)

	// Public routes
	router.POST("/login", userController.AuthenticateUser)
	router.POST("/register", userController.CreateUser)

	// Protected routes
	userGroup := router.Group("/users")
	userGroup.Use(middleware.AuthMiddleware())
	{
		userGroup.GET("/me", userController.GetProfile)
		userGroup.DELETE("/:id", userController.DeleteUser)
	}
}
