package routes

import (
	"github.com/ArchePal/ArchePal-Backend/src/controllers"
	"github.com/ArchePal/ArchePal-Backend/src/middleware"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/ArchePal/ArchePal-Backend/src/storage"
	"github.com/gin-gonic/gin"
)

func SetupArticleRoutes(router *gin.Engine, service *services.ArticleService, userService *services.UserService, store *storage.LocalStorage) {
	controller := controllers.NewArticleController(service, userService, store)

	// Public reads and engagement counters
	router.GET("/articles", controller.GetAllArticles)
	router.GET("/articles/:id", controller.GetArticleByID)
	router.POST("/articles/:id/view", controller.IncrementViews)

	// Protected routes
	articleGroup := router.Group("/articles")
	articleGroup.Use(middleware.AuthMiddleware())
	{
		articleGroup.POST("", controller.CreateArticle)
		articleGroup.PUT("/:id", controller.UpdateArticle)
		articleGroup.DELETE("/:id", controller.DeleteArticle)
		articleGroup.POST("/:id/like", controller.IncrementLikes)
		articleGroup.POST("/:id/cover", controller.UploadCoverImage)
	}
}
