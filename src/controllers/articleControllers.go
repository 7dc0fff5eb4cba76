package controllers

import (
	"strconv"
	"strings"

	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/ArchePal/ArchePal-Backend/src/storage"
	"github.com/gin-gonic/gin"
)

type ArticleController struct {
	service     *services.ArticleService
	userService *services.UserService
	store       *storage.LocalStorage
}

func NewArticleController(service *services.ArticleService, userService *services.UserService, store *storage.LocalStorage) *ArticleController {
	return &ArticleController{service: service, userService: userService, store: store}
}

func (ac *ArticleController) GetAllArticles(c *gin.Context) {
	switch {
	case c.Query("q") != "":
		articles, _ := ac.service.SearchArticles(c.Query("q"))
		c.JSON(200, articles)
	case c.Query("category") != "":
		articles, _ := ac.service.GetArticlesByCategory(c.Query("category"))
		c.JSON(200, articles)
	case c.Query("featured") == "true":
		articles, _ := ac.service.GetFeaturedArticles()
		c.JSON(200, articles)
	case c.Query("recent") != "":
		n, err := strconv.Atoi(c.Query("recent"))
		if err != nil || n <= 0 {
			c.JSON(400, gin.H{"error": "Invalid recent parameter"})
			return
		}
		articles, _ := ac.service.GetRecentArticles(n)
		c.JSON(200, articles)
	case c.Query("authorId") != "":
		authorID, err := strconv.Atoi(c.Query("authorId"))
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid authorId parameter"})
			return
		}
		articles, _ := ac.service.GetArticlesByAuthor(authorID)
		c.JSON(200, articles)
	default:
		articles, _ := ac.service.GetPublishedArticles()
		c.JSON(200, articles)
	}
}

func (ac *ArticleController) GetArticleByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	article, err := ac.service.GetArticleByID(id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if article == nil {
		c.JSON(404, gin.H{"error": "Article not found"})
		return
	}
	c.JSON(200, article)
}

func (ac *ArticleController) CreateArticle(c *gin.Context) {
	var article models.ArticleModel
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(article.Title) == "" {
		c.JSON(400, gin.H{"error": "Title is required"})
		return
	}
	if strings.TrimSpace(article.Content) == "" {
		c.JSON(400, gin.H{"error": "Content is required"})
		return
	}

	// The author identity comes from the session, not the payload.
	if userID := currentUser(c); userID != 0 {
		article.AuthorID = &userID
		if user, err := ac.userService.GetUserByID(userID); err == nil && user != nil {
			name := user.DisplayName
			if name == "" {
				name = user.Username
			}
			article.AuthorName = &name
		}
	}

	created, err := ac.service.CreateArticle(&article)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, created)
}

func (ac *ArticleController) UpdateArticle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	var article models.ArticleModel
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	existing, err := ac.service.GetArticleByID(id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		c.JSON(404, gin.H{"error": "Article not found"})
		return
	}
	if existing.AuthorID != nil && *existing.AuthorID != currentUser(c) {
		c.JSON(403, gin.H{"error": "Only the author can edit this article"})
		return
	}

	updated, err := ac.service.UpdateArticle(id, &article)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, updated)
}

func (ac *ArticleController) IncrementViews(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}
	if err := ac.service.IncrementViews(id); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "View counted"})
}

func (ac *ArticleController) IncrementLikes(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}
	if err := ac.service.IncrementLikes(id); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Like counted"})
}

func (ac *ArticleController) UploadCoverImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	article, err := ac.service.GetArticleByID(id)
	if err != nil || article == nil {
		c.JSON(404, gin.H{"error": "Article not found"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(400, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		c.JSON(400, gin.H{"error": "File must be an image"})
		return
	}

	url, err := ac.store.Upload(storage.ArticleImageKey(id, header.Filename), file)
	if err != nil {
		c.JSON(500, gin.H{"error": "Could not save file"})
		return
	}

	if article.CoverImageURL != nil {
		if key := ac.store.KeyFromURL(*article.CoverImageURL); key != "" {
			ac.store.Delete(key)
		}
	}

	if _, err := ac.service.UpdateArticle(id, &models.ArticleModel{CoverImageURL: &url}); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"url": url})
}

func (ac *ArticleController) DeleteArticle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid ID format"})
		return
	}

	article, err := ac.service.GetArticleByID(id)
	if err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if article == nil {
		c.JSON(404, gin.H{"error": "Article not found"})
		return
	}
	if article.AuthorID != nil && *article.AuthorID != currentUser(c) {
		c.JSON(403, gin.H{"error": "Only the author can delete this article"})
		return
	}

	if err := ac.service.DeleteArticle(id); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	if article.CoverImageURL != nil {
		if key := ac.store.KeyFromURL(*article.CoverImageURL); key != "" {
			ac.store.Delete(key)
		}
	}

	c.JSON(200, gin.H{"message": "Article deleted successfully"})
}
