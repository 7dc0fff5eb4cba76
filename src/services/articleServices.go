package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"gorm.io/gorm"
)

// wordsPerMinute is the reading speed the displayed read time is based on.
const wordsPerMinute = 200

type ArticleService struct {
	db *gorm.DB
}

// NewArticleService creates a new instance of ArticleService
func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{db: db}
}

// GetAllArticles retrieves all Article records from the database
func (s *ArticleService) GetAllArticles() ([]models.ArticleModel, error) {
	articles := []models.ArticleModel{}
	if s.db == nil {
		return articles, nil
	}
	if err := s.db.Find(&articles).Error; err != nil {
		log.Printf("Could not load articles: %v\n", err)
		return []models.ArticleModel{}, nil
	}
	return articles, nil
}

// GetPublishedArticles retrieves published articles, newest first, with the
// in-memory fallback sort when the ordered query fails.
func (s *ArticleService) GetPublishedArticles() ([]models.ArticleModel, error) {
	articles := []models.ArticleModel{}
	if s.db == nil {
		return articles, nil
	}

	err := s.db.Where("published = ?", true).Order("published_at DESC").Find(&articles).Error
	if err != nil {
		articles = []models.ArticleModel{}
		if err := s.db.Where("published = ?", true).Find(&articles).Error; err != nil {
			log.Printf("Could not load published articles: %v\n", err)
			return []models.ArticleModel{}, nil
		}
		sortArticlesByPublishedDesc(articles)
	}
	return articles, nil
}

// GetRecentArticles returns the n most recently published articles.
func (s *ArticleService) GetRecentArticles(n int) ([]models.ArticleModel, error) {
	articles, err := s.GetPublishedArticles()
	if err != nil {
		return []models.ArticleModel{}, nil
	}
	if len(articles) > n {
		articles = articles[:n]
	}
	return articles, nil
}

// GetFeaturedArticles retrieves published articles flagged as featured.
func (s *ArticleService) GetFeaturedArticles() ([]models.ArticleModel, error) {
	articles := []models.ArticleModel{}
	if s.db == nil {
		return articles, nil
	}
	if err := s.db.Where("featured = ? AND published = ?", true, true).Find(&articles).Error; err != nil {
		log.Printf("Could not load featured articles: %v\n", err)
		return []models.ArticleModel{}, nil
	}
	return articles, nil
}

// GetArticlesByCategory retrieves articles filtered by category
func (s *ArticleService) GetArticlesByCategory(category string) ([]models.ArticleModel, error) {
	articles := []models.ArticleModel{}
	if s.db == nil {
		return articles, nil
	}
	if err := s.db.Where("category = ?", category).Find(&articles).Error; err != nil {
		log.Printf("Could not load articles by category %s: %v\n", category, err)
		return []models.ArticleModel{}, nil
	}
	return articles, nil
}

// GetArticlesByAuthor retrieves articles written by the given user
func (s *ArticleService) GetArticlesByAuthor(authorID int) ([]models.ArticleModel, error) {
	articles := []models.ArticleModel{}
	if s.db == nil {
		return articles, nil
	}
	if err := s.db.Where("author_id = ?", authorID).Find(&articles).Error; err != nil {
		log.Printf("Could not load articles by author %d: %v\n", authorID, err)
		return []models.ArticleModel{}, nil
	}
	return articles, nil
}

// SearchArticles filters articles client-side on title, excerpt and content.
func (s *ArticleService) SearchArticles(query string) ([]models.ArticleModel, error) {
	articles, err := s.GetAllArticles()
	if err != nil {
		return []models.ArticleModel{}, nil
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return articles, nil
	}

	matched := []models.ArticleModel{}
	for _, article := range articles {
		if strings.Contains(strings.ToLower(article.Title), query) ||
			strings.Contains(strings.ToLower(article.Content), query) {
			matched = append(matched, article)
			continue
		}
		if article.Excerpt != nil && strings.Contains(strings.ToLower(*article.Excerpt), query) {
			matched = append(matched, article)
		}
	}
	return matched, nil
}

// GetArticleByID retrieves an Article by ID. Missing articles are (nil, nil).
func (s *ArticleService) GetArticleByID(id int) (*models.ArticleModel, error) {
	if s.db == nil {
		return nil, nil
	}
	var article models.ArticleModel
	err := s.db.First(&article, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.FromStore(err, "could not load article")
	}
	return &article, nil
}

// CreateArticle creates a new Article, computing its read time and stamping
// the publish timestamp when it is created already published.
func (s *ArticleService) CreateArticle(article *models.ArticleModel) (*models.ArticleModel, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("store is not available", nil)
	}

	article.ReadTime = ComputeReadTime(article.Content)
	if article.Published && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.db.Create(article).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not create article")
	}
	return article, nil
}

// UpdateArticle merges partial fields into an existing Article, recomputing
// the read time when the content changed.
func (s *ArticleService) UpdateArticle(id int, updatedData *models.ArticleModel) (*models.ArticleModel, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("store is not available", nil)
	}
	var article models.ArticleModel
	if err := s.db.First(&article, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not load article")
	}

	if updatedData.Content != "" {
		updatedData.ReadTime = ComputeReadTime(updatedData.Content)
	}
	if updatedData.Published && !article.Published && updatedData.PublishedAt == nil {
		now := time.Now()
		updatedData.PublishedAt = &now
	}

	if err := s.db.Model(&article).Updates(updatedData).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not update article")
	}
	return &article, nil
}

// IncrementViews bumps the view counter by one.
func (s *ArticleService) IncrementViews(id int) error {
	return s.incrementCounter(id, "views")
}

// IncrementLikes bumps the like counter by one.
func (s *ArticleService) IncrementLikes(id int) error {
	return s.incrementCounter(id, "likes")
}

func (s *ArticleService) incrementCounter(id int, column string) error {
	if s.db == nil {
		return apperrors.Unavailable("store is not available", nil)
	}
	result := s.db.Model(&models.ArticleModel{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return apperrors.FromStore(result.Error, "could not update counter")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("article not found")
	}
	return nil
}

// DeleteArticle deletes an Article record from the database
func (s *ArticleService) DeleteArticle(id int) error {
	if s.db == nil {
		return apperrors.Unavailable("store is not available", nil)
	}
	result := s.db.Delete(&models.ArticleModel{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.FromStore(result.Error, "could not delete article")
	}
	return nil
}

// ComputeReadTime derives the "N min read" display string from the article
// body at 200 words per minute, never less than one minute.
func ComputeReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

func sortArticlesByPublishedDesc(articles []models.ArticleModel) {
	sort.Slice(articles, func(i, j int) bool {
		ti, tj := articles[i].CreatedAt, articles[j].CreatedAt
		if articles[i].PublishedAt != nil {
			ti = *articles[i].PublishedAt
		}
		if articles[j].PublishedAt != nil {
			tj = *articles[j].PublishedAt
		}
		return ti.After(tj)
	})
}
