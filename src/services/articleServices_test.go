package services

import (
	"strings"
	"testing"
	"time"

	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeReadTime(t *testing.T) {
	assert.Equal(t, "1 min read", ComputeReadTime(""))
	assert.Equal(t, "1 min read", ComputeReadTime("short body"))
	assert.Equal(t, "1 min read", ComputeReadTime(strings.Repeat("word ", 200)))
	assert.Equal(t, "2 min read", ComputeReadTime(strings.Repeat("word ", 201)))
	assert.Equal(t, "5 min read", ComputeReadTime(strings.Repeat("word ", 1000)))
}

func TestCreateArticleStampsReadTimeAndPublishedAt(t *testing.T) {
	service := NewArticleService(newTestDB(t))

	created, err := service.CreateArticle(&models.ArticleModel{
		Title:     "Dig Season Recap",
		Content:   strings.Repeat("word ", 450),
		Published: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "3 min read", created.ReadTime)
	require.NotNil(t, created.PublishedAt)

	draft, err := service.CreateArticle(&models.ArticleModel{
		Title:   "Draft Notes",
		Content: "short",
	})
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)
}

func TestUpdateArticleRecomputesReadTime(t *testing.T) {
	service := NewArticleService(newTestDB(t))

	created, err := service.CreateArticle(&models.ArticleModel{Title: "T", Content: "short"})
	require.NoError(t, err)
	assert.Equal(t, "1 min read", created.ReadTime)

	_, err = service.UpdateArticle(created.Id, &models.ArticleModel{Content: strings.Repeat("word ", 500)})
	require.NoError(t, err)

	loaded, err := service.GetArticleByID(created.Id)
	require.NoError(t, err)
	assert.Equal(t, "3 min read", loaded.ReadTime)
}

func TestPublishingDraftStampsPublishedAt(t *testing.T) {
	service := NewArticleService(newTestDB(t))

	created, err := service.CreateArticle(&models.ArticleModel{Title: "Draft", Content: "body"})
	require.NoError(t, err)
	require.Nil(t, created.PublishedAt)

	_, err = service.UpdateArticle(created.Id, &models.ArticleModel{Published: true})
	require.NoError(t, err)

	loaded, err := service.GetArticleByID(created.Id)
	require.NoError(t, err)
	assert.True(t, loaded.Published)
	assert.NotNil(t, loaded.PublishedAt)
}

func TestGetPublishedArticlesNewestFirst(t *testing.T) {
	service := NewArticleService(newTestDB(t))

	for _, title := range []string{"first", "second", "third"} {
		_, err := service.CreateArticle(&models.ArticleModel{Title: title, Content: "body", Published: true})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}
	_, err := service.CreateArticle(&models.ArticleModel{Title: "draft", Content: "body"})
	require.NoError(t, err)

	published, err := service.GetPublishedArticles()
	require.NoError(t, err)
	require.Len(t, published, 3)
	assert.Equal(t, "third", published[0].Title)
	assert.Equal(t, "first", published[2].Title)

	recent, err := service.GetRecentArticles(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Title)
}

func TestGetPublishedArticlesFallsBackWhenOrderedQueryFails(t *testing.T) {
	db := newTestDB(t)
	service := NewArticleService(db)

	for _, title := range []string{"first", "second", "third"} {
		_, err := service.CreateArticle(&models.ArticleModel{Title: title, Content: "body", Published: true})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	rejectOrderedQueries(t, db)

	published, err := service.GetPublishedArticles()
	require.NoError(t, err)
	require.Len(t, published, 3)
	assert.Equal(t, "third", published[0].Title)
	assert.Equal(t, "first", published[2].Title)
}

func TestGetFeaturedArticles(t *testing.T) {
	service := NewArticleService(newTestDB(t))

	_, err := service.CreateArticle(&models.ArticleModel{Title: "plain", Content: "b", Published: true})
	require.NoError(t, err)
	_, err = service.CreateArticle(&models.ArticleModel{Title: "starred", Content: "b", Published: true, Featured: true})
	require.NoError(t, err)
	_, err = service.CreateArticle(&models.ArticleModel{Title: "hidden", Content: "b", Featured: true})
	require.NoError(t, err)

	featured, err := service.GetFeaturedArticles()
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "starred", featured[0].Title)
}

func TestIncrementCounters(t *testing.T) {
	service := NewArticleService(newTestDB(t))

	created, err := service.CreateArticle(&models.ArticleModel{Title: "T", Content: "b"})
	require.NoError(t, err)

	require.NoError(t, service.IncrementViews(created.Id))
	require.NoError(t, service.IncrementViews(created.Id))
	require.NoError(t, service.IncrementLikes(created.Id))

	loaded, err := service.GetArticleByID(created.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Views)
	assert.Equal(t, 1, loaded.Likes)

	err = service.IncrementViews(9999)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
}

func TestSearchArticles(t *testing.T) {
	service := NewArticleService(newTestDB(t))

	_, err := service.CreateArticle(&models.ArticleModel{Title: "Mosaic floors", Content: "body"})
	require.NoError(t, err)
	_, err = service.CreateArticle(&models.ArticleModel{
		Title:   "Field report",
		Content: "We uncovered a mosaic in trench B",
	})
	require.NoError(t, err)
	_, err = service.CreateArticle(&models.ArticleModel{Title: "Unrelated", Content: "nothing here"})
	require.NoError(t, err)

	matched, err := service.SearchArticles("mosaic")
	require.NoError(t, err)
	assert.Len(t, matched, 2)
}
