package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/ArchePal/ArchePal-Backend/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactCRUD(t *testing.T) {
	db := newTestDB(t)
	service := NewArtifactService(db)

	created, err := service.CreateArtifact(&models.ArtifactModel{
		Name: "Bronze Fibula",
		Type: "Jewelry",
	})
	require.NoError(t, err)
	require.NotZero(t, created.Id)

	loaded, err := service.GetArtifactByID(created.Id)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Bronze Fibula", loaded.Name)

	time.Sleep(10 * time.Millisecond)
	updated, err := service.UpdateArtifact(created.Id, &models.ArtifactModel{Name: "Iron Fibula"})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(loaded.UpdatedAt))

	require.NoError(t, service.DeleteArtifact(created.Id))

	gone, err := service.GetArtifactByID(created.Id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCreateArtifactResolvesSiteName(t *testing.T) {
	db := newTestDB(t)
	siteService := NewSiteService(db)
	service := NewArtifactService(db)

	site, err := siteService.CreateSite(&models.SiteModel{Name: "Hill Fort"})
	require.NoError(t, err)

	created, err := service.CreateArtifact(&models.ArtifactModel{
		Name:   "Pot Shard",
		Type:   "Pottery",
		SiteID: &site.Id,
	})
	require.NoError(t, err)
	require.NotNil(t, created.SiteName)
	assert.Equal(t, "Hill Fort", *created.SiteName)
}

func TestSiteNameNotRewrittenOnSiteRename(t *testing.T) {
	db := newTestDB(t)
	siteService := NewSiteService(db)
	service := NewArtifactService(db)

	site, err := siteService.CreateSite(&models.SiteModel{Name: "Old Name"})
	require.NoError(t, err)

	created, err := service.CreateArtifact(&models.ArtifactModel{Name: "Coin", SiteID: &site.Id})
	require.NoError(t, err)

	_, err = siteService.UpdateSite(site.Id, &models.SiteModel{Name: "New Name"})
	require.NoError(t, err)

	// The cached copy only refreshes when the artifact itself is written.
	loaded, err := service.GetArtifactByID(created.Id)
	require.NoError(t, err)
	require.NotNil(t, loaded.SiteName)
	assert.Equal(t, "Old Name", *loaded.SiteName)

	_, err = service.UpdateArtifact(created.Id, &models.ArtifactModel{SiteID: &site.Id})
	require.NoError(t, err)

	reloaded, err := service.GetArtifactByID(created.Id)
	require.NoError(t, err)
	require.NotNil(t, reloaded.SiteName)
	assert.Equal(t, "New Name", *reloaded.SiteName)
}

func TestGetArtifactsBySiteOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	siteService := NewSiteService(db)
	service := NewArtifactService(db)

	site, err := siteService.CreateSite(&models.SiteModel{Name: "Quarry"})
	require.NoError(t, err)

	for _, name := range []string{"first", "second", "third"} {
		_, err := service.CreateArtifact(&models.ArtifactModel{Name: name, SiteID: &site.Id})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	artifacts, err := service.GetArtifactsBySite(site.Id)
	require.NoError(t, err)
	require.Len(t, artifacts, 3)
	assert.Equal(t, "third", artifacts[0].Name)
	assert.Equal(t, "second", artifacts[1].Name)
	assert.Equal(t, "first", artifacts[2].Name)
}

func TestGetArtifactsBySiteFallsBackWhenOrderedQueryFails(t *testing.T) {
	db := newTestDB(t)
	siteService := NewSiteService(db)
	service := NewArtifactService(db)

	site, err := siteService.CreateSite(&models.SiteModel{Name: "Ridge"})
	require.NoError(t, err)

	for _, name := range []string{"first", "second", "third"} {
		_, err := service.CreateArtifact(&models.ArtifactModel{Name: name, SiteID: &site.Id})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	// With the ordered scan broken, the in-memory sort must still deliver
	// every row newest-first.
	rejectOrderedQueries(t, db)

	artifacts, err := service.GetArtifactsBySite(site.Id)
	require.NoError(t, err)
	require.Len(t, artifacts, 3)
	assert.Equal(t, "third", artifacts[0].Name)
	assert.Equal(t, "second", artifacts[1].Name)
	assert.Equal(t, "first", artifacts[2].Name)
}

func TestGetRecentArtifactsLimit(t *testing.T) {
	service := NewArtifactService(newTestDB(t))

	for _, name := range []string{"a", "b", "c", "d"} {
		_, err := service.CreateArtifact(&models.ArtifactModel{Name: name})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	recent, err := service.GetRecentArtifacts(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "d", recent[0].Name)
	assert.Equal(t, "c", recent[1].Name)
}

func TestSearchArtifacts(t *testing.T) {
	service := NewArtifactService(newTestDB(t))

	_, err := service.CreateArtifact(&models.ArtifactModel{Name: "Amphora"})
	require.NoError(t, err)
	_, err = service.CreateArtifact(&models.ArtifactModel{
		Name:        "Clay Figure",
		Description: strPtr("Fragment of an amphora handle"),
	})
	require.NoError(t, err)
	_, err = service.CreateArtifact(&models.ArtifactModel{Name: "Flint Blade"})
	require.NoError(t, err)

	matched, err := service.SearchArtifacts("AMPHORA")
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	matched, err = service.SearchArtifacts("")
	require.NoError(t, err)
	assert.Len(t, matched, 3)
}

func TestCacheInvalidatedOnWrite(t *testing.T) {
	service := NewArtifactService(newTestDB(t))

	_, err := service.CreateArtifact(&models.ArtifactModel{Name: "one"})
	require.NoError(t, err)

	// Prime the cache.
	all, err := service.GetAllArtifacts(nil)
	require.NoError(t, err)
	require.Len(t, all, 1)

	_, err = service.CreateArtifact(&models.ArtifactModel{Name: "two"})
	require.NoError(t, err)

	all, err = service.GetAllArtifacts(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetArtifactBySyncKey(t *testing.T) {
	service := NewArtifactService(newTestDB(t))

	key := "abc-123"
	_, err := service.CreateArtifact(&models.ArtifactModel{Name: "queued", SyncKey: &key})
	require.NoError(t, err)

	found, err := service.GetArtifactBySyncKey("abc-123")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "queued", found.Name)

	missing, err := service.GetArtifactBySyncKey("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetArtifactSummaries(t *testing.T) {
	db := newTestDB(t)
	siteService := NewSiteService(db)
	service := NewArtifactService(db)

	site, err := siteService.CreateSite(&models.SiteModel{Name: "Delta"})
	require.NoError(t, err)

	_, err = service.CreateArtifact(&models.ArtifactModel{
		Name:      "Figurine",
		Type:      "Sculpture",
		SiteID:    &site.Id,
		ImageURLs: []string{"/files/artifacts/1/a.jpg", "/files/artifacts/1/b.jpg"},
	})
	require.NoError(t, err)
	_, err = service.CreateArtifact(&models.ArtifactModel{Name: "Plain"})
	require.NoError(t, err)

	summaries, err := service.GetArtifactSummaries(nil)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byName := map[string]int{}
	for i, s := range summaries {
		byName[s.Name] = i
	}
	figurine := summaries[byName["Figurine"]]
	require.NotNil(t, figurine.ThumbnailURL)
	assert.Equal(t, "/files/artifacts/1/a.jpg", *figurine.ThumbnailURL)
	require.NotNil(t, figurine.SiteName)
	assert.Equal(t, "Delta", *figurine.SiteName)

	plain := summaries[byName["Plain"]]
	assert.Nil(t, plain.ThumbnailURL)
}

func TestAttachArtifactImage(t *testing.T) {
	service := NewArtifactService(newTestDB(t))

	created, err := service.CreateArtifact(&models.ArtifactModel{Name: "Urn"})
	require.NoError(t, err)

	require.NoError(t, service.AttachArtifactImage(created.Id, "/files/artifacts/1/x.jpg"))
	require.NoError(t, service.AttachArtifactImage(created.Id, "/files/artifacts/1/y.jpg"))

	loaded, err := service.GetArtifactByID(created.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"/files/artifacts/1/x.jpg", "/files/artifacts/1/y.jpg"}, loaded.ImageURLs)
}

func TestSetModelImage(t *testing.T) {
	service := NewArtifactService(newTestDB(t))

	created, err := service.CreateArtifact(&models.ArtifactModel{Name: "Vase"})
	require.NoError(t, err)

	require.NoError(t, service.SetModelImage(created.Id, "/files/artifacts/1/3d-models/v.png", true, floatPtr(49.90)))

	loaded, err := service.GetArtifactByID(created.Id)
	require.NoError(t, err)
	require.NotNil(t, loaded.ModelImageURL)
	assert.Equal(t, "/files/artifacts/1/3d-models/v.png", *loaded.ModelImageURL)
	assert.True(t, loaded.ForSale)
	require.NotNil(t, loaded.SalePrice)
	assert.Equal(t, 49.90, *loaded.SalePrice)
}

func TestSetAISummary(t *testing.T) {
	service := NewArtifactService(newTestDB(t))

	created, err := service.CreateArtifact(&models.ArtifactModel{Name: "Mask"})
	require.NoError(t, err)

	require.NoError(t, service.SetAISummary(created.Id, "Ceremonial mask, likely Bronze Age."))

	loaded, err := service.GetArtifactByID(created.Id)
	require.NoError(t, err)
	require.NotNil(t, loaded.AISummary)
	assert.Equal(t, "Ceremonial mask, likely Bronze Age.", *loaded.AISummary)
}

func TestExportArtifactsToExcel(t *testing.T) {
	service := NewArtifactService(newTestDB(t))

	_, err := service.CreateArtifact(&models.ArtifactModel{Name: "Shard", Type: "Pottery"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, service.ExportArtifactsToExcel(&buf))
	assert.Greater(t, buf.Len(), 0)
}

func TestArtifactReadsDegradeWithoutStore(t *testing.T) {
	service := NewArtifactService(nil)

	artifacts, err := service.GetAllArtifacts(nil)
	require.NoError(t, err)
	assert.Empty(t, artifacts)

	artifact, err := service.GetArtifactByID(1)
	require.NoError(t, err)
	assert.Nil(t, artifact)

	_, err = service.CreateArtifact(&models.ArtifactModel{Name: "x"})
	assert.Error(t, err)
}
