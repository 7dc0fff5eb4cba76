package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/ArchePal/ArchePal-Backend/src/analysis"
	"github.com/ArchePal/ArchePal-Backend/src/db"
	"github.com/ArchePal/ArchePal-Backend/src/middleware"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"github.com/ArchePal/ArchePal-Backend/src/offline"
	"github.com/ArchePal/ArchePal-Backend/src/routes"
	"github.com/ArchePal/ArchePal-Backend/src/seed"
	"github.com/ArchePal/ArchePal-Backend/src/services"
	"github.com/ArchePal/ArchePal-Backend/src/storage"
	"github.com/ArchePal/ArchePal-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

func main() {

	// Database connection. The API stays up without it so that clients
	// can keep queueing offline writes while the database is down.
	database, err := db.Connect()
	if err != nil {
		log.Printf("Warning: database unavailable, starting in degraded mode: %v\n", err)
		database = nil
	}

	// Auto-migrate models
	if database != nil {
		if err := database.AutoMigrate(
			&models.UserModel{},
			&models.SiteModel{},
			&models.ArtifactModel{},
			&models.EventModel{},
			&models.MerchandiseModel{},
			&models.ArticleModel{},
			&models.DiaryEntryModel{},
			&models.DropdownOptionsModel{},
		); err != nil {
			log.Fatalf("Error during auto-migration: %v\n", err)
		}

		seed.Seed(database)
	}

	// JWT secret setup
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		log.Println("Warning: SECRET_KEY not set, using default development secret")
		secret = "archepal-dev-secret"
	}
	middleware.SetSecretKey(secret)

	// Blob storage setup
	storagePath := os.Getenv("STORAGE_PATH")
	if storagePath == "" {
		storagePath = "data/files"
	}
	store, err := storage.NewLocalStorage(storagePath, "/files")
	if err != nil {
		log.Fatalf("Error initializing blob storage: %v\n", err)
	}

	// Offline queue setup
	queuePath := os.Getenv("OFFLINE_QUEUE_PATH")
	if queuePath == "" {
		queuePath = "data/offline-queue.db"
	}
	queue, err := offline.Open(queuePath)
	if err != nil {
		log.Fatalf("Error opening offline queue: %v\n", err)
	}
	defer queue.Close()

	cacheDir := filepath.Join(filepath.Dir(queuePath), "offline-images")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		log.Fatalf("Error creating offline image cache dir: %v\n", err)
	}

	// External clients
	analyzer := analysis.NewClientFromEnv()
	driveClient, err := utils.NewDriveClientFromEnv()
	if err != nil {
		log.Printf("Warning: Google Drive client disabled: %v\n", err)
		driveClient = nil
	}

	// Port and host setup
	host := os.Getenv("SERVER_HOST")
	if host == "" {
		host = ":8080"
	}

	// Gin router setup
	router := gin.Default()
	router.Use(middleware.SetupCORS())
	router.Static("/files", store.BasePath())

	// Services setup
	userService := services.NewUserService(database)
	siteService := services.NewSiteService(database)
	artifactService := services.NewArtifactService(database)
	eventService := services.NewEventService(database)
	merchandiseService := services.NewMerchandiseService(database)
	articleService := services.NewArticleService(database)
	diaryService := services.NewDiaryService(database)
	dropdownService := services.NewDropdownService(database)

	// Drain any writes queued while the backend was last offline.
	if database != nil {
		if n, err := queue.Len(); err == nil && n > 0 {
			log.Printf("Draining %d queued offline writes...\n", n)
			if result, err := queue.Sync(artifactService, store); err != nil {
				log.Printf("Warning: offline queue drain failed: %v\n", err)
			} else {
				log.Printf("Offline queue drained: %d synced, %d failed, %d remaining\n",
					result.Synced, result.Failed, result.Remaining)
			}
		}
	}

	// Routes setup
	routes.SetupUserRoutes(router, userService)
	routes.SetupSiteRoutes(router, siteService, store)
	routes.SetupArtifactRoutes(router, artifactService, store, queue, analyzer, driveClient)
	routes.SetupEventRoutes(router, eventService)
	routes.SetupMerchandiseRoutes(router, merchandiseService, store)
	routes.SetupArticleRoutes(router, articleService, userService, store)
	routes.SetupDiaryRoutes(router, diaryService, store)
	routes.SetupDropdownRoutes(router, dropdownService)
	routes.SetupSyncRoutes(router, queue, artifactService, store, cacheDir)

	router.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok", "database": database != nil}
		c.JSON(200, status)
	})

	// Server run
	if err := router.Run(host); err != nil {
		log.Fatalf("Error starting server on %s: %v\n", host, err)
	}
}
