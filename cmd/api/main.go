package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"plushhub/internal/config"
	"plushhub/internal/database"
	"plushhub/internal/middleware"
	"plushhub/internal/modules/auth"
	"plushhub/internal/modules/catalog"
	"plushhub/internal/modules/collection"
	"plushhub/internal/modules/message"
	"plushhub/internal/modules/photo"
	"plushhub/internal/modules/profile"
	"plushhub/internal/modules/social"
	jwtsvc "plushhub/internal/pkg/jwt"
	"plushhub/internal/repository"
	"plushhub/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	images, err := storage.NewDiskStore(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	toyRepo := repository.NewToyRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	customListRepo := repository.NewCustomListRepository(db)
	followRepo := repository.NewFollowRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	photoRepo := repository.NewPhotoRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(toyRepo, collectionRepo, userRepo, images)
	catalogHandler := catalog.NewHandler(catalogService)

	collectionService := collection.NewService(collectionRepo, customListRepo)
	collectionHandler := collection.NewHandler(collectionService)

	socialService := social.NewService(followRepo, userRepo)
	socialHandler := social.NewHandler(socialService)

	profileService := profile.NewService(userRepo, toyRepo, collectionRepo, customListRepo, followRepo)
	profileHandler := profile.NewHandler(profileService)

	hub := message.NewHub()
	messageService := message.NewService(messageRepo, userRepo, hub)
	messageHandler := message.NewHandler(messageService, hub, j)

	photoService := photo.NewService(photoRepo, toyRepo, userRepo, images)
	photoHandler := photo.NewHandler(photoService)

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorLogger())

	r.Static(cfg.UploadBaseURL, cfg.UploadDir)

	v1 := r.Group("/api/v1")
	{
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))

		// Profile reads stay public but honor a token when one is sent,
		// so owners see their private lists in their own profile.
		optional := v1.Group("/")
		optional.Use(middleware.OptionalAuth(j))

		authHandler.RegisterRoutes(v1)
		profileHandler.RegisterRoutes(optional)
		catalogHandler.RegisterRoutes(v1, protected)
		socialHandler.RegisterRoutes(v1, protected)
		messageHandler.RegisterRoutes(v1, protected)
		photoHandler.RegisterRoutes(v1, protected)
		collectionHandler.RegisterRoutes(protected)
	}

	log.Printf("listening addr=%s env=%s", cfg.HTTPAddr, cfg.AppEnv)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
