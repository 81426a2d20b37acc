package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/lavanyasahu/CitiFix/common"
	"github.com/lavanyasahu/CitiFix/config"
	"github.com/lavanyasahu/CitiFix/controllers"
	"github.com/lavanyasahu/CitiFix/routes"
	"github.com/lavanyasahu/CitiFix/services"
	"github.com/lavanyasahu/CitiFix/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("Please define the JWT_SECRET environment variable")
	}

	db, err := config.ConnectDB(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("MongoDB connection established successfully!")

	st := store.NewMongoStore(db)
	if err := st.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	var cache *services.FeedCache
	if cfg.RedisAddr != "" {
		rdb, err := config.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis")
		cache = services.NewFeedCache(rdb, 30*time.Second)
	}

	authService := services.NewAuthService(st)
	issueService := services.NewIssueService(st, cache)

	seedAdmin(authService, cfg)

	r := gin.Default()
	r.Use(cors.Default())

	authController := controllers.NewAuthController(authService, cfg.JWTSecret)
	issueController := controllers.NewIssueController(issueService)
	adminController := controllers.NewAdminController(authService)

	routes.AuthRoutes(r, authController, cfg.JWTSecret)
	routes.IssueRoutes(r, issueController, cfg.JWTSecret)
	routes.AdminRoutes(r, adminController, cfg.JWTSecret)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// seedAdmin creates the bootstrap admin account. A duplicate on restart
// is expected and not an error.
func seedAdmin(auth *services.AuthService, cfg config.Config) {
	if cfg.AdminPassword == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seeding")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := auth.CreateAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword, nil)
	switch {
	case err == nil:
		log.Printf("Seeded admin user %q", cfg.AdminUsername)
	case errors.Is(err, common.ErrDuplicateIdentity):
		log.Printf("Admin user %q already exists", cfg.AdminUsername)
	default:
		log.Fatalf("Failed to seed admin user: %v", err)
	}
}
