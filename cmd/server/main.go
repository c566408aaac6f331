package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/neharamiah/Book-bridge/internal/config"
	"github.com/neharamiah/Book-bridge/internal/database"
	"github.com/neharamiah/Book-bridge/internal/server"
	"github.com/neharamiah/Book-bridge/internal/storage"
	"github.com/neharamiah/Book-bridge/internal/uploads"
	"github.com/neharamiah/Book-bridge/internal/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, continuing with environment variables")
	}

	if m := os.Getenv("GIN_MODE"); m != "" {
		gin.SetMode(m)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	blobs, err := storage.Open(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to open blob storage: %v", err)
	}

	usersH := users.NewHandler(users.NewMongoStore(db))
	uploadsH := uploads.NewHandler(uploads.NewMongoStore(db), blobs, cfg.StrictUploads)

	r := server.New(cfg, usersH, uploadsH, blobs)

	log.Printf("server running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
