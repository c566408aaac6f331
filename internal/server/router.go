package server

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/neharamiah/Book-bridge/internal/config"
	"github.com/neharamiah/Book-bridge/internal/storage"
	"github.com/neharamiah/Book-bridge/internal/uploads"
	"github.com/neharamiah/Book-bridge/internal/users"
)

// New assembles the route table. Every route is public; the front end is
// served from the public dir with a fallback to its index.html so client-side
// routes survive a reload.
func New(cfg *config.Config, usersH *users.Handler, uploadsH *uploads.Handler, blobs *storage.Dir) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	r.MaxMultipartMemory = uploads.MaxFileSize

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/signup", usersH.Signup)
	r.POST("/login", usersH.Login)

	r.POST("/api/uploads", uploadsH.Create)
	r.GET("/uploads", uploadsH.List)
	r.GET("/api/all-uploads", uploadsH.List)

	r.GET("/uploads/:filename", serveBlob(blobs))
	r.NoRoute(servePublic(cfg.PublicDir))

	return r
}

func serveBlob(blobs *storage.Dir) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Stored names never contain a separator; Base strips any
		// traversal attempt from the request.
		name := filepath.Base(c.Param("filename"))
		c.File(filepath.Join(blobs.Path(), name))
	}
}

func servePublic(publicDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
			return
		}

		asset := filepath.Join(publicDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(asset); err == nil && !info.IsDir() {
			c.File(asset)
			return
		}

		index := filepath.Join(publicDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
	}
}
