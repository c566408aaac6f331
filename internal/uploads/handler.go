package uploads

import (
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/neharamiah/Book-bridge/internal/storage"
)

// MaxFileSize is the per-file cap on uploaded parts.
const MaxFileSize = 5 << 20 // 5 MiB

type Handler struct {
	store  Store
	blobs  *storage.Dir
	strict bool
}

// NewHandler wires the listing service. strict toggles required-field and
// required-frontFile validation on Create.
func NewHandler(store Store, blobs *storage.Dir, strict bool) *Handler {
	return &Handler{store: store, blobs: blobs, strict: strict}
}

// Create handles a lender submission: metadata form fields plus a frontFile
// part and an optional tocFile part. Files are written to blob storage
// before the record insert; a failed insert leaves them behind.
func (h *Handler) Create(c *gin.Context) {
	meta := Metadata{
		Type:    c.PostForm("type"),
		Branch:  c.PostForm("branch"),
		Sem:     c.PostForm("sem"),
		Subject: c.PostForm("subject"),
		Email:   c.PostForm("email"),
		Phone:   c.PostForm("phone"),
		Author:  c.PostForm("author"),
	}

	if h.strict && (meta.Email == "" || meta.Branch == "" || meta.Sem == "" ||
		meta.Subject == "" || meta.Type == "") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing fields"})
		return
	}

	front, err := c.FormFile("frontFile")
	if err != nil && h.strict {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing fields"})
		return
	}
	toc, tocErr := c.FormFile("tocFile")
	if tocErr != nil {
		toc = nil
	}

	// Reject oversized parts before anything touches the disk.
	if tooLarge(front) || tooLarge(toc) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "message": "File too large"})
		return
	}

	var frontName string
	if front != nil {
		if frontName, err = h.blobs.Save(front); err != nil {
			log.Printf("upload: saving front file failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Upload failed"})
			return
		}
	}
	var tocName *string
	if toc != nil {
		name, err := h.blobs.Save(toc)
		if err != nil {
			log.Printf("upload: saving toc file failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Upload failed"})
			return
		}
		tocName = &name
	}

	record := New(meta, frontName, tocName, time.Now())
	if err := h.store.Create(c.Request.Context(), record); err != nil {
		log.Printf("upload: insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Upload successful"})
}

// List returns every upload record as a bare JSON array.
func (h *Handler) List(c *gin.Context) {
	records, err := h.store.All(c.Request.Context())
	if err != nil {
		log.Printf("uploads: fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Fetch failed"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func tooLarge(fh *multipart.FileHeader) bool {
	return fh != nil && fh.Size > MaxFileSize
}
