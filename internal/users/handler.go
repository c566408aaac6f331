package users

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

type signupDTO struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Signup(c *gin.Context) {
	var body signupDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing fields"})
		return
	}

	ctx := c.Request.Context()

	_, err := h.store.FindByEmail(ctx, body.Email)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User exists"})
		return
	}
	if !errors.Is(err, ErrNotFound) {
		log.Printf("signup: email lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Signup failed"})
		return
	}

	user := User{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
	}
	if err := h.store.Create(ctx, &user); err != nil {
		// Concurrent signup with the same email can slip past the lookup
		// above; the unique index reports it here.
		if errors.Is(err, ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User exists"})
			return
		}
		log.Printf("signup: insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Signup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Signup successful"})
}

func (h *Handler) Login(c *gin.Context) {
	var body loginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing fields"})
		return
	}

	user, err := h.store.FindByCredentials(c.Request.Context(), body.Email, body.Password)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid login"})
		return
	}
	if err != nil {
		log.Printf("login: lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
