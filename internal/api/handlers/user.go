package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/middleware"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/utils"
)

// tokenTTL is the lifetime of issued session tokens.
const tokenTTL = 7 * 24 * time.Hour

// UserStore is the persistence surface the account endpoints need.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	SetTelegramChatID(ctx context.Context, userID, chatID string) error
}

// UserHandler serves registration, login and profile endpoints.
type UserHandler struct {
	store UserStore
	auth  *middleware.AuthMiddleware
	quota QuotaManager
}

func NewUserHandler(store UserStore, auth *middleware.AuthMiddleware, quota QuotaManager) *UserHandler {
	return &UserHandler{store: store, auth: auth, quota: quota}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	TelegramChatID string `json:"telegram_chat_id" binding:"required"`
}

// Register creates an account and returns it with a session token.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email and a password of at least 8 characters are required"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetByEmail(ctx, req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
		return
	} else if !isNotFound(err) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check user existence"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user, err := h.store.Create(ctx, req.Email, string(hash))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	token, err := h.auth.GenerateToken(user.ID, user.Email, tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// Login verifies credentials and returns a session token.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.store.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := h.auth.GenerateToken(user.ID, user.Email, tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Profile returns the authenticated user with their current quota.
func (h *UserHandler) Profile(c *gin.Context) {
	uid := c.GetString(middleware.ContextUserID)

	user, err := h.store.GetByID(c.Request.Context(), uid)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	body := gin.H{"user": user}
	if energy, err := h.quota.Status(c.Request.Context(), uid); err == nil {
		body["energy"] = energy
	}

	c.JSON(http.StatusOK, body)
}

// UpdateProfile links a Telegram chat to the account for price alerts.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.ContextUserID)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "telegram_chat_id is required"})
		return
	}

	if err := h.store.SetTelegramChatID(c.Request.Context(), uid, req.TelegramChatID); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func isNotFound(err error) bool {
	var notFound *utils.NotFoundError
	return errors.As(err, &notFound)
}
