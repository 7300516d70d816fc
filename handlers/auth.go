package handlers

import (
	"net/http"
	"strings"
	"time"

	"tripplanner/database"
	"tripplanner/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// AuthHandler serves the credential endpoints.
type AuthHandler struct {
	Users *database.UserStore
}

// NewAuthHandler wires the auth endpoints to the user store.
func NewAuthHandler(users *database.UserStore) *AuthHandler {
	return &AuthHandler{Users: users}
}

// LoginHandler handles POST /api/auth/login. Credentials arrive form-encoded.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Username and password are required"})
		return
	}

	user, err := h.Users.GetByUsername(username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid username or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid username or password"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenLifetime)
	if err != nil {
		logger.Error("Failed to generate token", zap.String("username", username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Login failed, please try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "access_token": token})
}

// signupRequest is the JSON signup body.
type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupHandler handles POST /api/auth/signup.
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Password must be at least 6 characters"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Sign up failed, please try again"})
		return
	}

	if _, err := h.Users.Create(req.Username, string(hash)); err != nil {
		if err == database.ErrUsernameTaken {
			c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "Username already taken"})
			return
		}
		logger.Error("Failed to create user", zap.String("username", req.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Sign up failed, please try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Account created"})
}
