package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/monitool/backend/internal/auth"
)

// AuthHandler exposes registration, login and token introspection
type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body auth.RegisterRequest true "User details"
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}

	user, err := h.svc.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Username already registered"})
		case errors.Is(err, auth.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Email already registered"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Login and get a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body auth.LoginRequest true "Login credentials"
// @Success 200 {object} auth.TokenPair
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}

	pair, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Detail: "Incorrect username or password"})
		case errors.Is(err, auth.ErrInactiveAccount):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Detail: "User account is inactive"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Me godoc
// @Summary Resolve the bearer token to the current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Detail: "Could not validate credentials"})
		return
	}

	user, err := h.svc.CurrentUser(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Detail: "Could not validate credentials"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// bearerToken extracts the token from the Authorization header
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
