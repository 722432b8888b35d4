package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monitool/backend/internal/models"
	"gorm.io/gorm"
)

// UserHandler exposes user listing
type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {array} models.User
// @Failure 500 {object} ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	var users []models.User
	if err := h.db.Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, users)
}
