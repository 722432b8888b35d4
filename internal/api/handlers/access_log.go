package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/monitool/backend/internal/models"
	"gorm.io/gorm"
)

// AccessLogHandler exposes access-log creation, listing and deletion.
// Logs are immutable once created; there is no update path.
type AccessLogHandler struct {
	db *gorm.DB
}

func NewAccessLogHandler(db *gorm.DB) *AccessLogHandler {
	return &AccessLogHandler{db: db}
}

// CreateAccessLogRequest carries the fields for a new access log entry
type CreateAccessLogRequest struct {
	ToolboxID         uuid.UUID `json:"toolbox_id" binding:"required"`
	TechnicianID      uuid.UUID `json:"technician_id" binding:"required"`
	ActionType        string    `json:"action_type" binding:"required"`
	BeforeImageID     string    `json:"before_image_id"`
	AfterImageID      string    `json:"after_image_id"`
	ConditionImageURL string    `json:"condition_image_url"`
	ItemsBefore       int       `json:"items_before"`
	ItemsAfter        int       `json:"items_after"`
	ItemsMissing      int       `json:"items_missing"`
	MissingItemsList  string    `json:"missing_items_list"`
	Notes             string    `json:"notes"`
	IPAddress         string    `json:"ip_address"`
}

// Create godoc
// @Summary Record an access event
// @Description Both the referenced toolbox and technician must exist
// @Tags access-logs
// @Accept json
// @Produce json
// @Param log body CreateAccessLogRequest true "Access event"
// @Success 201 {object} models.AccessLog
// @Failure 404 {object} ErrorResponse
// @Router /access-logs [post]
func (h *AccessLogHandler) Create(c *gin.Context) {
	var req CreateAccessLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}

	var toolbox models.Toolbox
	if err := h.db.Where("id = ?", req.ToolboxID).First(&toolbox).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Toolbox not found"})
		return
	}
	var technician models.Technician
	if err := h.db.Where("id = ?", req.TechnicianID).First(&technician).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Technician not found"})
		return
	}

	log := models.AccessLog{
		ToolboxID:         req.ToolboxID,
		TechnicianID:      req.TechnicianID,
		ActionType:        req.ActionType,
		BeforeImageID:     req.BeforeImageID,
		AfterImageID:      req.AfterImageID,
		ConditionImageURL: req.ConditionImageURL,
		ItemsBefore:       req.ItemsBefore,
		ItemsAfter:        req.ItemsAfter,
		ItemsMissing:      req.ItemsMissing,
		MissingItemsList:  req.MissingItemsList,
		Notes:             req.Notes,
		IPAddress:         req.IPAddress,
	}
	if err := h.db.Create(&log).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to create access log"})
		return
	}

	c.JSON(http.StatusCreated, log)
}

// List godoc
// @Summary List access logs, newest first
// @Tags access-logs
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param toolbox_id query string false "Toolbox filter"
// @Param technician_id query string false "Technician filter"
// @Success 200 {array} models.AccessLog
// @Failure 500 {object} ErrorResponse
// @Router /access-logs [get]
func (h *AccessLogHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	query := h.db.Model(&models.AccessLog{})
	if id := c.Query("toolbox_id"); id != "" {
		query = query.Where("toolbox_id = ?", id)
	}
	if id := c.Query("technician_id"); id != "" {
		query = query.Where("technician_id = ?", id)
	}

	var logs []models.AccessLog
	if err := query.Order("timestamp DESC").Offset(skip).Limit(limit).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to fetch access logs"})
		return
	}

	c.JSON(http.StatusOK, logs)
}

// Delete godoc
// @Summary Delete an access log entry
// @Tags access-logs
// @Produce json
// @Param id path string true "Access log ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /access-logs/{id} [delete]
func (h *AccessLogHandler) Delete(c *gin.Context) {
	var log models.AccessLog
	if err := h.db.Where("id = ?", c.Param("id")).First(&log).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Access log not found"})
		return
	}

	if err := h.db.Delete(&log).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to delete access log"})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Access log deleted successfully"})
}
