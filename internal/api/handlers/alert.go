package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/monitool/backend/internal/auth"
	"github.com/monitool/backend/internal/models"
	"gorm.io/gorm"
)

// AlertHandler exposes alert creation, listing and resolution
type AlertHandler struct {
	db  *gorm.DB
	svc *auth.Service
}

func NewAlertHandler(db *gorm.DB, svc *auth.Service) *AlertHandler {
	return &AlertHandler{db: db, svc: svc}
}

// CreateAlertRequest carries the fields for a new alert
type CreateAlertRequest struct {
	ToolboxID *uuid.UUID `json:"toolbox_id"`
	AlertType string     `json:"alert_type" binding:"required"`
	Severity  string     `json:"severity"`
	Message   string     `json:"message" binding:"required"`
}

// Create godoc
// @Summary Raise an alert
// @Tags alerts
// @Accept json
// @Produce json
// @Param alert body CreateAlertRequest true "Alert details"
// @Success 201 {object} models.Alert
// @Failure 404 {object} ErrorResponse
// @Router /alerts [post]
func (h *AlertHandler) Create(c *gin.Context) {
	var req CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}

	if req.ToolboxID != nil {
		var toolbox models.Toolbox
		if err := h.db.Where("id = ?", *req.ToolboxID).First(&toolbox).Error; err != nil {
			c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Toolbox not found"})
			return
		}
	}

	severity := req.Severity
	if severity == "" {
		severity = models.SeverityMedium
	}

	alert := models.Alert{
		ToolboxID: req.ToolboxID,
		AlertType: req.AlertType,
		Severity:  severity,
		Message:   req.Message,
	}
	if err := h.db.Create(&alert).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to create alert"})
		return
	}

	c.JSON(http.StatusCreated, alert)
}

// List godoc
// @Summary List alerts with optional severity and resolution filters
// @Tags alerts
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param severity query string false "Severity filter"
// @Param is_resolved query bool false "Resolution filter"
// @Success 200 {array} models.Alert
// @Failure 500 {object} ErrorResponse
// @Router /alerts [get]
func (h *AlertHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	query := h.db.Model(&models.Alert{})
	if severity := c.Query("severity"); severity != "" {
		query = query.Where("severity = ?", severity)
	}
	if resolved := c.Query("is_resolved"); resolved != "" {
		query = query.Where("is_resolved = ?", resolved == "true")
	}

	var alerts []models.Alert
	if err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&alerts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to fetch alerts"})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// Resolve godoc
// @Summary Mark an alert as resolved
// @Description When a valid bearer token accompanies the request the
// @Description resolving user is recorded.
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} models.Alert
// @Failure 404 {object} ErrorResponse
// @Router /alerts/{id}/resolve [put]
func (h *AlertHandler) Resolve(c *gin.Context) {
	var alert models.Alert
	if err := h.db.Where("id = ?", c.Param("id")).First(&alert).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Alert not found"})
		return
	}

	now := time.Now().UTC()
	alert.IsResolved = true
	alert.ResolvedAt = &now

	if token := bearerToken(c); token != "" {
		if user, err := h.svc.CurrentUser(token); err == nil {
			alert.ResolvedBy = &user.ID
		}
	}

	if err := h.db.Save(&alert).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to resolve alert"})
		return
	}

	c.JSON(http.StatusOK, alert)
}

// Delete godoc
// @Summary Delete an alert
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /alerts/{id} [delete]
func (h *AlertHandler) Delete(c *gin.Context) {
	var alert models.Alert
	if err := h.db.Where("id = ?", c.Param("id")).First(&alert).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Alert not found"})
		return
	}

	if err := h.db.Delete(&alert).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to delete alert"})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Alert deleted successfully"})
}
