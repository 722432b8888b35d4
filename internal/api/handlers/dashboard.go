package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monitool/backend/internal/models"
	"gorm.io/gorm"
)

// DashboardHandler exposes aggregate counters for the dashboard
type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// DashboardStats are the three dashboard counters
type DashboardStats struct {
	TotalCheckoutsToday int64 `json:"total_checkouts_today"`
	MissingItems        int   `json:"missing_items"`
	ActiveTechnicians   int64 `json:"active_technicians"`
}

// Stats godoc
// @Summary Dashboard counters for the current UTC day
// @Description missing_items is the items_missing value of the most recent
// @Description log that reported any, not a sum.
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardStats
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var stats DashboardStats

	err := h.db.Model(&models.AccessLog{}).
		Where("timestamp >= ?", dayStart).
		Count(&stats.TotalCheckoutsToday).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to compute stats"})
		return
	}

	var latestMissing models.AccessLog
	err = h.db.Where("items_missing > 0").
		Order("timestamp DESC").
		First(&latestMissing).Error
	if err == nil {
		stats.MissingItems = latestMissing.ItemsMissing
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to compute stats"})
		return
	}

	err = h.db.Model(&models.AccessLog{}).
		Where("timestamp >= ?", dayStart).
		Distinct("technician_id").
		Count(&stats.ActiveTechnicians).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
