package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monitool/backend/internal/models"
	"github.com/monitool/backend/internal/storage"
	"gorm.io/gorm"
)

// ToolboxHandler exposes toolbox CRUD
type ToolboxHandler struct {
	db      *gorm.DB
	storage *storage.Service
}

func NewToolboxHandler(db *gorm.DB, store *storage.Service) *ToolboxHandler {
	return &ToolboxHandler{db: db, storage: store}
}

// CreateToolboxRequest carries the fields for a new toolbox
type CreateToolboxRequest struct {
	Name                string  `json:"name" binding:"required"`
	Zone                string  `json:"zone"`
	LocationDescription string  `json:"location_description"`
	RaspberryPiSerial   *string `json:"raspberry_pi_serial"`
	TotalItems          int     `json:"total_items"`
	ImageURL            string  `json:"image_url"`
}

// ToolboxPatch is a partial update; only non-nil fields are applied
type ToolboxPatch struct {
	Name                *string `json:"name"`
	Zone                *string `json:"zone"`
	LocationDescription *string `json:"location_description"`
	RaspberryPiSerial   *string `json:"raspberry_pi_serial"`
	Status              *string `json:"status"`
	TotalItems          *int    `json:"total_items"`
	ImageURL            *string `json:"image_url"`
}

// Create godoc
// @Summary Create a toolbox
// @Tags toolboxes
// @Accept json
// @Produce json
// @Param toolbox body CreateToolboxRequest true "Toolbox details"
// @Success 201 {object} models.Toolbox
// @Failure 400 {object} ErrorResponse
// @Router /toolboxes [post]
func (h *ToolboxHandler) Create(c *gin.Context) {
	var req CreateToolboxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}

	var existing models.Toolbox
	if err := h.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Toolbox name already exists"})
		return
	}

	toolbox := models.Toolbox{
		Name:                req.Name,
		Zone:                req.Zone,
		LocationDescription: req.LocationDescription,
		RaspberryPiSerial:   req.RaspberryPiSerial,
		Status:              models.ToolboxStatusOperational,
		TotalItems:          req.TotalItems,
		ImageURL:            req.ImageURL,
	}
	if err := h.db.Create(&toolbox).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to create toolbox"})
		return
	}

	c.JSON(http.StatusCreated, toolbox)
}

// List godoc
// @Summary List toolboxes with optional zone and status filters
// @Tags toolboxes
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param zone query string false "Zone filter"
// @Param status query string false "Status filter"
// @Success 200 {array} models.Toolbox
// @Failure 500 {object} ErrorResponse
// @Router /toolboxes [get]
func (h *ToolboxHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	query := h.db.Model(&models.Toolbox{})
	if zone := c.Query("zone"); zone != "" {
		query = query.Where("zone = ?", zone)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var toolboxes []models.Toolbox
	if err := query.Offset(skip).Limit(limit).Find(&toolboxes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to fetch toolboxes"})
		return
	}

	c.JSON(http.StatusOK, toolboxes)
}

// Get godoc
// @Summary Get a toolbox by ID
// @Tags toolboxes
// @Produce json
// @Param id path string true "Toolbox ID"
// @Success 200 {object} models.Toolbox
// @Failure 404 {object} ErrorResponse
// @Router /toolboxes/{id} [get]
func (h *ToolboxHandler) Get(c *gin.Context) {
	var toolbox models.Toolbox
	if err := h.db.Where("id = ?", c.Param("id")).First(&toolbox).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Toolbox not found"})
		return
	}

	c.JSON(http.StatusOK, toolbox)
}

// Update godoc
// @Summary Partially update a toolbox
// @Tags toolboxes
// @Accept json
// @Produce json
// @Param id path string true "Toolbox ID"
// @Param toolbox body ToolboxPatch true "Fields to update"
// @Success 200 {object} models.Toolbox
// @Failure 404 {object} ErrorResponse
// @Router /toolboxes/{id} [put]
func (h *ToolboxHandler) Update(c *gin.Context) {
	var toolbox models.Toolbox
	if err := h.db.Where("id = ?", c.Param("id")).First(&toolbox).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Toolbox not found"})
		return
	}

	var patch ToolboxPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}

	if patch.Name != nil {
		toolbox.Name = *patch.Name
	}
	if patch.Zone != nil {
		toolbox.Zone = *patch.Zone
	}
	if patch.LocationDescription != nil {
		toolbox.LocationDescription = *patch.LocationDescription
	}
	if patch.RaspberryPiSerial != nil {
		toolbox.RaspberryPiSerial = patch.RaspberryPiSerial
	}
	if patch.Status != nil {
		toolbox.Status = *patch.Status
	}
	if patch.TotalItems != nil {
		toolbox.TotalItems = *patch.TotalItems
	}
	if patch.ImageURL != nil {
		toolbox.ImageURL = *patch.ImageURL
	}

	if err := h.db.Save(&toolbox).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to update toolbox"})
		return
	}

	c.JSON(http.StatusOK, toolbox)
}

// Delete godoc
// @Summary Delete a toolbox, its items, logs, image rows and stored image
// @Tags toolboxes
// @Produce json
// @Param id path string true "Toolbox ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /toolboxes/{id} [delete]
func (h *ToolboxHandler) Delete(c *gin.Context) {
	var toolbox models.Toolbox
	if err := h.db.Where("id = ?", c.Param("id")).First(&toolbox).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Toolbox not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("toolbox_id = ?", toolbox.ID).Delete(&models.InventoryItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("toolbox_id = ?", toolbox.ID).Delete(&models.AccessLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("toolbox_id = ?", toolbox.ID).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&toolbox).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to delete toolbox"})
		return
	}

	// Remove the stored file only once the rows are gone, so a failed
	// delete never leaves image_url pointing at nothing.
	if toolbox.ImageURL != "" {
		h.storage.DeleteImage(toolbox.ImageURL)
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Toolbox deleted successfully"})
}
