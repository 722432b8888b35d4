package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monitool/backend/internal/models"
	"gorm.io/gorm"
)

// InventoryHandler exposes CRUD for the tools tracked inside a toolbox
type InventoryHandler struct {
	db *gorm.DB
}

func NewInventoryHandler(db *gorm.DB) *InventoryHandler {
	return &InventoryHandler{db: db}
}

// CreateItemRequest carries the fields for a new inventory item
type CreateItemRequest struct {
	ItemName        string `json:"item_name" binding:"required"`
	ItemDescription string `json:"item_description"`
	Quantity        int    `json:"quantity"`
	Status          string `json:"status"`
}

// ItemPatch is a partial update; only non-nil fields are applied
type ItemPatch struct {
	ItemName        *string    `json:"item_name"`
	ItemDescription *string    `json:"item_description"`
	Quantity        *int       `json:"quantity"`
	Status          *string    `json:"status"`
	LastVerified    *time.Time `json:"last_verified"`
}

// Create godoc
// @Summary Add an inventory item to a toolbox
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Toolbox ID"
// @Param item body CreateItemRequest true "Item details"
// @Success 201 {object} models.InventoryItem
// @Failure 404 {object} ErrorResponse
// @Router /toolboxes/{id}/items [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var toolbox models.Toolbox
	if err := h.db.Where("id = ?", c.Param("id")).First(&toolbox).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Toolbox not found"})
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	status := req.Status
	if status == "" {
		status = models.ItemStatusPresent
	}

	item := models.InventoryItem{
		ToolboxID:       toolbox.ID,
		ItemName:        req.ItemName,
		ItemDescription: req.ItemDescription,
		Quantity:        quantity,
		Status:          status,
	}
	if err := h.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to create inventory item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// List godoc
// @Summary List the inventory items of a toolbox
// @Tags inventory
// @Produce json
// @Param id path string true "Toolbox ID"
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {array} models.InventoryItem
// @Failure 404 {object} ErrorResponse
// @Router /toolboxes/{id}/items [get]
func (h *InventoryHandler) List(c *gin.Context) {
	var toolbox models.Toolbox
	if err := h.db.Where("id = ?", c.Param("id")).First(&toolbox).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Toolbox not found"})
		return
	}

	skip, limit := pagination(c)

	var items []models.InventoryItem
	err := h.db.Where("toolbox_id = ?", toolbox.ID).
		Offset(skip).Limit(limit).Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to fetch inventory items"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// Update godoc
// @Summary Partially update an inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param item body ItemPatch true "Fields to update"
// @Success 200 {object} models.InventoryItem
// @Failure 404 {object} ErrorResponse
// @Router /items/{id} [put]
func (h *InventoryHandler) Update(c *gin.Context) {
	var item models.InventoryItem
	if err := h.db.Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Inventory item not found"})
		return
	}

	var patch ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}

	if patch.ItemName != nil {
		item.ItemName = *patch.ItemName
	}
	if patch.ItemDescription != nil {
		item.ItemDescription = *patch.ItemDescription
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Status != nil {
		item.Status = *patch.Status
	}
	if patch.LastVerified != nil {
		item.LastVerified = patch.LastVerified
	}

	if err := h.db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to update inventory item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Remove an inventory item
// @Tags inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /items/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	var item models.InventoryItem
	if err := h.db.Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Inventory item not found"})
		return
	}

	if err := h.db.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to delete inventory item"})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Inventory item deleted successfully"})
}
