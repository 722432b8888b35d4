package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monitool/backend/internal/models"
	"gorm.io/gorm"
)

// TechnicianHandler exposes technician CRUD and NFC lookup
type TechnicianHandler struct {
	db *gorm.DB
}

func NewTechnicianHandler(db *gorm.DB) *TechnicianHandler {
	return &TechnicianHandler{db: db}
}

// CreateTechnicianRequest carries the fields for a new technician
type CreateTechnicianRequest struct {
	NFCCardUID string `json:"nfc_card_uid" binding:"required"`
	EmployeeID string `json:"employee_id" binding:"required"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

// TechnicianPatch is a partial update; only non-nil fields are applied
type TechnicianPatch struct {
	NFCCardUID *string `json:"nfc_card_uid"`
	EmployeeID *string `json:"employee_id"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Status     *string `json:"status"`
}

// Create godoc
// @Summary Create a technician
// @Tags technicians
// @Accept json
// @Produce json
// @Param technician body CreateTechnicianRequest true "Technician details"
// @Success 201 {object} models.Technician
// @Failure 400 {object} ErrorResponse
// @Router /technicians [post]
func (h *TechnicianHandler) Create(c *gin.Context) {
	var req CreateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}

	var existing models.Technician
	if err := h.db.Where("nfc_card_uid = ?", req.NFCCardUID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "NFC card UID already registered"})
		return
	}
	if err := h.db.Where("employee_id = ?", req.EmployeeID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Employee ID already registered"})
		return
	}

	technician := models.Technician{
		NFCCardUID: req.NFCCardUID,
		EmployeeID: req.EmployeeID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Status:     models.TechnicianStatusActive,
	}
	if err := h.db.Create(&technician).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to create technician"})
		return
	}

	c.JSON(http.StatusCreated, technician)
}

// List godoc
// @Summary List technicians
// @Tags technicians
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {array} models.Technician
// @Failure 500 {object} ErrorResponse
// @Router /technicians [get]
func (h *TechnicianHandler) List(c *gin.Context) {
	skip, limit := pagination(c)

	var technicians []models.Technician
	if err := h.db.Offset(skip).Limit(limit).Find(&technicians).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to fetch technicians"})
		return
	}

	c.JSON(http.StatusOK, technicians)
}

// GetByNFC godoc
// @Summary Look up a technician by NFC card UID
// @Description Primary lookup used by field hardware when a card is scanned
// @Tags technicians
// @Produce json
// @Param uid path string true "NFC card UID"
// @Success 200 {object} models.Technician
// @Failure 404 {object} ErrorResponse
// @Router /technicians/by-nfc/{uid} [get]
func (h *TechnicianHandler) GetByNFC(c *gin.Context) {
	var technician models.Technician
	err := h.db.Where("nfc_card_uid = ?", c.Param("uid")).First(&technician).Error
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Technician not found"})
		return
	}

	c.JSON(http.StatusOK, technician)
}

// Update godoc
// @Summary Partially update a technician
// @Tags technicians
// @Accept json
// @Produce json
// @Param id path string true "Technician ID"
// @Param technician body TechnicianPatch true "Fields to update"
// @Success 200 {object} models.Technician
// @Failure 404 {object} ErrorResponse
// @Router /technicians/{id} [put]
func (h *TechnicianHandler) Update(c *gin.Context) {
	var technician models.Technician
	if err := h.db.Where("id = ?", c.Param("id")).First(&technician).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Technician not found"})
		return
	}

	var patch TechnicianPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		return
	}

	if patch.NFCCardUID != nil {
		technician.NFCCardUID = *patch.NFCCardUID
	}
	if patch.EmployeeID != nil {
		technician.EmployeeID = *patch.EmployeeID
	}
	if patch.FirstName != nil {
		technician.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		technician.LastName = *patch.LastName
	}
	if patch.Email != nil {
		technician.Email = *patch.Email
	}
	if patch.Phone != nil {
		technician.Phone = *patch.Phone
	}
	if patch.Department != nil {
		technician.Department = *patch.Department
	}
	if patch.Status != nil {
		technician.Status = *patch.Status
	}

	if err := h.db.Save(&technician).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to update technician"})
		return
	}

	c.JSON(http.StatusOK, technician)
}

// Delete godoc
// @Summary Delete a technician and its access logs
// @Tags technicians
// @Produce json
// @Param id path string true "Technician ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /technicians/{id} [delete]
func (h *TechnicianHandler) Delete(c *gin.Context) {
	var technician models.Technician
	if err := h.db.Where("id = ?", c.Param("id")).First(&technician).Error; err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Technician not found"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("technician_id = ?", technician.ID).Delete(&models.AccessLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&technician).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Failed to delete technician"})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Technician deleted successfully"})
}
