// File: /controllers/inventory_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"motorestore-api/models"
	"motorestore-api/utils"
)

// InventoryController is plain CRUD over shared parts and supplies; items
// have no relationship to motors or cost entries.
type InventoryController struct {
	db *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{db: db}
}

type CreateInventoryItemRequest struct {
	Name         string           `json:"name" binding:"required"`
	Quantity     int              `json:"quantity"`
	Cost         *decimal.Decimal `json:"cost"`
	PaidBy       string           `json:"paid_by"`
	PaymentClear bool             `json:"payment_clear"`
}

type UpdateInventoryItemRequest struct {
	Name         *string          `json:"name"`
	Quantity     *int             `json:"quantity"`
	Cost         *decimal.Decimal `json:"cost"`
	PaidBy       *string          `json:"paid_by"`
	PaymentClear *bool            `json:"payment_clear"`
}

func (ic *InventoryController) GetItems(c *gin.Context) {
	var items []models.InventoryItem
	if err := ic.db.Order("created_at DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (ic *InventoryController) CreateItem(c *gin.Context) {
	var req CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidQuantity(req.Quantity) {
		utils.SendValidationError(c, "quantity must not be negative")
		return
	}
	if req.PaidBy != "" && !models.IsValidPaidBy(req.PaidBy) {
		utils.SendValidationError(c, "paid_by must be one of dh, ks, zc")
		return
	}

	item := models.InventoryItem{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Quantity:     req.Quantity,
		PaidBy:       req.PaidBy,
		PaymentClear: req.PaymentClear,
	}
	if req.Cost != nil {
		item.Cost = *req.Cost
	}

	if err := ic.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inventory item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (ic *InventoryController) UpdateItem(c *gin.Context) {
	itemID := c.Param("id")

	var item models.InventoryItem
	if err := ic.db.First(&item, "id = ?", itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}

	var req UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil && *req.Name == "" {
		utils.SendValidationError(c, "name must not be empty")
		return
	}
	if req.Quantity != nil && !utils.IsValidQuantity(*req.Quantity) {
		utils.SendValidationError(c, "quantity must not be negative")
		return
	}
	if req.PaidBy != nil && *req.PaidBy != "" && !models.IsValidPaidBy(*req.PaidBy) {
		utils.SendValidationError(c, "paid_by must be one of dh, ks, zc")
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Cost != nil {
		updates["cost"] = *req.Cost
	}
	if req.PaidBy != nil {
		updates["paid_by"] = *req.PaidBy
	}
	if req.PaymentClear != nil {
		updates["payment_clear"] = *req.PaymentClear
	}

	if err := ic.db.Model(&item).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inventory item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inventory item updated successfully"})
}

func (ic *InventoryController) DeleteItem(c *gin.Context) {
	itemID := c.Param("id")

	var item models.InventoryItem
	if err := ic.db.First(&item, "id = ?", itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}

	if err := ic.db.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inventory item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted successfully"})
}
