// File: /controllers/cost_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"motorestore-api/services"
	"motorestore-api/utils"
)

type CostController struct {
	ledger *services.LedgerService
}

func NewCostController(ledger *services.LedgerService) *CostController {
	return &CostController{ledger: ledger}
}

type CreateCostRequest struct {
	Description  string          `json:"description" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	PaidBy       string          `json:"paid_by" binding:"required"`
	Date         *time.Time      `json:"date"`
	PaymentClear bool            `json:"payment_clear"`
	Receipt      *string         `json:"receipt"`
}

type UpdateCostRequest struct {
	Description  *string          `json:"description"`
	Amount       *decimal.Decimal `json:"amount"`
	PaidBy       *string          `json:"paid_by"`
	Date         *time.Time       `json:"date"`
	PaymentClear *bool            `json:"payment_clear"`
	Receipt      *string          `json:"receipt"`
}

func (cc *CostController) GetCosts(c *gin.Context) {
	motorID := c.Param("id")

	costs, err := cc.ledger.CostsByMotor(motorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cost entries"})
		return
	}

	c.JSON(http.StatusOK, costs)
}

func (cc *CostController) CreateCost(c *gin.Context) {
	motorID := c.Param("id")

	var req CreateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	entry, err := cc.ledger.AddCostEntry(motorID, services.CostEntryInput{
		Description:  req.Description,
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		Date:         date,
		PaymentClear: req.PaymentClear,
		Receipt:      req.Receipt,
	})
	if err != nil {
		if services.IsValidation(err) {
			utils.SendValidationError(c, err.Error())
			return
		}
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Motor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cost entry"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (cc *CostController) UpdateCost(c *gin.Context) {
	costID := c.Param("id")

	var req UpdateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := cc.ledger.UpdateCostEntry(costID, services.CostEntryUpdate{
		Description:  req.Description,
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		Date:         req.Date,
		PaymentClear: req.PaymentClear,
		Receipt:      req.Receipt,
	})
	if err != nil {
		if services.IsValidation(err) {
			utils.SendValidationError(c, err.Error())
			return
		}
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cost entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cost entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cost entry updated successfully"})
}

func (cc *CostController) DeleteCost(c *gin.Context) {
	costID := c.Param("id")

	if err := cc.ledger.DeleteCostEntry(costID); err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cost entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cost entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cost entry deleted successfully"})
}

func (cc *CostController) ClearAllPayments(c *gin.Context) {
	motorID := c.Param("id")

	if err := cc.ledger.ClearAllPayments(motorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All payments marked as cleared"})
}
