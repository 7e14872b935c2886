// File: /controllers/motor_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"motorestore-api/models"
	"motorestore-api/services"
	"motorestore-api/utils"
)

type MotorController struct {
	db     *gorm.DB
	ledger *services.LedgerService
}

func NewMotorController(db *gorm.DB, ledger *services.LedgerService) *MotorController {
	return &MotorController{db: db, ledger: ledger}
}

// MotorView wraps a motor with the derived ledger fields the cards and
// detail page need
type MotorView struct {
	models.Motor
	Status          models.MotorStatus `json:"status"`
	TotalInvestment decimal.Decimal    `json:"total_investment"`
	Profit          decimal.Decimal    `json:"profit"`
}

func newMotorView(m models.Motor) MotorView {
	return MotorView{
		Motor:           m,
		Status:          m.Status(),
		TotalInvestment: m.TotalInvestment(),
		Profit:          m.Profit(),
	}
}

type CreateMotorRequest struct {
	CarPlate      string           `json:"car_plate" binding:"required"`
	Name          string           `json:"name" binding:"required"`
	Year          *int             `json:"year"`
	PreviousOwner string           `json:"previous_owner"`
	ChangedName   bool             `json:"changed_name"`
	PaidBy        string           `json:"paid_by"`
	BoughtInDate  *time.Time       `json:"bought_in_date"`
	ListingDate   *time.Time       `json:"listing_date"`
	SoldDate      *time.Time       `json:"sold_date"`
	BoughtInCost  *decimal.Decimal `json:"bought_in_cost"`
	SoldPrice     *decimal.Decimal `json:"sold_price"`
}

// UpdateMotorRequest is a partial update. Lifecycle dates move the motor
// up the state machine when set and back down when cleared via the
// explicit clear flags; selling without ever listing is legal.
type UpdateMotorRequest struct {
	CarPlate      *string          `json:"car_plate"`
	Name          *string          `json:"name"`
	Year          *int             `json:"year"`
	PreviousOwner *string          `json:"previous_owner"`
	ChangedName   *bool            `json:"changed_name"`
	PaidBy        *string          `json:"paid_by"`
	Clear         *bool            `json:"clear"`
	BoughtInDate  *time.Time       `json:"bought_in_date"`
	ListingDate   *time.Time       `json:"listing_date"`
	SoldDate      *time.Time       `json:"sold_date"`
	BoughtInCost  *decimal.Decimal `json:"bought_in_cost"`
	SoldPrice     *decimal.Decimal `json:"sold_price"`

	ClearBoughtInDate bool `json:"clear_bought_in_date"`
	ClearListingDate  bool `json:"clear_listing_date"`
	ClearSoldDate     bool `json:"clear_sold_date"`
	ClearSoldPrice    bool `json:"clear_sold_price"`
}

func (mc *MotorController) GetMotors(c *gin.Context) {
	var motors []models.Motor
	if err := mc.db.Order("created_at DESC").Find(&motors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch motors"})
		return
	}

	views := make([]MotorView, 0, len(motors))
	for _, motor := range motors {
		views = append(views, newMotorView(motor))
	}

	c.JSON(http.StatusOK, views)
}

func (mc *MotorController) GetMotor(c *gin.Context) {
	motorID := c.Param("id")

	var motor models.Motor
	if err := mc.db.First(&motor, "id = ?", motorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Motor not found"})
		return
	}

	costs, err := mc.ledger.CostsByMotor(motorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cost entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"motor": newMotorView(motor),
		"costs": costs,
	})
}

func (mc *MotorController) CreateMotor(c *gin.Context) {
	var req CreateMotorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.PaidBy != "" && !models.IsValidPaidBy(req.PaidBy) {
		utils.SendValidationError(c, "paid_by must be one of dh, ks, zc")
		return
	}
	if req.Year != nil && !utils.IsValidYear(*req.Year) {
		utils.SendValidationError(c, "year is out of range")
		return
	}

	motor := models.Motor{
		ID:            uuid.New().String(),
		CarPlate:      utils.NormalizeCarPlate(req.CarPlate),
		Name:          req.Name,
		Year:          req.Year,
		PreviousOwner: req.PreviousOwner,
		ChangedName:   req.ChangedName,
		PaidBy:        req.PaidBy,
		BoughtInDate:  req.BoughtInDate,
		ListingDate:   req.ListingDate,
		SoldDate:      req.SoldDate,
		BoughtInCost:  req.BoughtInCost,
		SoldPrice:     req.SoldPrice,
		RestoreCost:   decimal.Zero,
		Images:        models.StringSliceType{},
		Videos:        models.StringSliceType{},
	}

	if err := mc.db.Create(&motor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create motor"})
		return
	}

	c.JSON(http.StatusCreated, newMotorView(motor))
}

func (mc *MotorController) UpdateMotor(c *gin.Context) {
	motorID := c.Param("id")

	var motor models.Motor
	if err := mc.db.First(&motor, "id = ?", motorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Motor not found"})
		return
	}

	var req UpdateMotorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.PaidBy != nil && *req.PaidBy != "" && !models.IsValidPaidBy(*req.PaidBy) {
		utils.SendValidationError(c, "paid_by must be one of dh, ks, zc")
		return
	}
	if req.Year != nil && !utils.IsValidYear(*req.Year) {
		utils.SendValidationError(c, "year is out of range")
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if req.CarPlate != nil {
		updates["car_plate"] = utils.NormalizeCarPlate(*req.CarPlate)
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.PreviousOwner != nil {
		updates["previous_owner"] = *req.PreviousOwner
	}
	if req.ChangedName != nil {
		updates["changed_name"] = *req.ChangedName
	}
	if req.PaidBy != nil {
		updates["paid_by"] = *req.PaidBy
	}
	if req.Clear != nil {
		updates["clear"] = *req.Clear
	}
	if req.BoughtInDate != nil {
		updates["bought_in_date"] = *req.BoughtInDate
	}
	if req.ListingDate != nil {
		updates["listing_date"] = *req.ListingDate
	}
	if req.SoldDate != nil {
		updates["sold_date"] = *req.SoldDate
	}
	if req.BoughtInCost != nil {
		updates["bought_in_cost"] = *req.BoughtInCost
	}
	if req.SoldPrice != nil {
		updates["sold_price"] = *req.SoldPrice
	}
	if req.ClearBoughtInDate {
		updates["bought_in_date"] = nil
	}
	if req.ClearListingDate {
		updates["listing_date"] = nil
	}
	if req.ClearSoldDate {
		updates["sold_date"] = nil
	}
	if req.ClearSoldPrice {
		updates["sold_price"] = nil
	}

	if err := mc.db.Model(&motor).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update motor"})
		return
	}

	if err := mc.db.First(&motor, "id = ?", motorID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload motor"})
		return
	}

	c.JSON(http.StatusOK, newMotorView(motor))
}

func (mc *MotorController) DeleteMotor(c *gin.Context) {
	motorID := c.Param("id")

	if err := mc.ledger.DeleteMotor(motorID); err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Motor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete motor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Motor and its cost entries deleted successfully"})
}

// GetSummary returns the fleet-level totals for the summary page
func (mc *MotorController) GetSummary(c *gin.Context) {
	var motors []models.Motor
	if err := mc.db.Order("created_at DESC").Find(&motors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch motors"})
		return
	}

	totalInvestment := decimal.Zero
	totalRevenue := decimal.Zero
	realizedProfit := decimal.Zero
	counts := map[models.MotorStatus]int{}

	for _, motor := range motors {
		totalInvestment = totalInvestment.Add(motor.TotalInvestment())
		counts[motor.Status()]++

		if motor.Status() == models.StatusSold {
			if motor.SoldPrice != nil {
				totalRevenue = totalRevenue.Add(*motor.SoldPrice)
			}
			realizedProfit = realizedProfit.Add(motor.Profit())
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_motors":     len(motors),
		"in_progress":      counts[models.StatusInProgress],
		"listed":           counts[models.StatusListed],
		"sold":             counts[models.StatusSold],
		"total_investment": totalInvestment,
		"total_revenue":    totalRevenue,
		"realized_profit":  realizedProfit,
	})
}
