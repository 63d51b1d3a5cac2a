package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/levelup-gaming/levelup-api/cart"
	"github.com/levelup-gaming/levelup-api/middlewares"
	"github.com/levelup-gaming/levelup-api/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OrderController persists completed checkouts and serves purchase
// history. It implements cart.OrderRecorder.
type OrderController struct {
	db *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{db: db}
}

func (c *OrderController) RecordOrder(ctx context.Context, owner string, receipt cart.Receipt, lines []cart.PricedLine) error {
	order := models.Order{
		OwnerKey:      owner,
		ReceiptNumber: receipt.Number,
		PaymentMethod: receipt.Method,
		Total:         receipt.Total,
	}

	tx := c.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return err
	}

	for _, line := range lines {
		item := models.OrderItem{
			OrderID:   int(order.ID),
			ProductId: line.ProductId,
			Name:      line.Name,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}

// GetOrders lists the authenticated user's completed checkouts, newest
// first.
func (c *OrderController) GetOrders(ctx *gin.Context) {
	owner, ok := middlewares.OwnerKey(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	var orders []models.Order
	result := c.db.
		Where("owner_key = ?", owner).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders)
	if result.Error != nil {
		logrus.Errorf("Database error fetching orders: %v", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}
