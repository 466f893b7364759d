package handlers

import (
	"net/http"
	"strings"
	"time"

	"marketplace-api/availability"
	"marketplace-api/config"
	"marketplace-api/lifecycle"
	"marketplace-api/middleware"
	"marketplace-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlaceOrderRequest struct {
	RestaurantID    uint   `json:"restaurant_id" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	Items           []struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required,min=1"`
		OptionIDs  []uint `json:"option_ids"`
	} `json:"items" binding:"required,min=1"`
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// PlaceOrder creates a new order (customer only)
func PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate restaurant exists and is open right now
	var restaurant models.Restaurant
	if err := config.DB.Preload("OpeningHours").First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !availability.IsOpenAt(restaurant.OpeningHours, time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant is currently closed"})
		return
	}

	// Build order items and calculate total
	var orderItems []models.OrderItem
	var total float64

	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.Preload("Options").First(&menuItem, reqItem.MenuItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item not found"})
			return
		}
		if menuItem.RestaurantID != req.RestaurantID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item does not belong to this restaurant"})
			return
		}
		if !menuItem.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + menuItem.Name + "' is not available"})
			return
		}

		// Unit price is base price plus every chosen option's delta
		unitPrice := menuItem.Price
		var chosen []models.OrderItemOption
		for _, optID := range reqItem.OptionIDs {
			var found bool
			for _, opt := range menuItem.Options {
				if opt.ID == optID {
					unitPrice += opt.PriceDelta
					chosen = append(chosen, models.OrderItemOption{Name: opt.Name, PriceDelta: opt.PriceDelta})
					found = true
					break
				}
			}
			if !found {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Option does not belong to menu item '" + menuItem.Name + "'"})
				return
			}
		}

		total += unitPrice * float64(reqItem.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   reqItem.Quantity,
			UnitPrice:  unitPrice,
			Name:       menuItem.Name,
			Options:    chosen,
		})
	}

	order := models.Order{
		Number:          newOrderNumber(),
		CustomerID:      customerID,
		RestaurantID:    req.RestaurantID,
		Status:          models.StatusPending,
		TotalPrice:      total + restaurant.DeliveryFee,
		DeliveryFee:     restaurant.DeliveryFee,
		DeliveryAddress: req.DeliveryAddress,
		Items:           orderItems,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	// Record initial status history
	history := models.OrderStatusHistory{
		OrderID:   order.ID,
		ToStatus:  models.StatusPending,
		ChangedBy: customerID,
		Note:      "Order placed by customer",
	}
	config.DB.Create(&history)

	config.DB.Preload("Items.Options").Preload("Restaurant").First(&order, order.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetMyOrders returns the customer's orders grouped into presentation buckets
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.Preload("Items.Options").Preload("Restaurant").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders)

	grouped := map[lifecycle.Bucket][]models.Order{}
	for _, bucket := range lifecycle.AllBuckets {
		grouped[bucket] = []models.Order{}
	}
	for _, o := range orders {
		bucket := lifecycle.BucketFor(o.Status)
		grouped[bucket] = append(grouped[bucket], o)
	}

	c.JSON(http.StatusOK, gin.H{"count": len(orders), "buckets": grouped})
}

// GetOrderDetail returns a single order's full detail with history
func GetOrderDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.
		Preload("Items.Options").
		Preload("Restaurant").
		Preload("StatusHistory").
		First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":      order,
		"bucket":     lifecycle.BucketFor(order.Status),
		"can_cancel": lifecycle.CanCancel(order.Status),
	})
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder cancels an order on the customer's behalf. Eligibility is
// checked before any transition work so an ineligible cancel never touches
// the order.
func CancelOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	// reason is optional; an empty body is fine
	var req CancelOrderRequest
	_ = c.ShouldBindJSON(&req)

	if !lifecycle.CanCancel(order.Status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"current_state": order.Status,
			"order":         order,
		})
		return
	}

	if err := lifecycle.CanTransition(order.Status, models.StatusCancelled, lifecycle.ActorCustomer); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"reason":        err.Error(),
			"current_state": order.Status,
			"order":         order,
		})
		return
	}

	prevStatus := order.Status
	config.DB.Model(&order).Updates(map[string]interface{}{
		"status":        models.StatusCancelled,
		"cancel_reason": req.Reason,
	})

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   models.StatusCancelled,
		ChangedBy:  customerID,
		Note:       "Order cancelled by customer: " + req.Reason,
	}
	config.DB.Create(&history)

	config.DB.First(&order, order.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": order})
}
