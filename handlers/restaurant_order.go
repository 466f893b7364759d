package handlers

import (
	"net/http"

	"marketplace-api/config"
	"marketplace-api/lifecycle"
	"marketplace-api/middleware"
	"marketplace-api/models"

	"github.com/gin-gonic/gin"
)

// GetRestaurantOrders returns the partner's order board grouped into
// presentation buckets, with per-bucket counts for the tab badges
func GetRestaurantOrders(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	var orders []models.Order
	query := config.DB.Preload("Items.Options").Preload("Customer").
		Where("restaurant_id = ?", restaurant.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	query.Order("created_at desc").Find(&orders)

	grouped := map[lifecycle.Bucket][]models.Order{}
	counts := map[lifecycle.Bucket]int{}
	for _, bucket := range lifecycle.AllBuckets {
		grouped[bucket] = []models.Order{}
		counts[bucket] = 0
	}
	for _, o := range orders {
		bucket := lifecycle.BucketFor(o.Status)
		grouped[bucket] = append(grouped[bucket], o)
		counts[bucket]++
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":    restaurant.Name,
		"count":         len(orders),
		"bucket_counts": counts,
		"buckets":       grouped,
	})
}

// transitionOrder runs one state machine step on behalf of the restaurant.
// The transition either succeeds and the refreshed order is returned, or is
// rejected with the authoritative current order so the caller can discard
// its stale view.
func transitionOrder(c *gin.Context, to models.OrderStatus, note string) {
	ownerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your restaurant"})
		return
	}

	if err := lifecycle.CanTransition(order.Status, to, lifecycle.ActorRestaurant); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         to,
			"reason":            err.Error(),
			"valid_next_states": lifecycle.ValidTransitionsFrom(order.Status),
			"order":             order,
		})
		return
	}

	prevStatus := order.Status
	config.DB.Model(&order).Update("status", to)

	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   to,
		ChangedBy:  ownerID,
		Note:       note,
	}
	config.DB.Create(&history)

	// respond with the authoritative row, not the optimistic local copy
	config.DB.Preload("Items.Options").First(&order, order.ID)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"previous_status": prevStatus,
		"order":           order,
	})
}

// ConfirmOrder moves a pending order to CONFIRMED
func ConfirmOrder(c *gin.Context) {
	transitionOrder(c, models.StatusConfirmed, "Order confirmed by restaurant")
}

// StartPreparation moves a confirmed order to PREPARING. Wired to the
// /ready endpoint the partner UI calls.
func StartPreparation(c *gin.Context) {
	transitionOrder(c, models.StatusPreparing, "Preparation started")
}

// DispatchOrder hands a prepared order to delivery (PREPARING → DELIVERING)
func DispatchOrder(c *gin.Context) {
	transitionOrder(c, models.StatusDelivering, "Order handed to delivery")
}

// CompleteOrder confirms delivery (DELIVERING → COMPLETED)
func CompleteOrder(c *gin.Context) {
	transitionOrder(c, models.StatusCompleted, "Delivery confirmed")
}

type RestaurantCancelRequest struct {
	Reason string `json:"reason"`
}

// RestaurantCancelOrder cancels an order on the restaurant's behalf. The
// eligibility predicate runs first: once a delivery is in motion the
// restaurant can no longer unilaterally cancel.
func RestaurantCancelOrder(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your restaurant"})
		return
	}

	var req RestaurantCancelRequest
	_ = c.ShouldBindJSON(&req)

	if !lifecycle.CanCancel(order.Status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"current_state": order.Status,
			"order":         order,
		})
		return
	}

	if err := lifecycle.CanTransition(order.Status, models.StatusCancelled, lifecycle.ActorRestaurant); err != nil {
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
		ChangedBy:  ownerID,
		Note:       "Order cancelled by restaurant: " + req.Reason,
	}
	config.DB.Create(&history)

	config.DB.First(&order, order.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order": order})
}
