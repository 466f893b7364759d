package handlers

import (
	"net/http"
	"time"

	"marketplace-api/availability"
	"marketplace-api/config"
	"marketplace-api/lifecycle"
	"marketplace-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// restaurantView decorates a restaurant with its computed availability
type restaurantView struct {
	models.Restaurant
	OpenNow bool                  `json:"open_now"`
	OpensAt *availability.Opening `json:"opens_at,omitempty"`
}

func viewOf(r models.Restaurant, now time.Time) restaurantView {
	view := restaurantView{Restaurant: r, OpenNow: availability.IsOpenAt(r.OpeningHours, now)}
	if !view.OpenNow {
		// a fully closed schedule has no next opening; the field stays absent
		if next, ok := availability.NextOpening(r.OpeningHours, now); ok {
			view.OpensAt = &next
		}
	}
	return view
}

// ListRestaurants returns all restaurants with open-now labeling (public)
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB.Preload("OpeningHours")

	if cuisine := c.Query("cuisine"); cuisine != "" {
		query = query.Where("cuisine LIKE ?", "%"+cuisine+"%")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	query.Find(&restaurants)

	now := time.Now()
	views := make([]restaurantView, 0, len(restaurants))
	for _, r := range restaurants {
		view := viewOf(r, now)
		if c.Query("open") == "true" && !view.OpenNow {
			continue
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"count":       len(views),
		"restaurants": views,
	})
}

// GetRestaurant returns a single restaurant with schedule and availability
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.
		Preload("OpeningHours", func(db *gorm.DB) *gorm.DB { return db.Order("day asc") }).
		Preload("MenuItems.Options").
		First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": viewOf(restaurant, time.Now())})
}

// GetMenu returns the menu for a specific restaurant (public)
func GetMenu(c *gin.Context) {
	restaurantID := c.Param("id")
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var items []models.MenuItem
	query := config.DB.Preload("Options").Where("restaurant_id = ?", restaurantID)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("available") == "true" {
		query = query.Where("is_available = ?", true)
	}
	query.Find(&items)

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(items),
		"menu":       items,
	})
}

// GetStateMachineInfo returns the full order state machine for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	transitions := lifecycle.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}

	buckets := gin.H{}
	for _, status := range models.AllStatuses {
		buckets[string(status)] = lifecycle.BucketFor(status)
	}

	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"buckets":         buckets,
		"terminal_states": []models.OrderStatus{models.StatusCompleted, models.StatusCancelled},
		"description":     "Marketplace Order Lifecycle State Machine",
	})
}
