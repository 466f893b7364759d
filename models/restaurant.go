package models

import "time"

type Restaurant struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	OwnerID      uint           `json:"owner_id" gorm:"not null"`
	Owner        User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name         string         `json:"name" gorm:"not null"`
	Cuisine      string         `json:"cuisine"`
	Address      string         `json:"address"`
	Description  string         `json:"description"`
	DeliveryFee  float64        `json:"delivery_fee" gorm:"default:0"`
	Rating       float64        `json:"rating" gorm:"default:0"`
	OpeningHours []OpeningHours `json:"opening_hours,omitempty" gorm:"foreignKey:RestaurantID"`
	MenuItems    []MenuItem     `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// OpeningHours is one weekday's open/close pair, stored as UTC clock times.
// Day uses the Monday-first business convention (Monday=0 … Sunday=6), at
// most one row per restaurant per day; a missing row means closed that day.
type OpeningHours struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	RestaurantID uint   `json:"restaurant_id" gorm:"not null;uniqueIndex:idx_restaurant_day"`
	Day          int    `json:"day" gorm:"not null;uniqueIndex:idx_restaurant_day"`
	OpeningTime  string `json:"opening_time" gorm:"not null"` // "HH:mm", UTC
	ClosingTime  string `json:"closing_time" gorm:"not null"` // "HH:mm", UTC
}

type MenuItem struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	RestaurantID uint             `json:"restaurant_id" gorm:"not null"`
	Name         string           `json:"name" gorm:"not null"`
	Description  string           `json:"description"`
	Price        float64          `json:"price" gorm:"not null"`
	Category     string           `json:"category"`
	IsAvailable  bool             `json:"is_available" gorm:"default:true"`
	Options      []MenuItemOption `json:"options,omitempty" gorm:"foreignKey:MenuItemID"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// MenuItemOption is an add-on the customer may pick, priced as a delta on
// top of the item's base price
type MenuItemOption struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	MenuItemID uint    `json:"menu_item_id" gorm:"not null"`
	Name       string  `json:"name" gorm:"not null"`
	PriceDelta float64 `json:"price_delta" gorm:"default:0"`
}
