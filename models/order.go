package models

import "time"

// OrderStatus represents all possible states of a marketplace order
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusConfirmed  OrderStatus = "CONFIRMED"
	StatusPreparing  OrderStatus = "PREPARING"
	StatusDelivering OrderStatus = "DELIVERING"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// AllStatuses enumerates every declared status. The lifecycle tests walk it
// so that adding a status without a bucket or cancel rule fails loudly.
var AllStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusDelivering,
	StatusCompleted,
	StatusCancelled,
}

type Order struct {
	ID              uint                 `json:"id" gorm:"primaryKey"`
	Number          string               `json:"number" gorm:"uniqueIndex;not null"`
	CustomerID      uint                 `json:"customer_id" gorm:"not null"`
	Customer        User                 `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID    uint                 `json:"restaurant_id" gorm:"not null"`
	Restaurant      Restaurant           `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Status          OrderStatus          `json:"status" gorm:"not null;default:'PENDING'"`
	TotalPrice      float64              `json:"total_price"`
	DeliveryFee     float64              `json:"delivery_fee"`
	DeliveryAddress string               `json:"delivery_address" gorm:"not null"`
	CancelReason    string               `json:"cancel_reason,omitempty"`
	Items           []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory   []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

type OrderItem struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	OrderID    uint              `json:"order_id" gorm:"not null"`
	MenuItemID uint              `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem          `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int               `json:"quantity" gorm:"not null"`
	UnitPrice  float64           `json:"unit_price" gorm:"not null"` // snapshot: base price plus chosen option deltas
	Name       string            `json:"name"`                       // snapshot name
	Options    []OrderItemOption `json:"options,omitempty" gorm:"foreignKey:OrderItemID"`
}

// OrderItemOption snapshots a chosen option and its price delta at order time
type OrderItemOption struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	OrderItemID uint    `json:"order_item_id" gorm:"not null"`
	Name        string  `json:"name" gorm:"not null"`
	PriceDelta  float64 `json:"price_delta"`
}

// OrderStatusHistory tracks every status change — audit trail
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
