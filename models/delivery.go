package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "Pending"
	DeliveryStatusInTransit DeliveryStatus = "In Transit"
	DeliveryStatusDelivered DeliveryStatus = "Delivered"
	DeliveryStatusCancelled DeliveryStatus = "Cancelled"
)

type Delivery struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FromWarehouseID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"from_warehouse_id"`
	ToLocationID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"to_location_id"`
	FruitID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"fruit_id"`
	Quantity             int            `gorm:"not null" json:"quantity"`
	DeliveryDate         time.Time      `gorm:"not null;index" json:"delivery_date"`
	EstimatedArrivalDate time.Time      `json:"estimated_arrival_date"`
	Status               DeliveryStatus `gorm:"default:Pending" json:"status"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *Delivery) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// AllowedTransitions defines the valid delivery status state machine.
var AllowedTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryStatusPending:   {DeliveryStatusInTransit, DeliveryStatusCancelled},
	DeliveryStatusInTransit: {DeliveryStatusDelivered, DeliveryStatusCancelled},
	DeliveryStatusDelivered: {},
	DeliveryStatusCancelled: {},
}

// IsValidTransition checks if a status transition is allowed.
func IsValidTransition(from, to DeliveryStatus) bool {
	allowed, exists := AllowedTransitions[from]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsValidDeliveryStatus reports whether s is one of the known statuses.
func IsValidDeliveryStatus(s DeliveryStatus) bool {
	_, ok := AllowedTransitions[s]
	return ok
}
