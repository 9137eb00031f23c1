package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inventory is the quantity-on-hand of one fruit at one location. One row per
// (fruit, location) pair by convention; the insert handler enforces it.
type Inventory struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FruitID    uuid.UUID `gorm:"type:uuid;not null;index" json:"fruit_id"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;index" json:"location_id"`
	Quantity   int       `gorm:"default:0" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (i *Inventory) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
