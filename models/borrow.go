package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Borrow is a peer-to-peer inventory loan between two shop locations.
// The legacy system stored the returned flag as the strings "true"/"false";
// here it is a real boolean and the insert handler normalizes the old form.
type Borrow struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FromShopID uuid.UUID      `gorm:"type:uuid;not null;index" json:"from_shop_id"`
	ToShopID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"to_shop_id"`
	FruitID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"fruit_id"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	BorrowDate time.Time      `gorm:"not null" json:"borrow_date"`
	ReturnDate *time.Time     `json:"return_date,omitempty"`
	Returned   bool           `gorm:"default:false" json:"returned"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Borrow) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
