package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LocationTypeWarehouse = "warehouse"
	LocationTypeShop      = "shop"
)

type Location struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CityID    *uuid.UUID     `gorm:"type:uuid;index" json:"city_id,omitempty"`
	City      *City          `gorm:"foreignKey:CityID" json:"city,omitempty"`
	Address   string         `gorm:"not null" json:"address"`
	Type      string         `gorm:"default:shop" json:"type"` // warehouse, shop
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
