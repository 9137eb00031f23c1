package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Fruit struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name            string         `gorm:"not null;index" json:"name"`
	OriginCountryID *uuid.UUID     `gorm:"type:uuid;index" json:"origin_country_id,omitempty"`
	OriginCountry   *Country       `gorm:"foreignKey:OriginCountryID" json:"origin_country,omitempty"`
	Price           float64        `gorm:"not null" json:"price"`
	ImageURL        string         `json:"image_url"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (f *Fruit) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
