package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	JobManager = "manager"
	JobStaff   = "staff"
	JobShop    = "shop"
)

// ValidJobs is the set of roles a staff account can hold.
var ValidJobs = map[string]bool{
	JobManager: true,
	JobStaff:   true,
	JobShop:    true,
}

type Staff struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name       string         `json:"name"`
	Email      string         `gorm:"uniqueIndex;not null" json:"email"`
	Password   string         `gorm:"not null" json:"-"`
	Phone      string         `json:"phone"`
	Job        string         `gorm:"default:staff" json:"job"` // manager, staff, shop
	LocationID *uuid.UUID     `gorm:"type:uuid;index" json:"location_id,omitempty"`
	Location   *Location      `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Active     bool           `gorm:"default:true" json:"active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
