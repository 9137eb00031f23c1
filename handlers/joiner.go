package handlers

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fruitdist-backend/models"
)

// Display placeholders for dangling foreign keys. List views must stay
// renderable when a referenced row was deleted, so unresolved ids map to a
// fixed placeholder instead of failing the request.
const (
	UnknownFruit    = "Unknown Fruit"
	UnknownLocation = "Unknown Location"
	UnknownCountry  = "Unknown Country"
	UnknownCity     = "Unknown City"
)

// fruitNameIndex loads the full fruit table into an id -> name map.
func fruitNameIndex(db *gorm.DB) (map[uuid.UUID]string, error) {
	var fruits []models.Fruit
	if err := db.Find(&fruits).Error; err != nil {
		return nil, err
	}
	idx := make(map[uuid.UUID]string, len(fruits))
	for _, f := range fruits {
		idx[f.ID] = f.Name
	}
	return idx, nil
}

// locationNameIndex loads the full location table into an id -> address map.
// The address doubles as the location's display name in the console.
func locationNameIndex(db *gorm.DB) (map[uuid.UUID]string, error) {
	var locations []models.Location
	if err := db.Find(&locations).Error; err != nil {
		return nil, err
	}
	idx := make(map[uuid.UUID]string, len(locations))
	for _, l := range locations {
		idx[l.ID] = l.Address
	}
	return idx, nil
}

// countryNameIndex loads the full country table into an id -> name map.
func countryNameIndex(db *gorm.DB) (map[uuid.UUID]string, error) {
	var countries []models.Country
	if err := db.Find(&countries).Error; err != nil {
		return nil, err
	}
	idx := make(map[uuid.UUID]string, len(countries))
	for _, c := range countries {
		idx[c.ID] = c.Name
	}
	return idx, nil
}

// resolveName maps a foreign key to its display name, or the placeholder when
// the id is zero or absent from the index.
func resolveName(idx map[uuid.UUID]string, id uuid.UUID, placeholder string) string {
	if id == uuid.Nil {
		return placeholder
	}
	if name, ok := idx[id]; ok {
		return name
	}
	return placeholder
}

// resolveNameRef is resolveName for nullable foreign keys.
func resolveNameRef(idx map[uuid.UUID]string, id *uuid.UUID, placeholder string) string {
	if id == nil {
		return placeholder
	}
	return resolveName(idx, *id, placeholder)
}
