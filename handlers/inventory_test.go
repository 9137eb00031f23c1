package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fruitdist-backend/models"
)

func TestInventoryListResolvesNames(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "staff@test.com", models.JobStaff)
	fruit := seedFruit(db, "Mango", 2.50)
	shop := seedLocation(db, "12 Market Street", models.LocationTypeShop)
	seedInventory(db, fruit.ID, shop.ID, 40)

	router := setupInventoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/inventory/list", nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	rows := parseResponseArray(w)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0].(map[string]interface{})
	if row["fruit_name"] != "Mango" {
		t.Errorf("expected fruit name Mango, got %v", row["fruit_name"])
	}
	if row["location_name"] != "12 Market Street" {
		t.Errorf("expected location name, got %v", row["location_name"])
	}
}

func TestInventoryListDanglingFruitPlaceholder(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "staff@test.com", models.JobStaff)
	fruit := seedFruit(db, "Mango", 2.50)
	shop := seedLocation(db, "12 Market Street", models.LocationTypeShop)
	seedInventory(db, fruit.ID, shop.ID, 40)

	// Delete the fruit; the inventory row must still render.
	db.Delete(&fruit)

	router := setupInventoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/inventory/list", nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	rows := parseResponseArray(w)
	if len(rows) != 1 {
		t.Fatalf("expected the orphaned row to survive, got %d rows", len(rows))
	}
	row := rows[0].(map[string]interface{})
	if row["fruit_name"] != UnknownFruit {
		t.Errorf("expected %q, got %v", UnknownFruit, row["fruit_name"])
	}
}

func TestCreateInventoryOneRowPerPair(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "staff@test.com", models.JobStaff)
	fruit := seedFruit(db, "Mango", 2.50)
	shop := seedLocation(db, "12 Market Street", models.LocationTypeShop)

	router := setupInventoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/inventory", map[string]interface{}{
		"fruit_id":    fruit.ID,
		"location_id": shop.ID,
		"quantity":    10,
	}, token))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// A second row for the same (fruit, location) pair is rejected.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/inventory", map[string]interface{}{
		"fruit_id":    fruit.ID,
		"location_id": shop.ID,
		"quantity":    99,
	}, token))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate pair, got %d", w.Code)
	}
}

func TestUpdateInventoryQuantity(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "staff@test.com", models.JobStaff)
	fruit := seedFruit(db, "Mango", 2.50)
	shop := seedLocation(db, "12 Market Street", models.LocationTypeShop)
	inv := seedInventory(db, fruit.ID, shop.ID, 40)

	router := setupInventoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/inventory/update/"+inv.ID.String(), map[string]interface{}{
		"quantity": 25,
	}, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Inventory
	db.Where("id = ?", inv.ID).First(&updated)
	if updated.Quantity != 25 {
		t.Errorf("expected quantity 25, got %d", updated.Quantity)
	}

	// Unknown id is a 404.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/inventory/update/00000000-0000-0000-0000-000000000000", map[string]interface{}{
		"quantity": 1,
	}, token))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetInventoryFilterByLocation(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "staff@test.com", models.JobStaff)
	fruit := seedFruit(db, "Mango", 2.50)
	shopA := seedLocation(db, "Shop A", models.LocationTypeShop)
	shopB := seedLocation(db, "Shop B", models.LocationTypeShop)
	seedInventory(db, fruit.ID, shopA.ID, 10)
	seedInventory(db, fruit.ID, shopB.ID, 20)

	router := setupInventoryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/inventory?location_id="+shopA.ID.String(), nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	rows := parseResponseArray(w)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row for shop A, got %d", len(rows))
	}
}
