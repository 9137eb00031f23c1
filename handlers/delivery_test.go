package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fruitdist-backend/models"
)

func TestInsertDeliveryDefaultsToPending(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "staff@test.com", models.JobStaff)
	fruit := seedFruit(db, "Mango", 2.50)
	warehouse := seedLocation(db, "Central Warehouse", models.LocationTypeWarehouse)
	shop := seedLocation(db, "Shop A", models.LocationTypeShop)

	router := setupDeliveryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/deliveries/insert", map[string]interface{}{
		"from_warehouse_id": warehouse.ID,
		"to_location_id":    shop.ID,
		"fruit_id":          fruit.ID,
		"quantity":          30,
		"delivery_date":     "2025-03-10",
	}, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if resp := parseResponse(w); resp["status"] != string(models.DeliveryStatusPending) {
		t.Errorf("expected status Pending, got %v", resp["status"])
	}
}

func TestInsertDeliveryRejectsBadInput(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "staff@test.com", models.JobStaff)
	fruit := seedFruit(db, "Mango", 2.50)
	warehouse := seedLocation(db, "Central Warehouse", models.LocationTypeWarehouse)
	shop := seedLocation(db, "Shop A", models.LocationTypeShop)

	router := setupDeliveryRouter(db)

	// Unparseable date.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/deliveries/insert", map[string]interface{}{
		"from_warehouse_id": warehouse.ID,
		"to_location_id":    shop.ID,
		"fruit_id":          fruit.ID,
		"quantity":          30,
		"delivery_date":     "10/03/2025",
	}, token))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", w.Code)
	}

	// Unknown status.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/deliveries/insert", map[string]interface{}{
		"from_warehouse_id": warehouse.ID,
		"to_location_id":    shop.ID,
		"fruit_id":          fruit.ID,
		"quantity":          30,
		"delivery_date":     "2025-03-10",
		"status":            "Teleported",
	}, token))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", w.Code)
	}
}

func TestDeliveriesListResolvesNames(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "staff@test.com", models.JobStaff)
	fruit := seedFruit(db, "Mango", 2.50)
	warehouse := seedLocation(db, "Central Warehouse", models.LocationTypeWarehouse)
	shop := seedLocation(db, "Shop A", models.LocationTypeShop)
	seedDelivery(db, fruit.ID, warehouse.ID, shop.ID, 30, time.Now(), models.DeliveryStatusPending)

	router := setupDeliveryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/deliveries/list", nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	rows := parseResponseArray(w)
	if len(rows) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(rows))
	}
	row := rows[0].(map[string]interface{})
	if row["fruit_name"] != "Mango" {
		t.Errorf("expected fruit name, got %v", row["fruit_name"])
	}
	if row["from_warehouse_name"] != "Central Warehouse" {
		t.Errorf("expected warehouse name, got %v", row["from_warehouse_name"])
	}
	if row["to_location_name"] != "Shop A" {
		t.Errorf("expected shop name, got %v", row["to_location_name"])
	}
}

func TestUpdateDeliveryStatusTransitions(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "staff@test.com", models.JobStaff)
	fruit := seedFruit(db, "Mango", 2.50)
	warehouse := seedLocation(db, "Central Warehouse", models.LocationTypeWarehouse)
	shop := seedLocation(db, "Shop A", models.LocationTypeShop)
	delivery := seedDelivery(db, fruit.ID, warehouse.ID, shop.ID, 30, time.Now(), models.DeliveryStatusPending)

	router := setupDeliveryRouter(db)
	url := "/api/deliveries/update/" + delivery.ID.String() + "/status"

	// Pending cannot jump straight to Delivered.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", url, map[string]string{"status": "Delivered"}, token))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for Pending -> Delivered, got %d", w.Code)
	}

	// Pending -> In Transit -> Delivered is the happy path.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", url, map[string]string{"status": "In Transit"}, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for Pending -> In Transit, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", url, map[string]string{"status": "Delivered"}, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for In Transit -> Delivered, got %d", w.Code)
	}

	// Delivered is terminal.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", url, map[string]string{"status": "Cancelled"}, token))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for Delivered -> Cancelled, got %d", w.Code)
	}
}

func TestReportCountsOnlyDelivered(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "staff@test.com", models.JobStaff)
	apple := seedFruit(db, "Apple", 1.20)
	warehouse := seedLocation(db, "Central Warehouse", models.LocationTypeWarehouse)
	shop := seedLocation(db, "Shop A", models.LocationTypeShop)

	march := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	seedDelivery(db, apple.ID, warehouse.ID, shop.ID, 5, march, models.DeliveryStatusDelivered)
	seedDelivery(db, apple.ID, warehouse.ID, shop.ID, 7, march, models.DeliveryStatusPending)
	seedDelivery(db, apple.ID, warehouse.ID, shop.ID, 9, march, models.DeliveryStatusCancelled)

	router := setupDeliveryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/deliveries/report", nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	monthly, ok := resp["monthlyData"].(map[string]interface{})
	if !ok {
		t.Fatal("expected monthlyData object")
	}
	if len(monthly) != 12 {
		t.Errorf("expected all 12 month buckets, got %d", len(monthly))
	}

	marchBucket := monthly["March"].(map[string]interface{})
	if marchBucket["apple"] != float64(5) {
		t.Errorf("expected March apple total 5 (only Delivered), got %v", marchBucket["apple"])
	}

	summary := resp["summary"].(map[string]interface{})
	if summary["totalDeliveries"] != float64(3) {
		t.Errorf("expected totalDeliveries 3, got %v", summary["totalDeliveries"])
	}
	if summary["deliveredCount"] != float64(1) {
		t.Errorf("expected deliveredCount 1, got %v", summary["deliveredCount"])
	}
	if summary["totalFruits"] != float64(1) {
		t.Errorf("expected totalFruits 1, got %v", summary["totalFruits"])
	}
}

func TestReportCollapsesYearsAndLowercasesNames(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "staff@test.com", models.JobStaff)
	mango := seedFruit(db, "Mango", 2.50)
	warehouse := seedLocation(db, "Central Warehouse", models.LocationTypeWarehouse)
	shop := seedLocation(db, "Shop A", models.LocationTypeShop)

	// Two Julys in different years land in the same bucket.
	seedDelivery(db, mango.ID, warehouse.ID, shop.ID, 3,
		time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), models.DeliveryStatusDelivered)
	seedDelivery(db, mango.ID, warehouse.ID, shop.ID, 4,
		time.Date(2025, time.July, 20, 0, 0, 0, 0, time.UTC), models.DeliveryStatusDelivered)

	router := setupDeliveryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/deliveries/report", nil, token))
	resp := parseResponse(w)
	monthly := resp["monthlyData"].(map[string]interface{})
	july := monthly["July"].(map[string]interface{})

	if july["mango"] != float64(7) {
		t.Errorf("expected July mango total 7 across years, got %v", july["mango"])
	}
	if _, exists := july["Mango"]; exists {
		t.Error("fruit keys must be lowercased")
	}
}

func TestReportSkipsDanglingFruit(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "staff@test.com", models.JobStaff)
	mango := seedFruit(db, "Mango", 2.50)
	warehouse := seedLocation(db, "Central Warehouse", models.LocationTypeWarehouse)
	shop := seedLocation(db, "Shop A", models.LocationTypeShop)

	seedDelivery(db, mango.ID, warehouse.ID, shop.ID, 6,
		time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC), models.DeliveryStatusDelivered)
	db.Delete(&mango)

	router := setupDeliveryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/deliveries/report", nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := parseResponse(w)
	monthly := resp["monthlyData"].(map[string]interface{})
	may := monthly["May"].(map[string]interface{})
	if len(may) != 0 {
		t.Errorf("expected empty May bucket for a deleted fruit, got %v", may)
	}

	// The delivery still counts in the summary totals.
	summary := resp["summary"].(map[string]interface{})
	if summary["totalDeliveries"] != float64(1) {
		t.Errorf("expected totalDeliveries 1, got %v", summary["totalDeliveries"])
	}
	if summary["deliveredCount"] != float64(1) {
		t.Errorf("expected deliveredCount 1, got %v", summary["deliveredCount"])
	}
}

func TestDeleteDelivery(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "staff@test.com", models.JobStaff)
	fruit := seedFruit(db, "Mango", 2.50)
	warehouse := seedLocation(db, "Central Warehouse", models.LocationTypeWarehouse)
	shop := seedLocation(db, "Shop A", models.LocationTypeShop)
	delivery := seedDelivery(db, fruit.ID, warehouse.ID, shop.ID, 30, time.Now(), models.DeliveryStatusPending)

	router := setupDeliveryRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/deliveries/delete/"+delivery.ID.String(), nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var found models.Delivery
	if err := db.Where("id = ?", delivery.ID).First(&found).Error; err == nil {
		t.Error("deleted delivery should not appear in default queries")
	}
}
