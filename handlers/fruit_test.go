package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fruitdist-backend/models"

	"github.com/google/uuid"
)

func TestGetFruitsResolvesOriginCountry(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "staff@test.com", models.JobStaff)
	thailand := seedCountry(db, "Thailand")

	mango := seedFruit(db, "Mango", 2.50)
	db.Model(&mango).Update("origin_country_id", thailand.ID)
	seedFruit(db, "Dragonfruit", 4.00) // no origin country

	router := setupFruitRouter(db, newMockStorage())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/fruits", nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	fruits := parseResponseArray(w)
	if len(fruits) != 2 {
		t.Fatalf("expected 2 fruits, got %d", len(fruits))
	}

	byName := map[string]map[string]interface{}{}
	for _, f := range fruits {
		m := f.(map[string]interface{})
		byName[m["name"].(string)] = m
	}
	if byName["Mango"]["origin_country"] != "Thailand" {
		t.Errorf("expected Mango origin Thailand, got %v", byName["Mango"]["origin_country"])
	}
	if byName["Dragonfruit"]["origin_country"] != UnknownCountry {
		t.Errorf("expected placeholder origin, got %v", byName["Dragonfruit"]["origin_country"])
	}
}

func TestCreateFruitDuplicateID(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "manager@test.com", models.JobManager)
	router := setupFruitRouter(db, newMockStorage())

	id := uuid.New()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/fruits", map[string]interface{}{
		"id":    id,
		"name":  "Lychee",
		"price": 3.20,
	}, token))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/fruits", map[string]interface{}{
		"id":    id,
		"name":  "Rambutan",
		"price": 2.80,
	}, token))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate id, got %d", w.Code)
	}

	var fruit models.Fruit
	db.Where("id = ?", id).First(&fruit)
	if fruit.Name != "Lychee" {
		t.Errorf("original row was modified, name is now %q", fruit.Name)
	}
}

func TestCreateFruitRequiresManager(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "staff@test.com", models.JobStaff)
	router := setupFruitRouter(db, newMockStorage())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/fruits", map[string]interface{}{
		"name":  "Papaya",
		"price": 1.50,
	}, token))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestCreateFruitImportsExternalImage(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "manager@test.com", models.JobManager)
	mock := newMockStorage()
	router := setupFruitRouter(db, mock)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/fruits", map[string]interface{}{
		"name":      "Durian",
		"price":     8.00,
		"image_url": "https://example.com/durian.jpg",
	}, token))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	if len(mock.ImportFruitImageCalls) != 1 {
		t.Fatalf("expected 1 import call, got %d", len(mock.ImportFruitImageCalls))
	}
	if mock.ImportFruitImageCalls[0].ImageURL != "https://example.com/durian.jpg" {
		t.Errorf("unexpected import source: %s", mock.ImportFruitImageCalls[0].ImageURL)
	}

	var fruit models.Fruit
	db.Where("name = ?", "Durian").First(&fruit)
	if fruit.ImageURL == "https://example.com/durian.jpg" {
		t.Error("expected the image URL to be replaced by the hosted copy")
	}
}

func TestCreateFruitMultipartUpload(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "manager@test.com", models.JobManager)
	mock := newMockStorage()
	router := setupFruitRouter(db, mock)

	w := httptest.NewRecorder()
	req := multipartRequest("POST", "/api/fruits",
		map[string]string{"name": "Pineapple", "price": "2.10"},
		map[string]string{"image": "pineapple.jpg"},
		token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if mock.UploadCallCount != 1 {
		t.Errorf("expected 1 upload call, got %d", mock.UploadCallCount)
	}

	var fruit models.Fruit
	db.Where("name = ?", "Pineapple").First(&fruit)
	if fruit.ImageURL == "" {
		t.Error("expected uploaded image URL on the fruit")
	}
}

func TestUpdateFruitImageDeletesOldObject(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "manager@test.com", models.JobManager)
	mock := newMockStorage()
	router := setupFruitRouter(db, mock)

	fruit := seedFruit(db, "Banana", 0.90)
	db.Model(&fruit).Update("image_url", "https://storage.googleapis.com/test-bucket/fruits/old_banana.jpg")

	w := httptest.NewRecorder()
	req := multipartRequest("PUT", "/api/fruits/"+fruit.ID.String(),
		nil,
		map[string]string{"image": "new_banana.jpg"},
		token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(mock.DeleteFileCalls) != 1 || mock.DeleteFileCalls[0] != "fruits/old_banana.jpg" {
		t.Errorf("expected old object to be deleted, calls: %v", mock.DeleteFileCalls)
	}
}

func TestDeleteFruitSoftDeletes(t *testing.T) {
	db := freshDB()
	_, token := seedStaff(db, "manager@test.com", models.JobManager)
	router := setupFruitRouter(db, newMockStorage())

	fruit := seedFruit(db, "Starfruit", 3.00)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", "/api/fruits/"+fruit.ID.String(), nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var found models.Fruit
	if err := db.Where("id = ?", fruit.ID).First(&found).Error; err == nil {
		t.Error("deleted fruit should not appear in default queries")
	}
}
