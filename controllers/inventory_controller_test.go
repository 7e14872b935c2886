// File: /controllers/inventory_controller_test.go
package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"motorestore-api/models"
)

func setupInventoryRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	controller := NewInventoryController(db)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/inventory", controller.GetItems)
	v1.POST("/inventory", controller.CreateItem)
	v1.PUT("/inventory/:id", controller.UpdateItem)
	v1.DELETE("/inventory/:id", controller.DeleteItem)

	return r, db
}

func TestInventoryCRUD(t *testing.T) {
	r, db := setupInventoryRouter(t)

	// Create
	w := doJSON(t, r, http.MethodPost, "/api/v1/inventory", map[string]interface{}{
		"name":     "M6 bolts",
		"quantity": 40,
		"cost":     12.80,
		"paid_by":  "dh",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201; body: %s", w.Code, w.Body.String())
	}

	var item models.InventoryItem
	if err := json.Unmarshal(w.Body.Bytes(), &item); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}

	// List
	w = doJSON(t, r, http.MethodGet, "/api/v1/inventory", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", w.Code)
	}
	var items []models.InventoryItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(items) != 1 || items[0].Name != "M6 bolts" {
		t.Fatalf("items = %+v, want one M6 bolts line", items)
	}

	// Update
	w = doJSON(t, r, http.MethodPut, "/api/v1/inventory/"+item.ID, map[string]interface{}{
		"quantity":      32,
		"payment_clear": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var reloaded models.InventoryItem
	if err := db.First(&reloaded, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("failed to reload item: %v", err)
	}
	if reloaded.Quantity != 32 || !reloaded.PaymentClear {
		t.Fatalf("reloaded item = %+v, want quantity 32 and payment_clear", reloaded)
	}

	// Delete
	w = doJSON(t, r, http.MethodDelete, "/api/v1/inventory/"+item.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/v1/inventory/"+item.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", w.Code)
	}
}

func TestInventoryValidation(t *testing.T) {
	r, db := setupInventoryRouter(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"quantity": 5}},
		{"negative quantity", map[string]interface{}{"name": "gaskets", "quantity": -1}},
		{"bad payer tag", map[string]interface{}{"name": "gaskets", "quantity": 1, "paid_by": "xx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/inventory", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body: %s", w.Code, w.Body.String())
			}
		})
	}

	var count int64
	db.Model(&models.InventoryItem{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected items were persisted: count = %d", count)
	}
}
