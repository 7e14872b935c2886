// File: /controllers/auth_controller_test.go
package controllers

import (
	"testing"

	"motorestore-api/models"
)

func TestFindOrCreateProfileIdempotent(t *testing.T) {
	db := newTestDB(t)
	ac := &AuthController{db: db, jwtSecret: "test-secret"}

	info := &GoogleUserInfo{
		Sub:     "google-sub-1",
		Email:   "owner@example.com",
		Name:    "Garage Owner",
		Picture: "https://example.com/photo.jpg",
	}

	user, isNew, err := ac.findOrCreateProfile(info)
	if err != nil {
		t.Fatalf("first findOrCreateProfile failed: %v", err)
	}
	if !isNew {
		t.Fatal("first sighting should create the profile")
	}
	if user.Verified {
		t.Fatal("new profile must start unverified")
	}
	if user.PhotoURL == nil || *user.PhotoURL != info.Picture {
		t.Fatalf("photo url = %v, want %q", user.PhotoURL, info.Picture)
	}

	// Admin verifies out-of-band
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("verified", true).Error; err != nil {
		t.Fatalf("failed to verify user: %v", err)
	}

	// Second sign-in is a lookup, never an overwrite
	again, isNew, err := ac.findOrCreateProfile(info)
	if err != nil {
		t.Fatalf("second findOrCreateProfile failed: %v", err)
	}
	if isNew {
		t.Fatal("second sighting must not create a profile")
	}
	if !again.Verified {
		t.Fatal("repeat sign-in reset the verified flag")
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("user count = %d, want 1", count)
	}
}

func TestGenerateJWTRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ac := &AuthController{db: db, jwtSecret: "test-secret"}

	token, err := ac.generateJWT("user-1", "owner@example.com")
	if err != nil {
		t.Fatalf("generateJWT failed: %v", err)
	}
	if token == "" {
		t.Fatal("generateJWT returned empty token")
	}
}
