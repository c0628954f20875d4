package service

import (
	"errors"
	"testing"

	"github.com/habitgrid/internal/db"
)

func TestSettingServiceDefaults(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewSettingService(db.DB)

	settings, err := svc.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings returned error: %v", err)
	}

	if settings.DayBoundaryHour != 0 {
		t.Fatalf("expected default boundary 0, got %d", settings.DayBoundaryHour)
	}
	if !settings.AutoMarkPink {
		t.Fatal("expected auto-mark enabled by default")
	}
}

func TestSettingServiceUpdateAndReload(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewSettingService(db.DB)

	updated, err := svc.UpdateSettings(SettingsInput{DayBoundaryHour: 6, AutoMarkPink: false})
	if err != nil {
		t.Fatalf("UpdateSettings returned error: %v", err)
	}
	if updated.DayBoundaryHour != 6 || updated.AutoMarkPink {
		t.Fatalf("unexpected updated settings: %+v", updated)
	}

	reloaded, err := svc.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings returned error: %v", err)
	}
	if reloaded.DayBoundaryHour != 6 || reloaded.AutoMarkPink {
		t.Fatalf("unexpected reloaded settings: %+v", reloaded)
	}

	// 重复更新走 upsert 而不是再插一行
	if _, err := svc.UpdateSettings(SettingsInput{DayBoundaryHour: 4, AutoMarkPink: true}); err != nil {
		t.Fatalf("second UpdateSettings returned error: %v", err)
	}

	var count int64
	if err := db.DB.Model(&db.TrackerSetting{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count settings: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 setting rows, got %d", count)
	}
}

func TestSettingServiceRejectsInvalidBoundary(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewSettingService(db.DB)

	if _, err := svc.UpdateSettings(SettingsInput{DayBoundaryHour: 24}); !errors.Is(err, ErrInvalidBoundaryHour) {
		t.Fatalf("expected ErrInvalidBoundaryHour, got %v", err)
	}
	if _, err := svc.UpdateSettings(SettingsInput{DayBoundaryHour: -1}); !errors.Is(err, ErrInvalidBoundaryHour) {
		t.Fatalf("expected ErrInvalidBoundaryHour, got %v", err)
	}
}
