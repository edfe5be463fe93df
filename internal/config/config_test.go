package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("Addr = %q", cfg.Addr())
	}
	if cfg.WorkStartHour != 9 || cfg.WorkEndHour != 17 || cfg.SlotDuration() != time.Hour {
		t.Fatalf("window = %d-%d/%v", cfg.WorkStartHour, cfg.WorkEndHour, cfg.SlotDuration())
	}
	if cfg.AvailabilityTimeout != 10*time.Second || cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("timeouts = %v %v", cfg.AvailabilityTimeout, cfg.SessionTTL)
	}
	if cfg.InstagramAPIBase != "https://graph.instagram.com" {
		t.Fatalf("instagram base = %q", cfg.InstagramAPIBase)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("WORK_START_HOUR", "8")
	t.Setenv("SLOT_MINUTES", "30")
	t.Setenv("AVAILABILITY_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "https://pets.example.com, https://www.pets.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr() != ":9090" || cfg.WorkStartHour != 8 || cfg.SlotDuration() != 30*time.Minute {
		t.Fatalf("unexpected cfg %+v", cfg)
	}
	if cfg.AvailabilityTimeout != 3*time.Second {
		t.Fatalf("availability timeout = %v", cfg.AvailabilityTimeout)
	}
	want := []string{"https://pets.example.com", "https://www.pets.example.com"}
	if got := cfg.AllowedOrigins(); !reflect.DeepEqual(got, want) {
		t.Fatalf("origins = %v", got)
	}
}

func TestLoadRejectsInvalidWindow(t *testing.T) {
	t.Setenv("WORK_START_HOUR", "18")
	t.Setenv("WORK_END_HOUR", "9")
	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}
