package config

import (
	"context"
	"testing"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.StoreDriver != DriverSQLite || cfg.SQLite.Path != "organ.db" {
		t.Fatalf("unexpected store defaults: %s %s", cfg.StoreDriver, cfg.SQLite.Path)
	}
	if cfg.Mongo.Database != "organ_match" {
		t.Fatalf("unexpected mongo db: %s", cfg.Mongo.Database)
	}
	if cfg.Redis.Enabled() {
		t.Fatal("redis must be disabled by default")
	}
	if cfg.Twilio.Enabled() {
		t.Fatal("twilio must be disabled by default")
	}
	if cfg.Twilio.BaseURL != "https://api.twilio.com" {
		t.Fatalf("unexpected twilio base url: %s", cfg.Twilio.BaseURL)
	}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development env by default")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":           "8081",
		"ENV":            "production",
		"STORE_DRIVER":   "mongo",
		"REDIS_ADDR":     "localhost:6379",
		"REDIS_DB":       "2",
		"SESSION_SECRET": "s3cret",
		"TWILIO_SID":     "AC1",
		"TWILIO_TOKEN":   "tok",
		"TWILIO_NUMBER":  "+15550000",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8081" || cfg.IsDevelopment() {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
	if cfg.StoreDriver != DriverMongo {
		t.Fatalf("expected mongo driver, got %s", cfg.StoreDriver)
	}
	if !cfg.Redis.Enabled() || cfg.Redis.DB != 2 {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.SessionSecret != "s3cret" {
		t.Fatalf("unexpected secret: %s", cfg.SessionSecret)
	}
	if !cfg.Twilio.Enabled() {
		t.Fatal("expected twilio enabled")
	}
}

func TestTwilioEnabled_RequiresAllCredentials(t *testing.T) {
	partial := []TwilioConfig{
		{AccountSID: "AC1", AuthToken: "tok"},
		{AccountSID: "AC1", From: "+1"},
		{AuthToken: "tok", From: "+1"},
	}
	for _, tc := range partial {
		if tc.Enabled() {
			t.Errorf("expected disabled for %+v", tc)
		}
	}
}

func TestLoadWith_RejectsUnknownDriver(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_DRIVER": "postgres",
	}))
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestLoadWith_InvalidInt(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"REDIS_DB": "zero",
	}))
	if err == nil {
		t.Fatal("expected parse error")
	}
}
