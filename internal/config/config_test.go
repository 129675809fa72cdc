package config

import "testing"

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingRedisAddrs(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing redis addrs")
	}
}

func TestValidate_InvalidReminderHour(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Reminder: ReminderConfig{Hour: 24},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for out-of-range reminder hour")
	}
}

func TestValidate_WhatsappTokenRequired(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Reminder: ReminderConfig{Enabled: true, Hour: 9},
		Notify:   NotifyConfig{WhatsappPhoneID: "12345"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing whatsapp token")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Data.CatalogPath != "data/catalog.json" {
		t.Errorf("expected CatalogPath='data/catalog.json', got %q", cfg.Data.CatalogPath)
	}
	if cfg.Data.EntityType != "accion" {
		t.Errorf("expected EntityType='accion', got %q", cfg.Data.EntityType)
	}
	if cfg.Model.Threshold != 0.2 {
		t.Errorf("expected Threshold=0.2, got %f", cfg.Model.Threshold)
	}
	if cfg.Reminder.Hour != 9 {
		t.Errorf("expected reminder Hour=9, got %d", cfg.Reminder.Hour)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{ReadinessTimeout: 15},
		Data:     DataConfig{CatalogPath: "custom/catalog.json", EntityType: "keyword"},
		Model:    ModelConfig{Threshold: 0.5, MaxTokens: 512},
		Reminder: ReminderConfig{Hour: 7},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Data.CatalogPath != "custom/catalog.json" {
		t.Errorf("expected CatalogPath='custom/catalog.json', got %q", cfg.Data.CatalogPath)
	}
	if cfg.Model.Threshold != 0.5 {
		t.Errorf("expected Threshold=0.5, got %f", cfg.Model.Threshold)
	}
	if cfg.Reminder.Hour != 7 {
		t.Errorf("expected reminder Hour=7, got %d", cfg.Reminder.Hour)
	}
}
