package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_ConfigYAML(t *testing.T) {
	path := filepath.Join("..", "..", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port == 0 {
		t.Fatalf("expected server.port to be set")
	}
	if cfg.Catalog.MenuPath == "" {
		t.Fatalf("expected catalog.menu_path to be set")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")

	path := filepath.Join("..", "..", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != 8081 {
		t.Fatalf("expected SERVER_PORT override to win, got %d", cfg.Server.Port)
	}
	if cfg.Addr() != ":8081" {
		t.Fatalf("unexpected addr: %s", cfg.Addr())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
