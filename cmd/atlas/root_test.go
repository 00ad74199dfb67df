package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"atlas/internal/charts"
	"atlas/internal/config"
)

func TestChartsCommandListsIDs(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"charts"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("charts: %v", err)
	}
	for _, id := range charts.IDs() {
		if !strings.Contains(out.String(), id) {
			t.Errorf("output missing %q:\n%s", id, out.String())
		}
	}
}

func TestInitWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.yml")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"init", "--config", path, "--data-dir", "maps"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "maps" || cfg.DefaultChart != "world" {
		t.Errorf("config = %+v", cfg)
	}

	rootCmd.SetArgs([]string{"init", "--config", path})
	if err := rootCmd.Execute(); err == nil {
		t.Error("init should refuse to overwrite without --force")
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if got := out.String(); got != "atlas "+Version+"\n" {
		t.Errorf("version output = %q", got)
	}
}
