package presets

import (
	"os"
	"path/filepath"
	"testing"
)

func writePreset(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".yml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write preset file: %v", err)
	}
}

func TestCacheRun(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "vtubers", `title: "VTuber lineup"
description: "Channels streaming on weekends"
channels:
  - UCaaa
  - UCbbb
`)
	writePreset(t, dir, "music", `channels:
  - UCccc
`)

	cache := NewCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cache.Count() != 2 {
		t.Errorf("Expected 2 presets, got %d", cache.Count())
	}

	preset, err := cache.GetPreset("vtubers")
	if err != nil {
		t.Fatalf("Expected preset to be loaded, got %v", err)
	}
	if preset.Title != "VTuber lineup" {
		t.Errorf("Expected title 'VTuber lineup', got %q", preset.Title)
	}
	if len(preset.Channels) != 2 {
		t.Errorf("Expected 2 channels, got %d", len(preset.Channels))
	}
}

func TestCacheTitleDefaultsToName(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "plain", "channels:\n  - UCaaa\n")

	cache := NewCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	preset, err := cache.GetPreset("plain")
	if err != nil {
		t.Fatalf("Expected preset to be loaded, got %v", err)
	}
	if preset.Title != "plain" {
		t.Errorf("Expected title to default to the name, got %q", preset.Title)
	}
}

func TestCacheMissingDirectory(t *testing.T) {
	cache := NewCache("/nonexistent/presets")
	if err := cache.Run(); err != nil {
		t.Errorf("Expected a missing directory to be fine, got %v", err)
	}
	if cache.Count() != 0 {
		t.Errorf("Expected 0 presets, got %d", cache.Count())
	}
}

func TestCacheRejectsEmptyChannelList(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "empty", "title: Empty\nchannels: []\n")

	cache := NewCache(dir)
	if err := cache.Run(); err == nil {
		t.Error("Expected an error for a preset without channels")
	}
}

func TestCacheRejectsBlankChannel(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "blank", "channels:\n  - UCaaa\n  - \"  \"\n")

	cache := NewCache(dir)
	if err := cache.Run(); err == nil {
		t.Error("Expected an error for a blank channel ID")
	}
}

func TestGetPresetsSorted(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "zebra", "channels:\n  - UCaaa\n")
	writePreset(t, dir, "alpha", "channels:\n  - UCbbb\n")

	cache := NewCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	presets := cache.GetPresets()
	if len(presets) != 2 {
		t.Fatalf("Expected 2 presets, got %d", len(presets))
	}
	if presets[0].Name != "alpha" || presets[1].Name != "zebra" {
		t.Errorf("Expected presets sorted by name, got %q then %q", presets[0].Name, presets[1].Name)
	}
}

func TestGetPresetNotFound(t *testing.T) {
	cache := NewCache(t.TempDir())
	if _, err := cache.GetPreset("ghost"); err == nil {
		t.Error("Expected an error for an unknown preset")
	}
}
