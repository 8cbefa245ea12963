package settings

import (
	"testing"
)

func TestFromMapDefaults(t *testing.T) {
	s, err := FromMap(map[string]string{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if s.Timezone != DefaultTimezone {
		t.Errorf("Expected default timezone %q, got %q", DefaultTimezone, s.Timezone)
	}
	if s.LookAheadHours != DefaultLookAheadHours {
		t.Errorf("Expected default look-ahead %d, got %d", DefaultLookAheadHours, s.LookAheadHours)
	}
	if s.RSSDiscovery {
		t.Error("Expected RSS discovery to default to off")
	}
	if s.Configured() {
		t.Error("Expected empty settings to not be configured")
	}
}

func TestFromMapInvalidTimezoneFallsBack(t *testing.T) {
	s, err := FromMap(map[string]string{KeyTimezone: "Not/AZone"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if s.Timezone != DefaultTimezone {
		t.Errorf("Expected fallback to %q, got %q", DefaultTimezone, s.Timezone)
	}
	if s.Location == nil {
		t.Error("Expected a usable location after fallback")
	}
}

func TestFromMapParsesValues(t *testing.T) {
	s, err := FromMap(map[string]string{
		KeyAPIKey:         "secret",
		KeyChannelIDs:     "UCaaa\nUCbbb",
		KeyTimezone:       "UTC",
		KeyLookAheadHours: "24",
		KeyRSSDiscovery:   "true",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if s.APIKey != "secret" {
		t.Errorf("Expected API key to pass through, got %q", s.APIKey)
	}
	if len(s.Channels) != 2 {
		t.Errorf("Expected 2 channels, got %v", s.Channels)
	}
	if s.Timezone != "UTC" {
		t.Errorf("Expected timezone UTC, got %q", s.Timezone)
	}
	if s.LookAheadHours != 24 {
		t.Errorf("Expected look-ahead 24, got %d", s.LookAheadHours)
	}
	if !s.RSSDiscovery {
		t.Error("Expected RSS discovery to be on")
	}
	if !s.Configured() {
		t.Error("Expected settings with a key and channels to be configured")
	}
}

func TestFromMapInvalidLookAhead(t *testing.T) {
	s, err := FromMap(map[string]string{KeyLookAheadHours: "not-a-number"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s.LookAheadHours != DefaultLookAheadHours {
		t.Errorf("Expected default look-ahead %d, got %d", DefaultLookAheadHours, s.LookAheadHours)
	}
}

func TestClampLookAhead(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, MinLookAheadHours},
		{-5, MinLookAheadHours},
		{1, 1},
		{72, 72},
		{240, 240},
		{1000, MaxLookAheadHours},
	}

	for _, tt := range tests {
		if got := ClampLookAhead(tt.input); got != tt.expected {
			t.Errorf("ClampLookAhead(%d): expected %d, got %d", tt.input, tt.expected, got)
		}
	}
}

func TestConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		expected bool
	}{
		{"key and channels", Settings{APIKey: "k", Channels: []string{"UCaaa"}}, true},
		{"key only", Settings{APIKey: "k"}, false},
		{"channels only", Settings{Channels: []string{"UCaaa"}}, false},
		{"nothing", Settings{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.Configured(); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
