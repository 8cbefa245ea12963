package presets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Preset is a named, shareable channel list loaded from a YAML file in the
// presets directory. Applying one replaces the stored channel list.
type Preset struct {
	Name        string   `yaml:"-"` // derived from filename (without .yml)
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Channels    []string `yaml:"channels"`
}

type Cache struct {
	presetsDir string
	cache      map[string]*Preset
	mu         sync.RWMutex
}

func NewCache(presetsDir string) *Cache {
	return &Cache{
		presetsDir: presetsDir,
		cache:      make(map[string]*Preset),
	}
}

// Run loads every *.yml file in the presets directory. A missing directory
// is not an error; presets are optional.
func (c *Cache) Run() error {
	if _, err := os.Stat(c.presetsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(c.presetsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".yml")

		preset, err := c.LoadPreset(name)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Preset loaded", "preset", name, "channels", len(preset.Channels))
	}

	return nil
}

func (c *Cache) LoadPreset(name string) (*Preset, error) {
	data, err := os.ReadFile(filepath.Join(c.presetsDir, name+".yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var preset Preset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	preset.Name = name
	if preset.Title == "" {
		preset.Title = name
	}

	if err := c.validatePreset(&preset); err != nil {
		return nil, fmt.Errorf("invalid preset %s: %w", name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[preset.Name] = &preset

	return &preset, nil
}

func (c *Cache) GetPreset(name string) (*Preset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	preset, ok := c.cache[name]
	if !ok {
		return nil, fmt.Errorf("preset with name '%s' not found", name)
	}
	return preset, nil
}

// GetPresets returns all loaded presets sorted by name.
func (c *Cache) GetPresets() []*Preset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	presets := make([]*Preset, 0, len(c.cache))
	for _, preset := range c.cache {
		presets = append(presets, preset)
	}
	sort.Slice(presets, func(i, j int) bool {
		return presets[i].Name < presets[j].Name
	})
	return presets
}

func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func (c *Cache) validatePreset(preset *Preset) error {
	if len(preset.Channels) == 0 {
		return fmt.Errorf("preset must list at least one channel")
	}
	for i, channel := range preset.Channels {
		if strings.TrimSpace(channel) == "" {
			return fmt.Errorf("empty channel ID at index %d", i)
		}
	}
	return nil
}
