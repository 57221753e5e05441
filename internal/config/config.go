package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/iburimskiy/cyber-vortex/internal/palette"
	"github.com/iburimskiy/cyber-vortex/internal/vortex"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512

	VisualRingSize  = 8192
	LevelWindow     = 2048
	SmoothingFactor = 0.6

	// Glow blur grows by up to this factor of its base with soundtrack loudness
	LevelGlowGain = 2.0

	EasterEggSeconds = 5
	EasterEggHue     = 180

	// Terminal cells are mapped to this many pixels of field space
	CellWidth  = 8
	CellHeight = 16

	DefaultFPS = 60
)

type Settings struct {
	Rings            int     `json:"rings"`
	ParticlesPerRing int     `json:"particles_per_ring"`
	Glyphs           string  `json:"glyphs"`
	BaseSpeed        float64 `json:"base_speed"`
	RingRadiusBase   float64 `json:"ring_radius_base"`
	RingRadiusStep   float64 `json:"ring_radius_step"`
	VerticalSquash   float64 `json:"vertical_squash"`
	GlowColor        string  `json:"glow_color"`
	GlowBlur         float64 `json:"glow_blur"`
	MinFontSize      float64 `json:"min_font_size"`
	Background       string  `json:"background"`
	FPS              int     `json:"fps"`
	Seed             int64   `json:"seed"`
	Soundtrack       string  `json:"soundtrack"`
}

func Default() *Settings {
	d := vortex.DefaultConfig()
	return &Settings{
		Rings:            d.RingCount,
		ParticlesPerRing: d.ParticlesPerRing,
		Glyphs:           d.Glyphs,
		BaseSpeed:        d.BaseSpeed,
		RingRadiusBase:   d.RingRadiusBase,
		RingRadiusStep:   d.RingRadiusStep,
		VerticalSquash:   d.VerticalSquash,
		GlowColor:        palette.Hex(d.GlowColor),
		GlowBlur:         d.GlowBlur,
		MinFontSize:      d.MinFontSize,
		Background:       "#000000",
		FPS:              DefaultFPS,
	}
}

func GetSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "cyber-vortex")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.json"), nil
}

// LoadSettings reads the settings file at its default location, creating it
// with defaults when missing.
func LoadSettings() (*Settings, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFrom(settingsPath)
}

// LoadSettingsFrom reads settings from path. A missing file is created with
// defaults, an unparsable one falls back to defaults, and out-of-range values
// are reset individually.
func LoadSettingsFrom(settingsPath string) (*Settings, error) {
	defaultSettings := Default()

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Creating default settings file at %s", settingsPath)
			if err := WriteSettings(settingsPath, defaultSettings); err != nil {
				log.Printf("Failed to create default settings file: %v", err)
			}
			return defaultSettings, nil
		}
		return nil, err
	}

	// Check for unrecognised keys
	var rawSettings map[string]interface{}
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaultSettings, nil
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			log.Printf("Warning: unrecognised setting key '%s' in settings file", key)
		}
	}

	// Keys absent from the file keep their defaults
	settings := Default()
	if err := json.Unmarshal(data, settings); err != nil {
		log.Printf("Invalid settings file, using defaults: %v", err)
		return defaultSettings, nil
	}

	settings.sanitize(defaultSettings)
	return settings, nil
}

func (s *Settings) sanitize(d *Settings) {
	if s.Rings < 1 {
		log.Printf("Invalid rings value %d, must be at least 1, using default %d", s.Rings, d.Rings)
		s.Rings = d.Rings
	}
	if s.ParticlesPerRing < 1 {
		log.Printf("Invalid particles_per_ring value %d, must be at least 1, using default %d",
			s.ParticlesPerRing, d.ParticlesPerRing)
		s.ParticlesPerRing = d.ParticlesPerRing
	}
	if s.Glyphs == "" {
		log.Printf("Empty glyphs, using default alphabet")
		s.Glyphs = d.Glyphs
	}
	if s.BaseSpeed <= 0 {
		log.Printf("Invalid base_speed value %g, must be positive, using default %g", s.BaseSpeed, d.BaseSpeed)
		s.BaseSpeed = d.BaseSpeed
	}
	if s.RingRadiusBase < 0 || s.RingRadiusStep < 0 {
		log.Printf("Negative ring radius, using defaults %g/%g", d.RingRadiusBase, d.RingRadiusStep)
		s.RingRadiusBase, s.RingRadiusStep = d.RingRadiusBase, d.RingRadiusStep
	}
	if s.VerticalSquash <= 0 || s.VerticalSquash > 1 {
		log.Printf("Invalid vertical_squash value %.2f, must be in (0.0, 1.0], using default %.2f",
			s.VerticalSquash, d.VerticalSquash)
		s.VerticalSquash = d.VerticalSquash
	}
	if _, err := palette.ParseHex(s.GlowColor); err != nil {
		log.Printf("Invalid glow_color: %v, using default %s", err, d.GlowColor)
		s.GlowColor = d.GlowColor
	}
	if _, err := palette.ParseHex(s.Background); err != nil {
		log.Printf("Invalid background: %v, using default %s", err, d.Background)
		s.Background = d.Background
	}
	if s.GlowBlur < 0 {
		log.Printf("Invalid glow_blur value %g, using default %g", s.GlowBlur, d.GlowBlur)
		s.GlowBlur = d.GlowBlur
	}
	if s.MinFontSize <= 0 {
		log.Printf("Invalid min_font_size value %g, using default %g", s.MinFontSize, d.MinFontSize)
		s.MinFontSize = d.MinFontSize
	}
	if s.FPS < 1 || s.FPS > 240 {
		log.Printf("Invalid fps value %d, must be between 1 and 240, using default %d", s.FPS, d.FPS)
		s.FPS = d.FPS
	}
}

// VortexConfig converts the settings into a field configuration.
func (s *Settings) VortexConfig() (vortex.Config, error) {
	cfg := vortex.DefaultConfig()
	glow, err := palette.ParseHex(s.GlowColor)
	if err != nil {
		return cfg, fmt.Errorf("glow_color: %w", err)
	}

	cfg.RingCount = s.Rings
	cfg.ParticlesPerRing = s.ParticlesPerRing
	cfg.Glyphs = s.Glyphs
	cfg.BaseSpeed = s.BaseSpeed
	cfg.RingRadiusBase = s.RingRadiusBase
	cfg.RingRadiusStep = s.RingRadiusStep
	cfg.VerticalSquash = s.VerticalSquash
	cfg.GlowColor = glow
	cfg.GlowBlur = s.GlowBlur
	cfg.MinFontSize = s.MinFontSize

	return cfg, cfg.Validate()
}

func WriteSettings(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v interface{}) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			// Handle json tags like "field,omitempty"
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
