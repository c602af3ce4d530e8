// Package config handles chordscope engine configuration: the numeric
// knobs of the analysis pipeline, their defaults, validation, and an
// optional JSON file round trip for hosts that want to persist tuning.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Config holds every tunable parameter of the analysis pipeline. It is
// immutable after construction: the engine never mutates it mid-stream.
type Config struct {
	// FFTSize is used for frequency-of-bin math only; the core does not
	// compute the transform itself.
	FFTSize int `json:"fftSize"`

	WhitenHalfWindow int     `json:"whitenHalfWindow"`
	WhitenEps        float64 `json:"whitenEps"`

	FMin float64 `json:"fMin"`
	FMax float64 `json:"fMax"`

	BassMinHz      float64 `json:"bassMinHz"`
	BassMaxHz      float64 `json:"bassMaxHz"`
	HPSHarmonics   int     `json:"hpsHarmonics"`
	BassMinGapBins int     `json:"bassMinGapBins"`

	ChromaTimeConstantMs   float64 `json:"chromaTcMs"`
	HarmonicTimeConstantMs float64 `json:"harmonicTcMs"`
	HPSSGamma              float64 `json:"hpssGamma"`

	ChordStableMs int `json:"chordStableMs"`
	BassStableMs  int `json:"bassStableMs"`
	BassReleaseMs int `json:"bassReleaseMs"`

	OnsetRefractoryS float64 `json:"onsetRefractoryS"`
	BPMMin           float64 `json:"bpmMin"`
	BPMMax           float64 `json:"bpmMax"`
	EnergyHistoryLen int     `json:"energyHistoryLen"`
	OnsetStdK        float64 `json:"onsetStdK"`

	ChromaMagGate float64 `json:"chromaMagGate"`
	BassPeakGate  float64 `json:"bassPeakGate"`

	ConfLow  float64 `json:"confLow"`
	ConfSpan float64 `json:"confSpan"`
}

// Default returns the spec-mandated default configuration.
func Default() *Config {
	return &Config{
		FFTSize:                4096,
		WhitenHalfWindow:       25,
		WhitenEps:              1e-6,
		FMin:                   55,
		FMax:                   5500,
		BassMinHz:              30,
		BassMaxHz:              280,
		HPSHarmonics:           4,
		BassMinGapBins:         8,
		ChromaTimeConstantMs:   220,
		HarmonicTimeConstantMs: 110,
		HPSSGamma:              1.8,
		ChordStableMs:          320,
		BassStableMs:           280,
		BassReleaseMs:          900,
		OnsetRefractoryS:       0.12,
		BPMMin:                 70,
		BPMMax:                 180,
		EnergyHistoryLen:       90,
		OnsetStdK:              2.0,
		ChromaMagGate:          0.02,
		BassPeakGate:           0.02,
		ConfLow:                0.20,
		ConfSpan:               0.80,
	}
}

// Validate checks every numeric field is finite and in-range, returning the
// offending field name wrapped in the error on failure.
func (c *Config) Validate() error {
	finite := map[string]float64{
		"whitenEps":        c.WhitenEps,
		"fMin":             c.FMin,
		"fMax":             c.FMax,
		"bassMinHz":        c.BassMinHz,
		"bassMaxHz":        c.BassMaxHz,
		"chromaTcMs":       c.ChromaTimeConstantMs,
		"harmonicTcMs":     c.HarmonicTimeConstantMs,
		"hpssGamma":        c.HPSSGamma,
		"onsetRefractoryS": c.OnsetRefractoryS,
		"bpmMin":           c.BPMMin,
		"bpmMax":           c.BPMMax,
		"onsetStdK":        c.OnsetStdK,
		"chromaMagGate":    c.ChromaMagGate,
		"bassPeakGate":     c.BassPeakGate,
		"confLow":          c.ConfLow,
		"confSpan":         c.ConfSpan,
	}
	for name, v := range finite {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("config: field %q must be finite, got %v", name, v)
		}
	}

	if c.FFTSize < 512 || c.FFTSize&(c.FFTSize-1) != 0 {
		return fmt.Errorf("config: fftSize must be a power of two >= 512, got %d", c.FFTSize)
	}
	if c.WhitenHalfWindow < 0 {
		return fmt.Errorf("config: whitenHalfWindow must be >= 0, got %d", c.WhitenHalfWindow)
	}
	if c.FMin <= 0 || c.FMax <= c.FMin {
		return fmt.Errorf("config: fMin/fMax must satisfy 0 < fMin < fMax, got %v/%v", c.FMin, c.FMax)
	}
	if c.BassMinHz <= 0 || c.BassMaxHz <= c.BassMinHz {
		return fmt.Errorf("config: bassMinHz/bassMaxHz must satisfy 0 < min < max, got %v/%v", c.BassMinHz, c.BassMaxHz)
	}
	if c.HPSHarmonics < 2 {
		return fmt.Errorf("config: hpsHarmonics must be >= 2, got %d", c.HPSHarmonics)
	}
	if c.BassMinGapBins < 0 {
		return fmt.Errorf("config: bassMinGapBins must be >= 0, got %d", c.BassMinGapBins)
	}
	if c.ChordStableMs < 0 || c.BassStableMs < 0 || c.BassReleaseMs < 0 {
		return fmt.Errorf("config: dwell fields must be >= 0 (chordStableMs=%d bassStableMs=%d bassReleaseMs=%d)",
			c.ChordStableMs, c.BassStableMs, c.BassReleaseMs)
	}
	if c.EnergyHistoryLen < 20 {
		return fmt.Errorf("config: energyHistoryLen must be >= 20, got %d", c.EnergyHistoryLen)
	}
	if c.BPMMin <= 0 || c.BPMMax <= c.BPMMin {
		return fmt.Errorf("config: bpmMin/bpmMax must satisfy 0 < min < max, got %v/%v", c.BPMMin, c.BPMMax)
	}
	if c.ConfSpan == 0 {
		return fmt.Errorf("config: confSpan must be nonzero")
	}
	return nil
}

// Manager loads and saves a Config as JSON file, giving callers a single
// point to read, update, and persist the pipeline's tuning parameters.
type Manager struct {
	path   string
	config *Config
}

// NewManager creates a configuration manager backed by configDir/chordscope.json.
func NewManager(configDir string) *Manager {
	return &Manager{
		path:   filepath.Join(configDir, "chordscope.json"),
		config: Default(),
	}
}

// Load reads the configuration from disk, writing out defaults if absent.
func (m *Manager) Load() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0700); err != nil {
		return fmt.Errorf("config: create config directory: %w", err)
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		m.config = Default()
		return m.Save()
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", m.path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", m.path, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: invalid %s: %w", m.path, err)
	}
	m.config = cfg
	return nil
}

// Save writes the configuration to disk as indented JSON.
func (m *Manager) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0700); err != nil {
		return fmt.Errorf("config: create config directory: %w", err)
	}
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", m.path, err)
	}
	return nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config { return m.config }

// Update replaces and persists the configuration.
func (m *Manager) Update(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.config = cfg
	return m.Save()
}
