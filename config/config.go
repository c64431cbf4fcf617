// Package config builds the immutable run configuration for a simulation.
// Values come from built-in defaults, then an optional YAML file, then
// PETSIM_* environment variables (a .env file is honored when present).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults mirror the reference acquisition setup.
const (
	DefaultNumDetectors   = 50
	DefaultNumEvents      = 1000
	DefaultSourceRadius   = 0.5
	DefaultDetectorRadius = 5.0
	DefaultCorrelatedProb = 0.7
	DefaultSeed           = 1
)

// Config describes one acquisition run. It is built once at startup and
// passed by value into the simulation stages; nothing mutates it afterwards.
type Config struct {
	// NumDetectors is the number of discrete elements on the ring.
	// It only affects geometry when Quantize is on.
	NumDetectors int `yaml:"num_detectors"`
	// NumEvents is the number of decay events per run.
	NumEvents int `yaml:"num_events"`
	// SourceRadius is the radius of the phantom boundary circle that
	// emissions originate from.
	SourceRadius float64 `yaml:"source_radius"`
	// DetectorRadius is the radius of the detector ring.
	DetectorRadius float64 `yaml:"detector_radius"`
	// CorrelatedProb is the probability that a photon pair is emitted
	// back-to-back rather than as two independent rays.
	CorrelatedProb float64 `yaml:"correlated_prob"`
	// Seed fixes the random stream; identical seeds reproduce runs.
	Seed int64 `yaml:"seed"`
	// Workers > 1 generates events on that many goroutines, each with
	// its own derived random stream.
	Workers int `yaml:"workers"`
	// Quantize snaps continuous ring hits to the nearest of
	// NumDetectors elements.
	Quantize bool `yaml:"quantize"`
	// PassUncorrelated makes the filter accept uncorrelated pairs
	// unconditionally instead of cutting them.
	PassUncorrelated bool `yaml:"pass_uncorrelated"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		NumDetectors:   DefaultNumDetectors,
		NumEvents:      DefaultNumEvents,
		SourceRadius:   DefaultSourceRadius,
		DetectorRadius: DefaultDetectorRadius,
		CorrelatedProb: DefaultCorrelatedProb,
		Seed:           DefaultSeed,
	}
}

// Load assembles and validates a configuration. path may be empty, in
// which case only defaults and the environment apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	// A missing .env file is fine; explicit environment still applies.
	_ = godotenv.Load()

	for _, e := range []error{
		envInt("PETSIM_NUM_DETECTORS", &c.NumDetectors),
		envInt("PETSIM_NUM_EVENTS", &c.NumEvents),
		envFloat("PETSIM_SOURCE_RADIUS", &c.SourceRadius),
		envFloat("PETSIM_DETECTOR_RADIUS", &c.DetectorRadius),
		envFloat("PETSIM_CORRELATED_PROB", &c.CorrelatedProb),
		envInt64("PETSIM_SEED", &c.Seed),
		envInt("PETSIM_WORKERS", &c.Workers),
		envBool("PETSIM_QUANTIZE", &c.Quantize),
		envBool("PETSIM_PASS_UNCORRELATED", &c.PassUncorrelated),
	} {
		if e != nil {
			return e
		}
	}
	return nil
}

// Validate reports the first configuration error. Callers treat any error
// as fatal: a run never starts on an invalid configuration.
func (c Config) Validate() error {
	switch {
	case c.NumEvents <= 0:
		return fmt.Errorf("num_events must be positive, got %d", c.NumEvents)
	case c.SourceRadius <= 0:
		return fmt.Errorf("source_radius must be positive, got %g", c.SourceRadius)
	case c.DetectorRadius <= c.SourceRadius:
		return fmt.Errorf("detector_radius (%g) must exceed source_radius (%g)",
			c.DetectorRadius, c.SourceRadius)
	case c.CorrelatedProb < 0 || c.CorrelatedProb > 1:
		return fmt.Errorf("correlated_prob must be in [0,1], got %g", c.CorrelatedProb)
	case c.Quantize && c.NumDetectors <= 0:
		return fmt.Errorf("num_detectors must be positive when quantize is on, got %d", c.NumDetectors)
	case c.Workers < 0:
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envInt64(key string, dst *int64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func envBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
