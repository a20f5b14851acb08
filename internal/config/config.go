package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.001
	DefaultDuration    = 10.0
	DefaultReportEvery = 100
	DefaultIntegrator  = "verlet"
)

// Config is the YAML run description. CLI flags override whatever is
// loaded here.
type Config struct {
	Input       string  `yaml:"input"`
	Preset      string  `yaml:"preset"`
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"`
	ReportEvery int     `yaml:"report_every"`
	Integrator  string  `yaml:"integrator"`
	Workers     int     `yaml:"workers"`
	Softening   float64 `yaml:"softening"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		ReportEvery: DefaultReportEvery,
		Integrator:  DefaultIntegrator,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
