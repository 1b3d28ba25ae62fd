// Package config loads the service configuration from YAML or JSON files
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/teeterq/teeter/core/metrics"
	"github.com/teeterq/teeter/core/sched"
	"github.com/teeterq/teeter/simulator"
)

type Config struct {
	Sched    sched.Config             `json:"sched"`
	Workload simulator.WorkloadConfig `json:"workload"`
	Device   simulator.DeviceConfig   `json:"device"`
	Metrics  metrics.Config           `json:"metrics"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. TEETER_SCHED__SYNC_RATIO=8.
	if err := k.Load(env.Provider("TEETER_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "teeter_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Sched.SetDefaults()
	cfg.Workload.SetDefaults()
	cfg.Device.SetDefaults()
	if err := cfg.Sched.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Workload.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Device.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
