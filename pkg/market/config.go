package market

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"pulse-api/pkg/confkit"
)

// Config describes the set of market data sources available to the application.
type Config struct {
	Default string                   `yaml:"default"`
	Sources map[string]*SourceConfig `yaml:"sources"`
}

// SourceConfig represents configuration for a single market data source.
type SourceConfig struct {
	Type string `yaml:"type"`

	BaseURL    string  `yaml:"base_url"`
	Coin       string  `yaml:"coin"`
	VsCurrency string  `yaml:"vs_currency"`
	Days       float64 `yaml:"days"`
	Interval   string  `yaml:"interval"`

	TimeoutRaw string        `yaml:"timeout"`
	Timeout    time.Duration `yaml:"-"`
}

// SourceBuilder constructs a Source from configuration.
type SourceBuilder func(name string, cfg *SourceConfig) (Source, error)

var (
	sourceRegistry   = make(map[string]SourceBuilder)
	sourceRegistryMu sync.RWMutex
)

// RegisterSource registers a market data source constructor.
func RegisterSource(typeName string, builder SourceBuilder) {
	sourceRegistryMu.Lock()
	defer sourceRegistryMu.Unlock()
	sourceRegistry[strings.ToLower(strings.TrimSpace(typeName))] = builder
}

func lookupSourceBuilder(typeName string) (SourceBuilder, bool) {
	sourceRegistryMu.RLock()
	defer sourceRegistryMu.RUnlock()
	builder, ok := sourceRegistry[strings.ToLower(strings.TrimSpace(typeName))]
	return builder, ok
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open market config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read market config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal market config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalise() error {
	if c.Sources == nil {
		c.Sources = make(map[string]*SourceConfig)
	}
	for name, source := range c.Sources {
		if source == nil {
			source = &SourceConfig{}
			c.Sources[name] = source
		}
		source.expandEnv()
		if err := source.parseDurations(name); err != nil {
			return err
		}
	}
	return nil
}

func (s *SourceConfig) expandEnv() {
	s.Type = strings.TrimSpace(os.ExpandEnv(s.Type))
	s.BaseURL = strings.TrimSpace(os.ExpandEnv(s.BaseURL))
	s.Coin = strings.TrimSpace(os.ExpandEnv(s.Coin))
	s.VsCurrency = strings.TrimSpace(os.ExpandEnv(s.VsCurrency))
	s.Interval = strings.TrimSpace(os.ExpandEnv(s.Interval))
	s.TimeoutRaw = strings.TrimSpace(os.ExpandEnv(s.TimeoutRaw))
}

func (s *SourceConfig) parseDurations(name string) error {
	if s.TimeoutRaw == "" {
		return nil
	}
	d, err := time.ParseDuration(s.TimeoutRaw)
	if err != nil {
		return fmt.Errorf("market source %s: invalid timeout %q: %w", name, s.TimeoutRaw, err)
	}
	if d <= 0 {
		return fmt.Errorf("market source %s: timeout must be positive, got %s", name, d)
	}
	s.Timeout = d
	return nil
}

// Validate ensures the configuration is structurally sound.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("market config: sources cannot be empty")
	}
	if c.Default != "" {
		if _, ok := c.Sources[c.Default]; !ok {
			return fmt.Errorf("market config: default source %q not defined", c.Default)
		}
	}
	for name, source := range c.Sources {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("market config: source name cannot be empty")
		}
		if err := source.validate(name); err != nil {
			return err
		}
	}
	return nil
}

func (s *SourceConfig) validate(name string) error {
	if s == nil {
		return fmt.Errorf("market config: source %s is nil", name)
	}
	if strings.TrimSpace(s.Type) == "" {
		return fmt.Errorf("market config: source %s must specify type", name)
	}
	if _, ok := lookupSourceBuilder(s.Type); !ok {
		return fmt.Errorf("market config: source %s has unsupported type %q", name, s.Type)
	}
	if s.Days < 0 {
		return fmt.Errorf("market config: source %s days cannot be negative", name)
	}
	return nil
}

// BuildSources instantiates market data sources according to configuration.
func (c *Config) BuildSources() (map[string]Source, error) {
	result := make(map[string]Source, len(c.Sources))
	for name, sourceCfg := range c.Sources {
		builder, ok := lookupSourceBuilder(sourceCfg.Type)
		if !ok {
			return nil, fmt.Errorf("market source %s: unsupported type %q", name, sourceCfg.Type)
		}
		source, err := builder(name, sourceCfg)
		if err != nil {
			return nil, fmt.Errorf("market source %s: %w", name, err)
		}
		result[name] = source
	}
	return result, nil
}

// BuildDefault instantiates the configured default source, falling back to the
// sole configured source when no default is named.
func (c *Config) BuildDefault() (Source, error) {
	sources, err := c.BuildSources()
	if err != nil {
		return nil, err
	}
	if c.Default != "" {
		return sources[c.Default], nil
	}
	if len(sources) == 1 {
		for _, source := range sources {
			return source, nil
		}
	}
	return nil, fmt.Errorf("market config: default source is required when multiple sources are configured")
}
