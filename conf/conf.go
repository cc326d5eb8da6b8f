// Package conf holds the generator settings and the on-disk fixture
// layout.
package conf

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultOutput = "data"
	DefaultJobs   = 1
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Output  string   `yaml:"output"`
	OpTypes []string `yaml:"op_types"`
	Jobs    int      `yaml:"jobs"`
	Catalog string   `yaml:"catalog"`
	Verbose bool     `yaml:"verbose"`
}

func Default() *Config {
	return &Config{
		Output: DefaultOutput,
		Jobs:   DefaultJobs,
	}
}

// Load reads a YAML config over the defaults. An empty path yields the
// defaults; TDGEN_OUTPUT and TDGEN_JOBS override the file. The result is
// not validated since command-line flags may still override it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TDGEN_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("TDGEN_JOBS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(ErrInvalid, "TDGEN_JOBS=%q", v)
		}
		c.Jobs = n
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Output == "" {
		return errors.Wrap(ErrInvalid, "output directory is empty")
	}
	if c.Jobs < 1 {
		return errors.Wrapf(ErrInvalid, "jobs must be at least 1, got %d", c.Jobs)
	}
	return nil
}

// Save writes c as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write config")
}
