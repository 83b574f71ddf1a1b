package config

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/andrew200611/Lab3-mutex/bench"
	"github.com/andrew200611/Lab3-mutex/workload"
	"github.com/charmbracelet/log"
	"github.com/pingcap/errors"
)

const (
	defaultDir      = "workloads"
	defaultLogLevel = "info"
)

// Config describes one benchmark experiment.
type Config struct {
	Commands  int        `toml:"commands"`  // Commands per generated workload file
	Trials    int        `toml:"trials"`    // Timed runs averaged per configuration
	Threads   []int      `toml:"threads"`   // Thread counts to sweep
	Seed      uint64     `toml:"seed"`      // Generation seed, 0 for a random one
	Dir       string     `toml:"dir"`       // Directory holding workload files
	Output    string     `toml:"output"`    // Directory for CSV, JSON and chart results, empty to skip
	LogLevel  string     `toml:"log_level"` // debug, info, warn or error
	Workloads []Workload `toml:"workload"`
}

// Workload is a named command mix and the file it is generated into.
type Workload struct {
	Name        string       `toml:"name"`
	File        string       `toml:"file"`
	Description string       `toml:"description"`
	Mix         workload.Mix `toml:"mix"`
}

// Default returns the reference experiment: three workloads of one million
// commands each, swept over 1, 2 and 3 threads with 3 trials.
func Default() *Config {
	return &Config{
		Commands: workload.DefaultCount,
		Trials:   bench.DefaultTrials,
		Threads:  []int{1, 2, 3},
		Dir:      defaultDir,
		LogLevel: defaultLogLevel,
		Workloads: []Workload{
			{
				Name:        "var17",
				File:        "var17.txt",
				Description: "Variant 17 (55% string)",
				Mix:         workload.Weighted(5, 5, 30, 5, 55),
			},
			{
				Name:        "equal",
				File:        "equal.txt",
				Description: "Equal frequencies (20% string)",
				Mix:         workload.Weighted(20, 20, 20, 20, 20),
			},
			{
				Name:        "custom",
				File:        "custom.txt",
				Description: "Write heavy (0% string)",
				Mix:         workload.Weighted(5, 45, 5, 45, 0),
			},
		},
	}
}

// Load reads a TOML config. Keys left out keep their Default values; a file
// that names any workload replaces the default workload list.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("config path is empty")
	}
	if filepath.Ext(path) != ".toml" {
		return nil, errors.Errorf("config must be a .toml file: %s", path)
	}

	cfg := Default()
	cfg.Workloads = nil
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Annotate(err, "decode config failed")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("unknown keys in config: %v", undecoded)
	}
	if len(cfg.Workloads) == 0 {
		cfg.Workloads = Default().Workloads
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debugf("loaded config from %s: %d workloads, threads %v", path, len(cfg.Workloads), cfg.Threads)
	return cfg, nil
}

// Normalize trims string settings and fills in derived defaults.
func (c *Config) Normalize() {
	c.Dir = strings.TrimSpace(c.Dir)
	if c.Dir == "" {
		c.Dir = defaultDir
	}
	c.Output = strings.TrimSpace(c.Output)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}

	for i := range c.Workloads {
		w := &c.Workloads[i]
		w.Name = strings.TrimSpace(w.Name)
		w.File = strings.TrimSpace(w.File)
		if w.File == "" && w.Name != "" {
			w.File = w.Name + ".txt"
		}
		if w.Description == "" {
			w.Description = w.Name
		}
	}
}

// Validate checks the settings a benchmark run depends on.
func (c *Config) Validate() error {
	if c.Commands < 0 {
		return errors.Errorf("commands must be >= 0: %d", c.Commands)
	}
	if c.Trials < 1 {
		return errors.Errorf("trials must be >= 1: %d", c.Trials)
	}
	if len(c.Threads) == 0 {
		return errors.New("config has no thread counts")
	}
	for _, n := range c.Threads {
		if n < 1 {
			return errors.Errorf("thread count must be >= 1: %d", n)
		}
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Annotatef(err, "invalid log_level %q", c.LogLevel)
	}
	if len(c.Workloads) == 0 {
		return errors.New("config has no workloads")
	}

	names := make(map[string]struct{}, len(c.Workloads))
	for _, w := range c.Workloads {
		if w.Name == "" {
			return errors.New("workload name is empty")
		}
		if _, ok := names[w.Name]; ok {
			return errors.Errorf("duplicate workload name: %s", w.Name)
		}
		names[w.Name] = struct{}{}
		if err := w.Mix.Validate(); err != nil {
			return errors.Annotatef(err, "workload %s", w.Name)
		}
	}
	return nil
}

// Path returns where the workload file lives under the config's Dir.
func (c *Config) Path(w Workload) string {
	if filepath.IsAbs(w.File) {
		return w.File
	}
	return filepath.Join(c.Dir, w.File)
}

// Specs lists the workloads the way the bench runner takes them.
func (c *Config) Specs() []bench.Spec {
	specs := make([]bench.Spec, 0, len(c.Workloads))
	for _, w := range c.Workloads {
		specs = append(specs, bench.Spec{
			Name:        w.Name,
			Description: w.Description,
			Path:        c.Path(w),
		})
	}
	return specs
}

// Generator returns the generator for the workload at index. A non-zero
// config seed is offset by index so each file gets its own stream.
func (c *Config) Generator(index int) *workload.Generator {
	seed := c.Seed
	if seed != 0 {
		seed += uint64(index)
	}
	return &workload.Generator{
		Mix:   c.Workloads[index].Mix,
		Count: c.Commands,
		Seed:  seed,
	}
}
