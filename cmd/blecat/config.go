package main

import (
	"flag"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/duckfullstop/blecat/pkg/catalog"
)

// Config holds the settings shared by scan and replay. It can be loaded from
// a YAML file; flags given on the command line win over the file.
type Config struct {
	Timeout  float64 `yaml:"timeout"`
	Filter   string  `yaml:"filter"`
	Live     bool    `yaml:"live"`
	Sort     string  `yaml:"sort"`
	Group    bool    `yaml:"group"`
	Verbose  bool    `yaml:"verbose"`
	Capture  string  `yaml:"capture"`
	LogLevel string  `yaml:"log_level"`

	// File is the snapshot replayed by the replay command.
	File string `yaml:"-"`
}

func defaultConfig() Config {
	return Config{
		Timeout:  10,
		Sort:     "rssi",
		LogLevel: "info",
	}
}

func loadConfig(path string, base Config) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrap(err, "read config")
	}
	cfg := base
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return base, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// options validates the catalog related settings.
func (c Config) options() (catalog.Options, error) {
	key, err := catalog.ParseSortKey(c.Sort)
	if err != nil {
		return catalog.Options{}, err
	}
	return catalog.Options{
		Filter:        c.Filter,
		Sort:          key,
		GroupByVendor: c.Group,
	}, nil
}

func (c Config) validate() error {
	if c.Timeout <= 0 {
		return errors.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log level")
	}
	_, err := c.options()
	return err
}

// parseFlags parses args for the named command. Scan flags are only
// registered for scan, the replay file only for replay.
func parseFlags(cmd string, args []string) (Config, error) {
	flags := defaultConfig()
	var configPath string

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "YAML file with default settings")
	fs.StringVar(&flags.Filter, "filter", flags.Filter, "filter devices by name (case-insensitive)")
	fs.StringVar(&flags.Filter, "f", flags.Filter, "shorthand for -filter")
	fs.StringVar(&flags.Sort, "sort", flags.Sort, "sort by: rssi, name or manufacturer")
	fs.StringVar(&flags.Sort, "s", flags.Sort, "shorthand for -sort")
	fs.BoolVar(&flags.Group, "group", flags.Group, "group devices by manufacturer")
	fs.BoolVar(&flags.Group, "g", flags.Group, "shorthand for -group")
	fs.BoolVar(&flags.Verbose, "verbose", flags.Verbose, "show raw manufacturer data")
	fs.BoolVar(&flags.Verbose, "v", flags.Verbose, "shorthand for -verbose")
	fs.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level (debug, info, warn, error)")

	switch cmd {
	case "scan":
		fs.Float64Var(&flags.Timeout, "timeout", flags.Timeout, "scan duration in seconds")
		fs.Float64Var(&flags.Timeout, "t", flags.Timeout, "shorthand for -timeout")
		fs.BoolVar(&flags.Live, "live", flags.Live, "show devices as they are found")
		fs.BoolVar(&flags.Live, "l", flags.Live, "shorthand for -live")
		fs.StringVar(&flags.Capture, "capture", flags.Capture, "write the scan snapshot to this file")
	case "replay":
		fs.StringVar(&flags.File, "file", "", "snapshot file written by scan -capture")
	}

	if err := fs.Parse(args); err != nil {
		return flags, err
	}

	cfg := defaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = loadConfig(configPath, cfg); err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "filter", "f":
			cfg.Filter = flags.Filter
		case "sort", "s":
			cfg.Sort = flags.Sort
		case "group", "g":
			cfg.Group = flags.Group
		case "verbose", "v":
			cfg.Verbose = flags.Verbose
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "timeout", "t":
			cfg.Timeout = flags.Timeout
		case "live", "l":
			cfg.Live = flags.Live
		case "capture":
			cfg.Capture = flags.Capture
		case "file":
			cfg.File = flags.File
		}
	})

	if cmd == "replay" && cfg.File == "" {
		return cfg, errors.New("replay needs -file")
	}
	return cfg, cfg.validate()
}
