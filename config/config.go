// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logtypes "github.com/BOXFoundation/intcode/log/types"
	"github.com/BOXFoundation/intcode/metrics"
	"github.com/spf13/viper"
)

////////////////////////////////////////////////////////////////
// build time variants

// Version number of the build
var Version string

// GitCommit id of source code
var GitCommit string

// GitBranch name of source code
var GitBranch string

// GoVersion used to build the binary
var GoVersion string

////////////////////////////////////////////////////////////////

// VMConfig bounds and instruments vm execution
type VMConfig struct {
	MaxSteps uint64 `mapstructure:"max_steps"`
	Trace    bool   `mapstructure:"trace"`
}

// LoaderConfig configures the program cache
type LoaderConfig struct {
	CacheSize int `mapstructure:"cache_size"`
}

// Config is a configuration data structure for the intcode tools,
// which is read from config file or parsed from command line.
type Config struct {
	Workspace string          `mapstructure:"workspace"`
	Log       logtypes.Config `mapstructure:"log"`
	VM        VMConfig        `mapstructure:"vm"`
	Loader    LoaderConfig    `mapstructure:"loader"`
	Metrics   metrics.Config  `mapstructure:"metrics"`
}

var format = `workspace: %s
log: %v
vm: %+v
loader: %+v
metrics: %+v`

func (c Config) String() string {
	return fmt.Sprintf(format, c.Workspace, c.Log, c.VM, c.Loader, c.Metrics)
}

// SetDefaults registers the default values of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("vm.max_steps", 0)
	v.SetDefault("vm.trace", false)
	v.SetDefault("loader.cache_size", 16)
	v.SetDefault("metrics.enable", false)
}

// Load unmarshals v into a prepared Config
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Prepare(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Prepare function makes sure all configurations are correct.
func (c *Config) Prepare() error {
	if c.Workspace != "" {
		ws, err := filepath.Abs(c.Workspace)
		if err != nil {
			return err
		}
		c.Workspace = ws // change to abs path
	}

	if c.Loader.CacheSize <= 0 {
		return fmt.Errorf("invalid loader cache size %d", c.Loader.CacheSize)
	}

	// check log file configuration
	for _, hook := range c.Log.Hooks {
		if hook.Name != "file" { // only check file logs
			continue
		}
		if hook.Options == nil {
			return fmt.Errorf("file log hook needs a filename")
		}
		filename, ok := hook.Options["filename"]
		if !ok {
			filename = "intcode.log"
		}
		strV, ok := filename.(string)
		if !ok || len(strV) == 0 {
			return fmt.Errorf("incorrect log filename %v", filename)
		}
		if !filepath.IsAbs(strV) {
			if strings.Contains(strV, "/") {
				return fmt.Errorf("incorrect log filename %s", strV)
			}
			if c.Workspace == "" {
				return fmt.Errorf("relative log filename %s needs a workspace", strV)
			}
			strV = filepath.Join(c.Workspace, "logs", strV)
		}
		if err := os.MkdirAll(filepath.Dir(strV), 0700); err != nil {
			return err
		}
		hook.Options["filename"] = strV
	}
	return nil
}
