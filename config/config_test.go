// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/facebookgo/ensure"
	"github.com/spf13/viper"
)

var testConfig = []byte(`
log:
  level: debug
vm:
  max_steps: 1000
  trace: true
loader:
  cache_size: 4
metrics:
  enable: true
`)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	ensure.Nil(t, err)
	ensure.DeepEqual(t, cfg.Log.Level, "info")
	ensure.DeepEqual(t, cfg.VM, VMConfig{})
	ensure.DeepEqual(t, cfg.Loader.CacheSize, 16)
	ensure.False(t, cfg.Metrics.Enable)
}

func TestLoadYAML(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	ensure.Nil(t, v.ReadConfig(bytes.NewReader(testConfig)))

	cfg, err := Load(v)
	ensure.Nil(t, err)
	ensure.DeepEqual(t, cfg.Log.Level, "debug")
	ensure.DeepEqual(t, cfg.VM, VMConfig{MaxSteps: 1000, Trace: true})
	ensure.DeepEqual(t, cfg.Loader.CacheSize, 4)
	ensure.True(t, cfg.Metrics.Enable)
}

func TestPrepareRejectsCacheSize(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("loader.cache_size", 0)
	_, err := Load(v)
	ensure.NotNil(t, err)
}

func TestPrepareLogFile(t *testing.T) {
	ws, err := ioutil.TempDir("", "intcode")
	ensure.Nil(t, err)
	defer os.RemoveAll(ws)

	v := viper.New()
	SetDefaults(v)
	v.Set("workspace", ws)
	v.Set("log.hooks", []map[string]interface{}{
		{"name": "file", "options": map[string]interface{}{"filename": "vm.log"}},
	})
	cfg, err := Load(v)
	ensure.Nil(t, err)
	ensure.DeepEqual(t, cfg.Log.Hooks[0].Options["filename"], filepath.Join(ws, "logs", "vm.log"))

	_, err = os.Stat(filepath.Join(ws, "logs"))
	ensure.Nil(t, err)
}
