// Copyright (c) 2018 ContentBox Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package root

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/BOXFoundation/intcode/config"
	"github.com/BOXFoundation/intcode/log"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// root command
var cfgFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "intcode",
	Short: "Intcode virtual machine command-line interface",
	Long: `Intcode runs programs written for the Intcode integer virtual machine,
			and hosts amplifier chains and packet networks built from them.`,
	Example: `
1. run a program, feeding it input values
  ./intcode run prog.txt --input 1,2
2. save a suspended program and resume it later
  ./intcode run prog.txt --save state.yaml
  ./intcode run --resume state.yaml --input 5
3. disassemble a program
  ./intcode disasm prog.txt
4. find the best amplifier phase sequence
  ./intcode amplify prog.txt --phases 5,6,7,8,9
5. run a 50 node packet network
  ./intcode network prog.txt --nodes 50 --idle
6. debug a program interactively
  ./intcode console prog.txt
	`,
	Version:       fmt.Sprintf("%s %s(%s) %s\n", config.Version, config.GitCommit, config.GitBranch, config.GoVersion),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var logger = log.NewLogger("cmd")

// init sets flags appropriately.
func init() {
	cobra.OnInitialize(initConfig)
	config.SetDefaults(viper.GetViper())

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.intcode.yaml)")

	RootCmd.PersistentFlags().String("workspace", "", "work directory for log files (default ~/.intcode)")
	viper.BindPFlag("workspace", RootCmd.PersistentFlags().Lookup("workspace"))

	RootCmd.PersistentFlags().String("log-level", "info", "log level [debug|info|warn|error|fatal]")
	viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level"))

	RootCmd.PersistentFlags().Uint64("max-steps", 0, "maximum instructions per resumption, 0 for no limit")
	viper.BindPFlag("vm.max_steps", RootCmd.PersistentFlags().Lookup("max-steps"))

	RootCmd.PersistentFlags().Bool("trace", false, "log every executed instruction")
	viper.BindPFlag("vm.trace", RootCmd.PersistentFlags().Lookup("trace"))

	RootCmd.PersistentFlags().Int("cache-size", 16, "number of parsed programs to cache")
	viper.BindPFlag("loader.cache_size", RootCmd.PersistentFlags().Lookup("cache-size"))

	RootCmd.PersistentFlags().Bool("stats", false, "print vm metrics on exit")
	viper.BindPFlag("stats", RootCmd.PersistentFlags().Lookup("stats"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	logger.SetLogLevel(viper.GetString("log.level"))

	// Find home directory.
	home, err := homedir.Dir()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in home directory or current directory with name ".intcode" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".intcode")
	}

	viper.SetEnvPrefix("intcode")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	viper.SetDefault("workspace", path.Join(home, ".intcode"))

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logger.Infof("Using config file: %s", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Println("Failed to read config ", err)
		os.Exit(1)
	}
}
