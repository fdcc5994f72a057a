// Copyright (c) 2017 Yandex LLC. All rights reserved.
// Use of this source code is governed by a MPL 2.0
// license that can be found in the LICENSE file.
// Author: Vladimir Skipor <skipor@yandex-team.ru>

package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/yandex/logcast/core"
	"github.com/yandex/logcast/core/broadcast"
	"github.com/yandex/logcast/core/config"
	"github.com/yandex/logcast/core/plugin"
	"github.com/yandex/logcast/lib/errutil"
)

const Version = "0.1.0"
const defaultConfigFile = "logcast"
const defaultMessage = "Hello, World!"

var configSearchDirs = []string{"./", "./config", "/etc/logcast"}

type cliConfig struct {
	Message string `config:"message" validate:"required"`
	// Catalog is names of loggers to discover. All registered loggers are discovered, if empty.
	Catalog []string `config:"catalog"`
	// Loggers are used instead of discovered ones, if set.
	Loggers    []core.Logger    `config:"loggers"`
	Monitoring monitoringConfig `config:"monitoring"`
}

func newDefaultConfig() *cliConfig {
	return &cliConfig{
		Message:    defaultMessage,
		Monitoring: newDefaultMonitoringConfig(),
	}
}

type flags struct {
	message    string
	noWait     bool
	example    bool
	plugins    bool
	expvar     bool
	cpuProfile string
	memProfile string
}

func Run() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of logcast: logcast [<config_filename>]\n"+
			"<config_filename> is './%s.(yaml|json|...)' by default. Config is optional.\n", defaultConfigFile)
		flag.PrintDefaults()
	}
	var f flags
	flag.StringVar(&f.message, "message", "", "message to broadcast (default \""+defaultMessage+"\")")
	flag.BoolVar(&f.noWait, "no-wait", false, "exit right after broadcast, without waiting for Enter")
	flag.BoolVar(&f.example, "example", false, "print example config to STDOUT and exit")
	flag.BoolVar(&f.plugins, "plugins", false, "print registered plugins as JSON to STDOUT and exit")
	flag.BoolVar(&f.expvar, "expvar", false, "start HTTP server with monitoring variables")
	flag.StringVar(&f.cpuProfile, "cpuprofile", "", "write cpu profile to file")
	flag.StringVar(&f.memProfile, "memprofile", "", "write memory profile to this file")
	flag.Parse()

	if f.example {
		fmt.Fprint(os.Stdout, exampleConfig)
		return
	}
	if f.plugins {
		err := printPlugins(os.Stdout, plugin.DefaultRegistry())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	log := newLogger()
	conf, err := readConfig(log, flag.Args())
	if err != nil {
		log.Fatal("Config read failed", zap.Error(err))
	}
	f.apply(conf)

	closeMonitoring := startMonitoring(conf.Monitoring)
	b := newBroadcaster(log, conf)
	ok := broadcastMessage(log, b, conf.Message)
	if !f.noWait {
		waitEnter(log, os.Stdin)
	}
	err = b.Close()
	if err != nil {
		log.Error("Loggers close failed", zap.Error(err))
	}
	closeMonitoring()
	if !ok {
		os.Exit(1)
	}
}

func (f flags) apply(conf *cliConfig) {
	if f.message != "" {
		conf.Message = f.message
	}
	if f.expvar {
		conf.Monitoring.Expvar.Enabled = true
	}
	if f.cpuProfile != "" {
		conf.Monitoring.CPUProfile = profileConfig{Enabled: true, File: f.cpuProfile}
	}
	if f.memProfile != "" {
		conf.Monitoring.MemProfile = profileConfig{Enabled: true, File: f.memProfile}
	}
}

func newLogger() *zap.Logger {
	log, err := zap.NewDevelopment(zap.AddCaller())
	if err != nil {
		panic(err)
	}
	log.Info("Logcast started", zap.String("version", Version))
	zap.ReplaceGlobals(log)
	zap.RedirectStdLog(log)
	return log
}

// readConfig reads config file passed in args, or found in search dirs.
// Default config returned, if no file passed and no file found.
func readConfig(log *zap.Logger, args []string) (*cliConfig, error) {
	v := newViper()
	explicit := len(args) > 0
	if explicit {
		v.SetConfigFile(args[0])
	}
	conf := newDefaultConfig()
	err := v.ReadInConfig()
	if err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && !explicit {
			log.Info("No config file found. Using defaults.")
			return conf, nil
		}
		return nil, errors.WithStack(err)
	}
	log.Info("Reading config", zap.String("file", v.ConfigFileUsed()))
	err = config.DecodeAndValidate(v.AllSettings(), conf)
	if err != nil {
		return nil, errors.WithMessage(err, "config decode failed")
	}
	return conf, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(defaultConfigFile)
	for _, dir := range configSearchDirs {
		v.AddConfigPath(dir)
	}
	return v
}

func newBroadcaster(log *zap.Logger, conf *cliConfig) *broadcast.Broadcaster {
	deps := broadcast.Deps{Log: log, Metrics: newMetrics(conf.Monitoring)}
	if len(conf.Loggers) > 0 {
		return broadcast.New(deps, conf.Loggers...)
	}
	return broadcast.Discover(deps, plugin.DefaultRegistry(), conf.Catalog...)
}

// broadcastMessage returns false, if there were loggers, but all of them failed.
func broadcastMessage(log *zap.Logger, b *broadcast.Broadcaster, message string) (ok bool) {
	if b.Len() == 0 {
		log.Warn("No loggers to broadcast to")
	}
	err := b.Log(message)
	if err == nil {
		log.Debug("Message broadcasted", zap.Int("loggers", b.Len()))
		return true
	}
	failed := len(errutil.Errors(err))
	log.Info("Message broadcasted with failures",
		zap.Int("loggers", b.Len()),
		zap.Int("failed", failed))
	return failed < b.Len()
}

func waitEnter(log *zap.Logger, r io.Reader) {
	log.Info("Press Enter to exit")
	_, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		log.Warn("Stdin read failed", zap.Error(err))
	}
}
