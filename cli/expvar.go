package cli

import (
	"expvar"
	"net/http"
	"os"
	"runtime/pprof"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yandex/logcast/core/broadcast"
)

const metricsPrefix = "broadcast"

type monitoringConfig struct {
	Expvar     expvarConfig  `config:"expvar"`
	CPUProfile profileConfig `config:"cpuprofile"`
	MemProfile profileConfig `config:"memprofile"`
}

type expvarConfig struct {
	Enabled bool `config:"enabled"`
	// Endpoint is "host:port" or ":port" to listen on.
	Endpoint string `config:"endpoint" validate:"endpoint"`
	// Path variables are served on.
	Path string `config:"path" validate:"url-path"`
}

type profileConfig struct {
	Enabled bool   `config:"enabled"`
	File    string `config:"file"`
}

func newDefaultMonitoringConfig() monitoringConfig {
	return monitoringConfig{
		Expvar:     expvarConfig{Endpoint: ":1234", Path: "/debug/vars"},
		CPUProfile: profileConfig{File: "cpuprofile.log"},
		MemProfile: profileConfig{File: "memprofile.log"},
	}
}

// newMetrics publishes broadcast metrics in expvar only if it will be served.
func newMetrics(conf monitoringConfig) broadcast.Metrics {
	if conf.Expvar.Enabled {
		return broadcast.NewPublishedMetrics(metricsPrefix)
	}
	return broadcast.NewMetrics()
}

func startMonitoring(conf monitoringConfig) (stop func()) {
	if conf.Expvar.Enabled {
		handler := newExpvarHandler(conf.Expvar)
		go func() {
			err := http.ListenAndServe(conf.Expvar.Endpoint, handler)
			zap.L().Fatal("Monitoring server failed", zap.Error(err))
		}()
	}
	var stops []func()
	if conf.CPUProfile.Enabled {
		stopCPU, err := startCPUProfile(conf.CPUProfile.File)
		if err != nil {
			zap.L().Fatal("CPU profile start fail", zap.Error(err))
		}
		stops = append(stops, stopCPU)
	}
	if conf.MemProfile.Enabled {
		f, err := os.Create(conf.MemProfile.File)
		if err != nil {
			zap.L().Fatal("Memory profile file create fail", zap.Error(err))
		}
		stops = append(stops, func() {
			err := pprof.WriteHeapProfile(f)
			if err != nil {
				zap.L().Error("Memory profile write fail", zap.Error(err))
			}
			f.Close()
		})
	}
	stop = func() {
		for _, s := range stops {
			s()
		}
	}
	return
}

func startCPUProfile(file string) (stop func(), err error) {
	f, err := os.Create(file)
	if err != nil {
		return nil, errors.Wrap(err, "CPU profile file create fail")
	}
	err = pprof.StartCPUProfile(f)
	if err != nil {
		f.Close()
		return nil, errors.WithStack(err)
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

func newExpvarHandler(conf expvarConfig) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(conf.Path, expvar.Handler())
	return mux
}
