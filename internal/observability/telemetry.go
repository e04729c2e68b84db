// Package observability starts the process-wide tracing and profiling
// exporters and tears them down together.
package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"slices"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/live-match/internal/config"
	"github.com/riskibarqy/live-match/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Telemetry owns whatever exporters were enabled at startup.
type Telemetry struct {
	logger   *logging.Logger
	stops    []namedStop
	PprofURL string
}

type namedStop struct {
	name string
	stop func(context.Context) error
}

// Start enables tracing, continuous profiling and the pprof listener as
// configured. On error, anything already started is shut down.
func Start(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	t.startTracing(cfg)
	if err := t.startProfiling(cfg); err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}
	if err := t.startPprof(cfg); err != nil {
		_ = t.Shutdown(ctx)
		return nil, err
	}
	return t, nil
}

// Shutdown stops exporters in reverse start order and reports every failure.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	for i := len(t.stops) - 1; i >= 0; i-- {
		s := t.stops[i]
		if err := s.stop(ctx); err != nil {
			errs = append(errs, err)
			t.logger.Warn("telemetry shutdown failed", "component", s.name, "error", err)
		}
	}
	t.stops = nil
	return errors.Join(errs...)
}

func (t *Telemetry) onShutdown(name string, stop func(context.Context) error) {
	t.stops = append(t.stops, namedStop{name: name, stop: stop})
}

func (t *Telemetry) startTracing(cfg config.Config) {
	if !cfg.UptraceEnabled || cfg.UptraceDSN == "" {
		t.logger.Info("tracing export off", "uptrace_enabled", cfg.UptraceEnabled)
		return
	}
	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	t.onShutdown("uptrace", uptrace.Shutdown)
	t.logger.Info("tracing exported to uptrace", "service", cfg.ServiceName)
}

func (t *Telemetry) startProfiling(cfg config.Config) error {
	if !cfg.PyroscopeEnabled {
		return nil
	}
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Logger:            t.logger.Named("pyroscope").Zap().Sugar(),
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"version": cfg.ServiceVersion,
			"storage": cfg.StorageDriver,
		},
		// Mutex profiles cover contention on the per-game locks.
		ProfileTypes: slices.Concat(pyroscope.DefaultProfileTypes, []pyroscope.ProfileType{
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
		}),
	})
	if err != nil {
		return err
	}
	t.onShutdown("pyroscope", func(context.Context) error { return profiler.Stop() })
	t.logger.Info("continuous profiling on", "server", cfg.PyroscopeServerAddress, "app", cfg.PyroscopeAppName)
	return nil
}

func (t *Telemetry) startPprof(cfg config.Config) error {
	if !cfg.PprofEnabled {
		return nil
	}
	listener, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.logger.Error("pprof listener stopped", "error", err)
		}
	}()
	t.PprofURL = "http://" + listener.Addr().String() + "/debug/pprof/"
	t.onShutdown("pprof", srv.Shutdown)
	t.logger.Info("pprof listening", "url", t.PprofURL)
	return nil
}
