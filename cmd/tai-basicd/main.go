// Command tai-basicd is a reference daemon for the basic transponder
// platform.
//
// It creates the modules described in a YAML configuration file (or a
// single module in slot 0 when no file is given), drives their state
// machines to READY, and then either waits for a shutdown signal or
// runs an interactive shell.
//
// Usage:
//
//	tai-basicd [flags]
//
// Flags:
//
//	-config string     Configuration file path
//	-log-level string  Log level: debug, info, warn, error (default "info")
//	-event-log string  Append platform events to this CBOR file
//	-interactive       Run an interactive command shell
//
// Examples:
//
//	# Single module in slot 0, wait for SIGINT
//	tai-basicd
//
//	# Full platform from a config file with event capture
//	tai-basicd -config /etc/tai/platform.yaml -event-log /var/log/tai/events.cbor
//
//	# Interactive exploration
//	tai-basicd -interactive -log-level debug
package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tai-platform/tai-go/cmd/tai-basicd/interactive"
	"github.com/tai-platform/tai-go/pkg/basic"
	"github.com/tai-platform/tai-go/pkg/log"
	"github.com/tai-platform/tai-go/pkg/oid"
	"github.com/tai-platform/tai-go/pkg/tai"
)

// Config holds the daemon configuration.
type Config struct {
	ConfigFile  string
	LogLevel    string
	EventLog    string
	Interactive bool
}

var config Config

func init() {
	flag.StringVar(&config.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&config.EventLog, "event-log", "", "Append platform events to this CBOR file")
	flag.BoolVar(&config.Interactive, "interactive", false, "Run an interactive command shell")
}

func main() {
	flag.Parse()

	logger, level, err := setupLogging(config.LogLevel)
	if err != nil {
		stdlog.Fatalf("Invalid configuration: %v", err)
	}

	fc := defaultConfig()
	if config.ConfigFile != "" {
		fc, err = LoadConfigFile(config.ConfigFile)
		if err != nil {
			stdlog.Fatalf("Failed to load config: %v", err)
		}
	}

	eventLogger, closeEvents, err := setupEventLog(config.EventLog, logger, level)
	if err != nil {
		stdlog.Fatalf("Failed to open event log: %v", err)
	}
	defer closeEvents()

	platform := basic.NewPlatform(basic.Config{
		Services: tai.Services{
			Logger:      logger,
			EventLogger: eventLogger,
			Alarm: func(id oid.ID, severity tai.AlarmSeverity, message string) {
				logger.Warn("alarm", "object", id, "severity", severity, "message", message)
			},
		},
	})
	defer platform.Close()

	if err := createObjects(platform, fc, logger); err != nil {
		stdlog.Fatalf("Failed to create objects: %v", err)
	}

	if config.Interactive {
		shell, err := interactive.New(platform)
		if err != nil {
			stdlog.Fatalf("Failed to start shell: %v", err)
		}
		shell.Run()
		return
	}

	logger.Info("platform running", "modules", len(platform.Modules()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("shutting down", "signal", sig.String())
}

// defaultConfig describes a single module in slot 0 with one network
// interface and both host interfaces.
func defaultConfig() *FileConfig {
	return &FileConfig{
		Modules: []ModuleConfig{
			{Location: "0", NetIf: true, HostIfs: []uint32{0, 1}},
		},
	}
}

func setupLogging(level string) (*slog.Logger, slog.Level, error) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, lvl, fmt.Errorf("unknown log level: %s", level)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler), lvl, nil
}

// setupEventLog builds the event capture pipeline: a CBOR file sink
// when -event-log is given, mirrored to the operational log at debug
// level.
func setupEventLog(path string, logger *slog.Logger, level slog.Level) (log.Logger, func(), error) {
	var sinks []log.Logger
	closer := func() {}

	if path != "" {
		fl, err := log.NewFileLogger(path)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, fl)
		closer = func() { fl.Close() }
	}
	if level <= slog.LevelDebug {
		sinks = append(sinks, log.NewSlogAdapter(logger))
	}

	switch len(sinks) {
	case 0:
		return log.NoopLogger{}, closer, nil
	case 1:
		return sinks[0], closer, nil
	default:
		return log.NewMultiLogger(sinks...), closer, nil
	}
}

// createObjects creates the modules and their interfaces described by
// the configuration file.
func createObjects(platform *basic.Platform, fc *FileConfig, logger *slog.Logger) error {
	for _, mc := range fc.Modules {
		moduleID, err := platform.Create(oid.ObjectTypeModule, oid.None, []tai.AttributeValue{
			{ID: tai.ModuleAttrLocation, Value: mc.Location},
		})
		if err != nil {
			return fmt.Errorf("module at location %q: %w", mc.Location, err)
		}
		logger.Info("created module", "id", moduleID, "location", mc.Location)

		if mc.NetIf {
			netifID, err := platform.Create(oid.ObjectTypeNetworkIf, moduleID, []tai.AttributeValue{
				{ID: tai.NetworkIfAttrIndex, Value: uint32(0)},
			})
			if err != nil {
				return fmt.Errorf("netif for module %q: %w", mc.Location, err)
			}
			logger.Info("created netif", "id", netifID)
		}

		for _, idx := range mc.HostIfs {
			hostifID, err := platform.Create(oid.ObjectTypeHostIf, moduleID, []tai.AttributeValue{
				{ID: tai.HostIfAttrIndex, Value: idx},
			})
			if err != nil {
				return fmt.Errorf("hostif %d for module %q: %w", idx, mc.Location, err)
			}
			logger.Info("created hostif", "id", hostifID, "index", idx)
		}
	}
	return nil
}
