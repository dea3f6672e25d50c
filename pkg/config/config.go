// Package config resolves Heartbeat's runtime configuration from an
// optional YAML file and the built-in defaults in spec §6; file values
// override defaults (SPEC_FULL.md §4.9A). No CLI flag overrides a
// configuration value. When a file path is given it can be watched for
// changes with fsnotify and reloaded.
package config

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/ja7ad/heartbeat/pkg/logx"
)

// Server holds the HTTP bind configuration for server mode.
type Server struct {
	Port     int    `yaml:"port"`
	Hostname string `yaml:"hostname"`
}

// Logging holds the server-mode disk persistence configuration.
type Logging struct {
	FilePath   string `yaml:"filePath"`
	IntervalMs int    `yaml:"intervalMs"`
}

// Collector describes how to invoke the native metrics collector.
type Collector struct {
	Dir     string   `yaml:"dir"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// Config is Heartbeat's resolved runtime configuration.
type Config struct {
	Server    Server    `yaml:"server"`
	Logging   Logging   `yaml:"logging"`
	Collector Collector `yaml:"collector"`
}

// Default returns the built-in defaults from spec §6.
func Default() Config {
	return Config{
		Server: Server{
			Port:     8000,
			Hostname: "0.0.0.0",
		},
		Logging: Logging{
			FilePath:   "./metrics.log",
			IntervalMs: 5000,
		},
		Collector: Collector{
			Dir:     ".",
			Command: "cargo",
			Args:    []string{"run", "--release", "--quiet"},
		},
	}
}

// FlushInterval returns Logging.IntervalMs as a time.Duration.
func (c Config) FlushInterval() time.Duration {
	return time.Duration(c.Logging.IntervalMs) * time.Millisecond
}

// mergeFile overlays non-zero fields from file on top of base, per the
// precedence rule: file values override defaults, but a zero value in the
// file (field simply absent from the YAML) leaves the default untouched.
func mergeFile(base, file Config) Config {
	out := base
	if file.Server.Port != 0 {
		out.Server.Port = file.Server.Port
	}
	if file.Server.Hostname != "" {
		out.Server.Hostname = file.Server.Hostname
	}
	if file.Logging.FilePath != "" {
		out.Logging.FilePath = file.Logging.FilePath
	}
	if file.Logging.IntervalMs != 0 {
		out.Logging.IntervalMs = file.Logging.IntervalMs
	}
	if file.Collector.Dir != "" {
		out.Collector.Dir = file.Collector.Dir
	}
	if file.Collector.Command != "" {
		out.Collector.Command = file.Collector.Command
	}
	if len(file.Collector.Args) != 0 {
		out.Collector.Args = file.Collector.Args
	}
	return out
}

// Load resolves configuration starting from Default(), overlaying the
// given YAML file (if path is non-empty), and returns the result. It does
// not start watching; call NewWatcher separately.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	var file Config
	if err := yaml.Unmarshal(b, &file); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return mergeFile(cfg, file), nil
}

// Watcher reloads a config file on write events and hands the merged
// result to onChange; what a change affects is up to onChange.
// Server.* changes are additionally logged as requiring a restart, since
// rebinding a listening socket mid-run is out of scope (SPEC_FULL.md §4.9A).
type Watcher struct {
	mu     sync.Mutex
	path   string
	base   Config
	fsw    *fsnotify.Watcher
	logger logx.Logger
}

// NewWatcher starts watching path for changes. base is the configuration
// already resolved from defaults plus the initial file read, used as the
// overlay target for subsequent reloads.
func NewWatcher(path string, base Config, logger logx.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logx.New(nil)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watcher: %w", err)
	}
	if err := fsw.Add(path); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	return &Watcher{path: path, base: base, fsw: fsw, logger: logger}, nil
}

// Run blocks, invoking onChange with the newly merged Config whenever the
// watched file is written, until ctx-equivalent Close is called.
func (w *Watcher) Run(onChange func(Config)) {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload(onChange)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.LogWarning("config: watch error", logx.Meta{"err": err.Error()})
		}
	}
}

func (w *Watcher) reload(onChange func(Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	b, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.LogWarning("config: reload read failed", logx.Meta{"err": err.Error()})
		return
	}
	var file Config
	if err := yaml.Unmarshal(b, &file); err != nil {
		w.logger.LogWarning("config: reload parse failed", logx.Meta{"err": err.Error()})
		return
	}
	merged := mergeFile(w.base, file)
	if merged.Server.Port != w.base.Server.Port || merged.Server.Hostname != w.base.Server.Hostname {
		w.logger.LogWarning("config: server.port/hostname changed but requires a restart to take effect")
	}
	w.base = merged
	onChange(merged)
}

// Close stops the underlying filesystem watch.
func (w *Watcher) Close() error { return w.fsw.Close() }
