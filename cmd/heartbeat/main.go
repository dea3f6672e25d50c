// Command heartbeat supervises the native metrics collector and drives
// one visualization/output mode over its sample stream (spec §4.9).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ja7ad/heartbeat/pkg/config"
	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/mode"
	"github.com/ja7ad/heartbeat/pkg/opsmetrics"
	"github.com/ja7ad/heartbeat/pkg/sampler"
)

// exitError carries the process exit code a failure should produce,
// matching spec §6's exit-code contract without every RunE caller
// needing to know about os.Exit directly.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var modeFlag string
	var listFlag bool
	var configPath string

	log := logx.NewText(nil)
	cat := mode.NewCatalog()

	root := &cobra.Command{
		Use:           "heartbeat [mode]",
		Short:         "Heartbeat telemetry pipeline",
		Long:          "heartbeat supervises a native metrics collector and renders its sample stream through a pluggable visualization mode.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetArgs(args)
	root.Flags().StringVarP(&modeFlag, "mode", "m", "", "mode to run (see --list)")
	root.Flags().BoolVarP(&listFlag, "list", "l", false, "print the mode catalog and exit")
	root.Flags().StringVar(&configPath, "config", "", "path to a YAML config file (server mode)")
	root.FParseErrWhitelist.UnknownFlags = true

	root.RunE = func(cmd *cobra.Command, positional []string) error {
		return runHeartbeat(cmd.Context(), cat, log, modeFlag, listFlag, configPath, positional)
	}

	if err := root.Execute(); err != nil {
		var ee *exitError
		if e, ok := err.(*exitError); ok {
			ee = e
		}
		if ee != nil {
			if ee.err != nil {
				log.LogError(ee.err.Error())
			}
			return ee.code
		}
		log.LogError(err.Error())
		return 1
	}
	return 0
}

func runHeartbeat(ctx context.Context, cat *mode.Catalog, log logx.Logger, modeFlag string, listFlag bool, configPath string, positional []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return &exitError{code: 1, err: fmt.Errorf("config: %w", err)}
	}

	mode.SetServerConfig(mode.ServerConfig{
		Addr:          fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port),
		PersistPath:   cfg.Logging.FilePath,
		FlushInterval: cfg.FlushInterval(),
	})

	ops := opsmetrics.New()
	mode.SetOpsRegistry(ops)

	sel, err := mode.Dispatch(cat, modeFlag, listFlag, positional, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "available modes:")
		for _, line := range cat.List() {
			fmt.Fprintln(os.Stderr, "  "+line)
		}
		return &exitError{code: 1}
	}

	if sel.Action == mode.ActionList {
		for _, line := range cat.List() {
			fmt.Println(line)
		}
		return nil
	}

	if len(sel.UnknownArgs) > 0 {
		log.LogWarning("ignoring unrecognized arguments", logx.Meta{"args": fmt.Sprint(sel.UnknownArgs)})
	}

	m, err := cat.Build(sel.ModeKey, os.Stdout, log)
	if err != nil {
		return &exitError{code: 1, err: err}
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if configPath != "" {
		watcher, werr := config.NewWatcher(configPath, cfg, log)
		if werr != nil {
			log.LogWarning("config: live reload unavailable", logx.Meta{"err": werr.Error()})
		} else {
			go watcher.Run(func(config.Config) {
				log.LogInfo("config: reloaded")
			})
			defer watcher.Close()
		}
	}

	inv := sampler.Invocation{Dir: cfg.Collector.Dir, Command: cfg.Collector.Command, Args: cfg.Collector.Args}
	sup := sampler.New(inv, log, 0)
	sup.SetMetrics(ops)
	samples, exits, err := sup.Start(runCtx)
	if err != nil {
		return &exitError{code: 1, err: fmt.Errorf("collector: %w", err)}
	}

	exit, driveErr := mode.Drive(runCtx, m, samples, exits, log)
	if driveErr != nil {
		return &exitError{code: 1, err: driveErr}
	}

	// Exit-code contract (spec §6/§7): a clean collector exit or an
	// operator-requested cancellation both succeed; a positive collector
	// exit code is passed straight through; anything else unexplained
	// falls back to 1.
	switch {
	case exit.SpawnErr != nil:
		return &exitError{code: 1, err: exit.SpawnErr}
	case exit.Canceled:
		return nil
	case exit.Code == 0:
		return nil
	case exit.Code > 0:
		return &exitError{code: exit.Code, err: fmt.Errorf("collector: exited with code %d", exit.Code)}
	default:
		return &exitError{code: 1, err: fmt.Errorf("collector: exited with unknown status")}
	}
}

func init() {
	slog.SetLogLoggerLevel(slog.LevelInfo)
}
