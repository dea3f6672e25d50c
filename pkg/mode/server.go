package mode

import (
	"context"
	"io"
	"time"

	"github.com/ja7ad/heartbeat/pkg/logx"
	"github.com/ja7ad/heartbeat/pkg/metrics"
	"github.com/ja7ad/heartbeat/pkg/opsmetrics"
	"github.com/ja7ad/heartbeat/pkg/serverhttp"
)

// ServerConfig is the subset of pkg/config.Config the server mode needs;
// it is a separate type so pkg/mode never imports pkg/config and cmd
// wiring stays the only place that knows about the on-disk config shape.
type ServerConfig struct {
	Addr          string
	PersistPath   string
	FlushInterval time.Duration
}

// DefaultServerConfig matches pkg/config.Default()'s server section
// (0.0.0.0:8000, ./metrics.log per spec §6). cmd/heartbeat overrides this
// with the resolved config before the server mode is built.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{Addr: "0.0.0.0:8000", PersistPath: "./metrics.log", FlushInterval: 5 * time.Second}
}

// serverCfg is read by newServerMode at construction time; cmd/heartbeat
// calls SetServerConfig before building the catalog's "server" entry.
var serverCfg = DefaultServerConfig()

// SetServerConfig overrides the configuration used by newly constructed
// server-mode instances. It must be called before Catalog.Build("server", ...).
func SetServerConfig(cfg ServerConfig) { serverCfg = cfg }

// opsRegistry, when set, is the ops metrics registry shared with
// pkg/sampler.Supervisor so decode outcomes (heartbeat_samples_ingested_total,
// heartbeat_parse_errors_total) land in the same registry server mode
// exposes over /internal/metrics. Nil means server mode creates its own.
var opsRegistry *opsmetrics.Registry

// SetOpsRegistry shares an ops registry between the sampler supervisor and
// server mode so parse/ingest counters observed before a mode is built
// still show up once server mode starts serving them.
func SetOpsRegistry(r *opsmetrics.Registry) { opsRegistry = r }

// serverMode wires the HTTP+disk server (pkg/serverhttp) into the mode
// lifecycle: OnStart opens the persistence file and starts listening,
// OnMetrics feeds every sample to both the HTTP slot and the disk
// buffer, OnShutdown drains and closes everything.
type serverMode struct {
	Info
	log logx.Logger

	cfg     ServerConfig
	persist *serverhttp.Persister
	ops     *opsmetrics.Registry
	http    *serverhttp.Server
	done    chan struct{}
}

func newServerMode(w io.Writer, log logx.Logger) Mode {
	_ = w // server mode talks over HTTP and disk, not the terminal
	return &serverMode{
		Info: Info{Key: "server", Desc: "HTTP+disk telemetry server"},
		log:  log,
		cfg:  serverCfg,
	}
}

func (m *serverMode) OnStart() error {
	m.ops = opsRegistry
	if m.ops == nil {
		m.ops = opsmetrics.New()
	}
	m.persist = serverhttp.NewPersister(m.cfg.PersistPath, m.cfg.FlushInterval, m.log).WithMetrics(m.ops)
	if err := m.persist.Open(); err != nil {
		return err
	}

	m.http = serverhttp.New(m.cfg.Addr, m.persist, m.ops, m.log)
	m.done = make(chan struct{})
	go m.persist.Run(m.done)

	go func() {
		if err := m.http.ListenAndServe(); err != nil {
			m.log.LogError("server mode: http listener stopped", logx.Meta{"err": err.Error()})
		}
	}()

	m.log.LogInfo("server mode listening", logx.Meta{"addr": m.cfg.Addr, "persist": m.cfg.PersistPath})
	return nil
}

func (m *serverMode) OnMetrics(s metrics.Sample) error {
	m.http.Observe(s)
	m.ops.SetBufferDepth(m.persist.Len())
	return nil
}

func (m *serverMode) OnShutdown(status ExitStatus) error {
	close(m.done)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.http.Shutdown(ctx); err != nil {
		m.log.LogWarning("server mode: shutdown error", logx.Meta{"err": err.Error()})
	}
	return m.persist.Close()
}
