package main

import (
	"fmt"
	"os"

	"github.com/vinayprograms/agentkit/telemetry"
	"github.com/vinayprograms/planner/internal/catalog"
	"github.com/vinayprograms/planner/internal/config"
	"github.com/vinayprograms/planner/internal/llm"
	"github.com/vinayprograms/planner/internal/orchestrator"
	plantel "github.com/vinayprograms/planner/internal/telemetry"
)

// runtime holds the wired components behind one CLI invocation.
type runtime struct {
	cfg      *config.Config
	registry *catalog.Registry
	orch     *orchestrator.Orchestrator
	cleanup  []func()
}

// close runs deferred cleanups in reverse registration order.
func (r *runtime) close() {
	for i := len(r.cleanup) - 1; i >= 0; i-- {
		r.cleanup[i]()
	}
}

// loadConfig loads the named config file or the default.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.LoadDefault()
}

// newRuntime wires catalog, model factory, telemetry, events, and the
// orchestrator from configuration.
func newRuntime(configPath string) (*runtime, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg}

	rt.registry = catalog.NewRegistry(cfg.Catalog.SkillPaths, cfg.Catalog.SubagentPaths)
	if cfg.Catalog.Watch {
		watcher, err := catalog.NewWatcher(rt.registry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: catalog watch disabled: %v\n", err)
		} else {
			rt.cleanup = append(rt.cleanup, func() { watcher.Close() })
		}
	}

	var exporter telemetry.Exporter
	if cfg.Telemetry.Enabled {
		exporter, err = telemetry.NewExporter(cfg.Telemetry.Protocol, cfg.Telemetry.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("error creating telemetry exporter: %w", err)
		}
	} else {
		exporter = telemetry.NewNoopExporter()
	}
	rt.cleanup = append(rt.cleanup, func() { exporter.Close() })

	var notifier plantel.Notifier = plantel.NewNoopNotifier()
	if cfg.Events.URL != "" {
		nn, err := plantel.NewNATSNotifier(cfg.Events.URL, cfg.Events.Subject)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: event publishing disabled: %v\n", err)
		} else {
			notifier = nn
			rt.cleanup = append(rt.cleanup, func() { nn.Close() })
		}
	}

	factory, err := llm.NewFactory(llm.Config{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	rt.orch = orchestrator.New(rt.registry, factory, notifier, orchestrator.Options{
		MaxOutputTokens: cfg.Planner.MaxOutputTokens,
		Temperature:     cfg.Planner.Temperature,
		HistoryWindow:   cfg.Planner.HistoryWindow,
		DefaultAPIKey:   defaultAPIKey(cfg),
	})
	return rt, nil
}

// defaultAPIKey resolves the process-wide key: the configured env var first,
// then the credentials file.
func defaultAPIKey(cfg *config.Config) string {
	if key := cfg.GetAPIKey(); key != "" {
		return key
	}
	if globalCreds != nil {
		return globalCreds.GetAPIKey(cfg.LLM.Provider)
	}
	return ""
}
