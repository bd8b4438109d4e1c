package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/vibedit/format"
	"github.com/chrisuehlinger/vibedit/internal/config"
	"github.com/chrisuehlinger/vibedit/internal/logging"
	"github.com/chrisuehlinger/vibedit/js"
)

// app carries the state shared by every command once the global flags and
// the configuration are resolved.
type app struct {
	debug      bool
	configPath string
	output     string

	config   *config.Config
	logger   *log.Logger
	registry *format.Registry
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	a.config = cfg

	level := cfg.LogLevel
	if a.debug {
		level = "debug"
	}
	a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
	if a.configPath != "" {
		a.logger.Debug("Loaded config", logging.FieldPath, a.configPath, logging.FieldCount, len(cfg.Formats))
	}

	registry, err := buildRegistry(cfg, a.logger)
	if err != nil {
		return err
	}
	a.registry = registry
	return nil
}

// buildRegistry starts from the builtin formats and adds or replaces the
// configured ones. Script formats share one runtime.
func buildRegistry(cfg *config.Config, logger *log.Logger) (*format.Registry, error) {
	registry := format.Builtins()

	var runtime *js.Runtime
	for _, fc := range cfg.Formats {
		if fc.Script == "" {
			if err := registry.RegisterSpec(fc.Spec()); err != nil {
				return nil, fmt.Errorf("format %s: %w", fc.Name, err)
			}
			logger.Debug("Registered format", logging.FieldName, fc.Name)
			continue
		}

		if runtime == nil {
			runtime = js.NewRuntime(logger)
		}
		f, err := js.LoadFormatFile(runtime, fc.Name, cfg.ScriptPath(fc))
		if err != nil {
			return nil, err
		}
		registry.Set(f)
	}
	return registry, nil
}
