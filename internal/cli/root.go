// Package cli implements the studio CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"studio/internal/agent"
	"studio/internal/config"
	"studio/internal/history"
	"studio/internal/i18n"
	"studio/internal/storage"
	"studio/internal/studio"
	"studio/internal/tokens"
	"studio/internal/tui"

	"github.com/spf13/cobra"
)

var (
	configPath string
	sampleFlag bool
)

// RootCmd 顶层命令，默认启动 TUI
// RootCmd is the top-level command; bare invocation starts the TUI
var RootCmd = &cobra.Command{
	Use:   "studio",
	Short: "AI short-form script studio",
	Long:  "Turn content ideas into approved short-form scripts and production-ready video scripts, with a local session history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps()
		if err != nil {
			return err
		}
		defer d.Close()

		return tui.Run(tui.Options{
			Session:   d.session,
			History:   d.store,
			Estimator: tokens.ForModel(d.cfg.Agent.Model),
			Agents:    d.profiles,
			Model:     d.cfg.Agent.Model,
			Backend:   d.cfg.Storage.Backend,
		})
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config JSON/JSONC")
	RootCmd.PersistentFlags().BoolVar(&sampleFlag, "sample", false, "Start in sample data mode")
}

// Execute 运行 CLI / Execute runs the CLI
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// deps 一次启动所需的全部依赖 / deps is everything one invocation needs
type deps struct {
	cfg      config.Config
	slot     storage.Slot
	store    *history.Store
	session  *studio.Session
	profiles []agent.Profile
}

func (d *deps) Close() {
	if d.slot != nil {
		_ = d.slot.Close()
	}
}

func buildDeps() (*deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	i18n.Init(cfg.UI.Locale)

	slot, err := openSlot(cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	store := history.New(slot)
	if sampleFlag || cfg.UI.Sample {
		store.SetSampleMode(true)
	}

	profiles := []agent.Profile{
		agent.ScriptAgent(cfg.Agent.ScriptAgentID),
		agent.VideoAgent(cfg.Agent.VideoAgentID),
	}
	client := agent.NewOpenAIClient(agent.OpenAIConfig{
		BaseURL:   cfg.Agent.BaseURL,
		APIKey:    cfg.Agent.APIKey,
		Model:     cfg.Agent.Model,
		TimeoutMS: cfg.Agent.TimeoutMS,
	}, profiles...)

	session := studio.NewSession(studio.Options{
		Client:        client,
		History:       store,
		ScriptAgentID: cfg.Agent.ScriptAgentID,
		VideoAgentID:  cfg.Agent.VideoAgentID,
		Retry:         retryOptions(cfg),
	})

	return &deps{
		cfg:      cfg,
		slot:     slot,
		store:    store,
		session:  session,
		profiles: profiles,
	}, nil
}

// openHistoryStore 仅打开历史存储，供不需要智能体的子命令使用
// openHistoryStore opens just the history store for agent-free subcommands
func openHistoryStore() (*history.Store, storage.Slot, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	i18n.Init(cfg.UI.Locale)

	slot, err := openSlot(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	store := history.New(slot)
	if sampleFlag || cfg.UI.Sample {
		store.SetSampleMode(true)
	}
	return store, slot, nil
}

func openSlot(cfg config.Config) (storage.Slot, error) {
	switch cfg.Storage.Backend {
	case "file":
		return storage.NewFileSlot(filepath.Join(cfg.Storage.BaseDir, "slots"))
	case "memory":
		return storage.NewMemorySlot(), nil
	default:
		if err := os.MkdirAll(cfg.Storage.BaseDir, 0o755); err != nil {
			return nil, err
		}
		return storage.NewSQLiteSlot(filepath.Join(cfg.Storage.BaseDir, "studio.db"))
	}
}

func retryOptions(cfg config.Config) agent.RetryOptions {
	return agent.RetryOptions{
		MaxRetries: cfg.Agent.MaxRetries,
		BaseDelay:  time.Duration(cfg.Agent.BaseDelayMS) * time.Millisecond,
	}
}
