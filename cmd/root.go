package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/vimbridge/internal/bridge"
	"github.com/zjrosen/vimbridge/internal/config"
	"github.com/zjrosen/vimbridge/internal/host"
	"github.com/zjrosen/vimbridge/internal/keys"
	"github.com/zjrosen/vimbridge/internal/log"
	"github.com/zjrosen/vimbridge/internal/vim"
	"github.com/zjrosen/vimbridge/internal/watcher"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, so the
	// OSC 11 reply is not read as typed input.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
	cfgErr  error
)

var rootCmd = &cobra.Command{
	Use:   "vimbridge",
	Short: "A vim-mode text field for the terminal",
	Long: `vimbridge runs a modal (vim-style) editing engine behind a plain text field.

Keys typed into the field drive the engine. The field shows the engine's
buffer as flat text with the cursor and visual selection projected onto it.
Every mode or command-line change launches the notification hook with MODE
and CMDLINE in its environment.

Press Ctrl+[ (or Esc) for normal mode.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: checkConfig,
	RunE:              runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .vimbridge/config.yaml, then ~/.config/vimbridge/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "write debug logs to log_path")
	rootCmd.PersistentFlags().String("rc", "", "startup script to source into the buffer")
	rootCmd.PersistentFlags().Bool("no-hook", false, "do not launch the notification hook")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("rc_path", rootCmd.PersistentFlags().Lookup("rc"))
}

func initConfig() {
	cfg, cfgErr = config.Load(viper.GetViper(), cfgFile)
}

// checkConfig fails commands that need a valid config.
func checkConfig(_ *cobra.Command, _ []string) error {
	return cfgErr
}

// newSession builds a session on the in-process engine from the loaded
// config, honoring --no-hook.
func newSession(cmd *cobra.Command) *bridge.Session {
	if noHook, _ := cmd.Flags().GetBool("no-hook"); noHook {
		cfg.Hook.Enabled = false
	}
	return bridge.NewSession(vim.New(), bridge.Config{
		RCPath:      cfg.ResolvedRCPath(),
		HookPath:    cfg.ResolvedHookPath(),
		HookCmdline: cfg.Hook.Cmdline,
	})
}

func runApp(cmd *cobra.Command, _ []string) error {
	if cfg.Debug {
		level, _ := log.ParseLevel(cfg.LogLevel)
		cleanup, err := log.Init(cfg.LogPath, level)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
	}

	session := newSession(cmd)
	defer session.Close()
	if err := session.Begin(); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	var rcChanges <-chan struct{}
	if cfg.WatchRC {
		w, err := watcher.New(watcher.Config{Path: cfg.ResolvedRCPath()})
		if err != nil {
			return err
		}
		rcChanges, err = w.Start()
		if err != nil {
			log.Warn(log.CatWatcher, "rc hot reload disabled", "error", err)
			_ = w.Stop()
		} else {
			defer func() { _ = w.Stop() }()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := host.New(ctx, host.Config{
		Session:     session,
		KeyMap:      keys.DefaultKeyMap(),
		StatusLine:  cfg.Host.StatusLine,
		Placeholder: cfg.Host.Placeholder,
		RCChanges:   rcChanges,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
