package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sant0-9/miaobi/internal/config"
	"github.com/sant0-9/miaobi/internal/llm"
	"github.com/sant0-9/miaobi/internal/logging"
	"github.com/sant0-9/miaobi/internal/options"
	"github.com/sant0-9/miaobi/internal/rewrite"
	"github.com/sant0-9/miaobi/internal/session"
	"github.com/sant0-9/miaobi/internal/tui"
)

var version = "dev"

func main() {
	// a missing .env is normal
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	opts       optionFlags
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "miaobi",
		Short:         "妙笔生花: rewrite text so it reads as if a person wrote it",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "config file (default ~/.config/miaobi/config.yaml)")
	flags.opts.register(cmd)

	cmd.AddCommand(newServeCmd(&flags.configPath))
	cmd.AddCommand(newRewriteCmd(&flags.configPath))
	return cmd
}

// runtime is everything a subcommand needs once configuration checks out.
type runtime struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	sync     func()
	provider llm.Provider
	client   *rewrite.Client
}

// setup loads and validates configuration before anything else starts. A
// ConfigurationError stops the process here.
func setup(ctx context.Context, configPath string, logToStderr bool) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logOpts := logging.Options{Level: cfg.Log.Level, File: cfg.Log.File}
	if logToStderr {
		logOpts.File = ""
		logOpts.Console = true
	} else if logOpts.File == "" {
		logOpts.File = config.DefaultLogFile()
	}
	log, sync, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(ctx, cfg)
	if err != nil {
		sync()
		return nil, err
	}
	log.Infow("provider ready", "provider", provider.Name(), "model", cfg.Model)

	return &runtime{
		cfg:      cfg,
		log:      log,
		sync:     sync,
		provider: provider,
		client:   rewrite.New(provider, rewrite.WithLogger(log)),
	}, nil
}

func runTUI(ctx context.Context, flags rootFlags) error {
	rt, err := setup(ctx, flags.configPath, false)
	if err != nil {
		return err
	}
	defer rt.sync()

	sess := session.New(rt.client, session.WithLogger(rt.log))
	opts, err := flags.opts.apply(options.Default())
	if err != nil {
		return err
	}
	if err := sess.SetOptions(opts); err != nil {
		return err
	}

	app := tui.NewApp(rt.cfg, sess, rt.provider, tui.WithLogger(rt.log))
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
