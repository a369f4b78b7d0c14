package root

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alanef/local-voice-type/internal/app"
	"github.com/alanef/local-voice-type/internal/config"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type rootFlags struct {
	configPath string
	overrides  *config.FlagValues
}

// resolve loads the effective config and installs the logger.
func (f *rootFlags) resolve(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Resolve(f.configPath, f.overrides)
	if err != nil {
		return cfg, nil, err
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	log := app.NewLogger(cmd.ErrOrStderr(), level)
	slog.SetDefault(log)
	return cfg, log, nil
}

func NewRootCmd(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "voice-type",
		Short: "voice-type - push-to-talk dictation",
		Long: `voice-type records the microphone while a key combo is held, sends the
audio to a speech-to-text service and types the transcript at the cursor.`,
		Example: `  voice-type
  voice-type --hotkey ctrl+space --language de
  voice-type transcribe meeting.mp3 -o meeting.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			injector := app.NewInjector(cfg, log)
			defer app.Shutdown(injector, log)
			return app.RunDictation(cmd.Context(), injector)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to config.json (default: user config dir)")
	flags.overrides = config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(newTranscribeCmd(flags))
	cmd.AddCommand(newHealthCmd(flags))
	cmd.AddCommand(newConfigCmd(flags))
	cmd.AddCommand(newVersionCmd(info))

	return cmd
}

// Execute runs the command tree until it returns or SIGINT/SIGTERM arrives.
func Execute(info BuildInfo) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd(info).ExecuteContext(ctx)
}
