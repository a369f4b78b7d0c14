package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alanef/local-voice-type/internal/app"
)

func newTranscribeCmd(flags *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "transcribe FILE",
		Short: "Transcribe an audio file",
		Long: `Send an existing audio file to the transcription service. Files that are
not 16 kHz mono 16-bit WAV are converted with ffmpeg first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			injector := app.NewInjector(cfg, log)
			defer app.Shutdown(injector, log)

			text, err := app.RunFile(cmd.Context(), injector, args[0], output)
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			} else {
				log.Info("transcript written", "path", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the transcript to this file instead of stdout")

	return cmd
}
