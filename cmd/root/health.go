package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alanef/local-voice-type/internal/app"
)

func newHealthCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the transcription service is ready",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			injector := app.NewInjector(cfg, log)
			defer app.Shutdown(injector, log)

			h, err := app.CheckHealth(cmd.Context(), injector)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: status=%s model_loaded=%t\n", cfg.APIURL, h.Status, h.ModelLoaded)
			if !h.Ready() {
				return errors.New("transcription service is not ready")
			}
			return nil
		},
	}
}
