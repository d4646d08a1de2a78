package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytget/remote-downloader/internal/config"
)

func (r *runner) downloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Verify a URL and ask the service to download it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quality, err := r.qualityFlag(cmd)
			if err != nil {
				return err
			}

			wf := r.newWorkflow()
			defer wf.Close()
			out := cmd.OutOrStdout()

			state, err := r.verify(cmd, wf, args[0])
			printVerification(out, state)
			if err != nil {
				return err
			}

			task, err := wf.Submit(cmd.Context(), quality)
			fmt.Fprintln(out, wf.State().Status.String())
			if err != nil {
				return err
			}

			r.log.Info("download finished",
				zap.String("task_id", task.ID),
				zap.String("status", task.Status.String()),
				zap.String("elapsed", task.GetElapsedString()))
			return nil
		},
	}

	cmd.Flags().String(config.KeyQuality, string(config.DefaultQualityPreset),
		"quality preset: best, worst, 2160p, 1440p, 1080p, 720p, 480p, 360p")
	return cmd
}
