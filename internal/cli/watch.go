package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytget/remote-downloader/internal/config"
	"github.com/ytget/remote-downloader/internal/form"
	"github.com/ytget/remote-downloader/internal/model"
)

const (
	downloadDirective = ":download"
	quitDirective     = ":quit"
	idlePollInterval  = 20 * time.Millisecond
)

func (r *runner) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Treat stdin lines as edits of the URL field and print every state change",
		Long: `Each input line replaces the URL field, exactly as typing would, and is
verified after the debounce quiet period. A line ":download [preset]" waits for
the verification to settle and submits the current URL. ":quit" or end of input
waits for outstanding work and exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := &syncWriter{w: cmd.OutOrStdout()}
			wf := r.newWorkflow()
			defer wf.Close()

			var last string
			wf.SetUpdateCallback(func(s model.InputState) {
				// publish never runs two callbacks at once
				if line := describe(s); line != last {
					last = line
					fmt.Fprintln(out, line)
				}
			})

			return r.watch(cmd.Context(), wf, cmd.InOrStdin(), out)
		},
	}
}

func (r *runner) watch(ctx context.Context, wf *form.Workflow, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case strings.TrimSpace(line) == quitDirective:
			return waitIdle(ctx, wf)
		case strings.HasPrefix(strings.TrimSpace(line), downloadDirective):
			if err := r.watchDownload(ctx, wf, strings.TrimSpace(line), out); err != nil {
				return err
			}
		default:
			wf.SetURL(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return waitIdle(ctx, wf)
}

// watchDownload handles ":download [preset]". Rejections are printed, only a
// cancelled context stops the loop.
func (r *runner) watchDownload(ctx context.Context, wf *form.Workflow, line string, out io.Writer) error {
	quality := r.env.Quality
	if arg := strings.TrimSpace(strings.TrimPrefix(line, downloadDirective)); arg != "" {
		preset, err := config.ParseQualityPreset(arg)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return nil
		}
		quality = preset
	}

	if err := waitIdle(ctx, wf); err != nil {
		return err
	}
	if _, err := wf.Submit(ctx, quality); err != nil {
		r.log.Debug("watch submit", zap.Error(err))
		fmt.Fprintf(out, "error: %v\n", err)
	}
	return nil
}

// waitIdle blocks until the workflow has nothing scheduled or in flight.
func waitIdle(ctx context.Context, wf *form.Workflow) error {
	ticker := time.NewTicker(idlePollInterval)
	defer ticker.Stop()

	for !wf.Idle() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
