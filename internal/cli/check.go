package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/remote-downloader/internal/form"
	"github.com/ytget/remote-downloader/internal/model"
)

// ErrNotSupported is returned when the service does not support the URL.
var ErrNotSupported = errors.New("url is not supported")

func (r *runner) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <url>",
		Short: "Verify a URL once and print the video details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf := r.newWorkflow()
			defer wf.Close()

			state, err := r.verify(cmd, wf, args[0])
			printVerification(cmd.OutOrStdout(), state)
			return err
		},
	}
}

// verify runs one immediate verification and maps the outcome to an error.
func (r *runner) verify(cmd *cobra.Command, wf *form.Workflow, url string) (model.InputState, error) {
	wf.SetURL(url)
	state, err := wf.VerifyNow(cmd.Context())
	switch {
	case errors.Is(err, form.ErrURLTooShort):
		return state, fmt.Errorf("%q: %w (minimum %d characters)", url, err, form.MinURLLength)
	case err != nil:
		return state, fmt.Errorf("verify %s: %w", url, err)
	case state.Status.Kind == model.StatusUnsupported:
		return state, fmt.Errorf("%s: %w", url, ErrNotSupported)
	}
	return state, nil
}
