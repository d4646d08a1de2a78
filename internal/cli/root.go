// Package cli implements the remote-dl command line client. Commands drive the
// same form workflow as the desktop window, configured through flags, REMOTE_DL_*
// environment variables, an optional config file and a .env file.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ytget/remote-downloader/internal/api"
	"github.com/ytget/remote-downloader/internal/config"
	"github.com/ytget/remote-downloader/internal/download"
	"github.com/ytget/remote-downloader/internal/form"
	"github.com/ytget/remote-downloader/internal/logger"
)

// runner holds what every command needs once flags are resolved.
type runner struct {
	v         *viper.Viper
	env       config.Env
	client    *api.Client
	downloads *download.Service
	log       *zap.Logger
}

// NewRootCommand builds the remote-dl command tree
func NewRootCommand(version string) *cobra.Command {
	r := &runner{v: config.NewViper()}

	root := &cobra.Command{
		Use:               "remote-dl",
		Short:             "Verify video URLs and submit downloads to a remote download service",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: r.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.String(config.KeyAPI, config.DefaultAPIBaseURL, "download service base URL")
	flags.Duration(config.KeyTimeout, config.DefaultRequestTimeout, "timeout of each HTTP request")
	flags.Duration(config.KeyDebounce, config.DefaultDebounceDelay, "quiet period before an edited URL is verified (watch)")
	flags.String(config.KeyLogLevel, "info", "log level: debug, info, warn, error")
	flags.String(config.KeyLogFile, "", "also append JSON logs to this file")
	flags.String(config.KeyConfigFile, "", "config file (yaml, toml or json)")
	if err := r.v.BindPFlags(flags); err != nil {
		panic(err) // flags are defined above, binding cannot fail
	}

	root.AddCommand(
		r.sitesCommand(),
		r.checkCommand(),
		r.downloadCommand(),
		r.watchCommand(),
	)
	return root
}

// Execute runs the command tree against ctx
func Execute(ctx context.Context, version string) error {
	return NewRootCommand(version).ExecuteContext(ctx)
}

// setup resolves configuration in order .env, config file, env, flags.
func (r *runner) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	if file := r.v.GetString(config.KeyConfigFile); file != "" {
		if err := config.LoadConfigFile(r.v, file); err != nil {
			return err
		}
	}

	env, err := config.FromViper(r.v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	r.env = env

	if err := logger.Init(env.LogLevel, env.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	r.log = logger.Named("cli")

	r.client = api.NewClient(env.APIBaseURL,
		api.WithTimeout(env.Timeout),
		api.WithLogger(logger.Named("api")))
	r.downloads = download.NewService(r.client)

	r.log.Debug("configuration resolved",
		zap.String("command", cmd.Name()),
		zap.String("api", env.APIBaseURL),
		zap.Duration("timeout", env.Timeout),
		zap.Duration("debounce", env.Debounce))
	return nil
}

// newWorkflow returns a form workflow bound to the configured backend.
func (r *runner) newWorkflow() *form.Workflow {
	return form.New(r.client, r.downloads,
		form.WithDebounce(r.env.Debounce),
		form.WithSitesSource(r.client))
}

// qualityFlag returns the --quality value, or the configured default.
func (r *runner) qualityFlag(cmd *cobra.Command) (config.QualityPreset, error) {
	f := cmd.Flags().Lookup(config.KeyQuality)
	if f == nil || !f.Changed {
		return r.env.Quality, nil
	}
	return config.ParseQualityPreset(f.Value.String())
}
