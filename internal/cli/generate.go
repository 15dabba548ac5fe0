package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/generator"
	"github.com/matzehuels/updatecenter/pkg/observability"
	"github.com/matzehuels/updatecenter/pkg/plugin"
)

type generateOptions struct {
	output  string
	format  string
	workers int
	noCache bool
	noWiki  bool
}

// generateCommand creates the "generate" command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [groupId:artifactId...]",
		Short: "Build the plugin catalog",
		Long: `Build the plugin catalog for the given plugins, or for the plugins listed in
the configuration file when none are given.

Plugins that cannot be built are logged and left out; they never fail the run.`,
		Example: `  updatecenter generate org.jenkins-ci.plugins:git -o plugins.json
  updatecenter generate --format yaml --no-wiki`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != generator.FormatJSON && opts.format != generator.FormatYAML {
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (json or yaml)", opts.format)
			}
			return c.runGenerate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.format, "format", generator.FormatJSON, "output format: json or yaml")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "plugins processed concurrently (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.noWiki, "no-wiki", false, "skip wiki lookups")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, args []string, opts generateOptions) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	coords := args
	if len(coords) == 0 {
		coords = cfg.Plugins
	}
	if len(coords) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no plugins given on the command line or in the configuration")
	}
	if cmd.Flags().Changed("workers") {
		if opts.workers < 1 {
			return errors.New(errors.ErrCodeConfiguration, "--workers must be at least 1")
		}
		cfg.Workers = opts.workers
	}

	runID := uuid.NewString()
	logger := c.Logger.With("run", runID)
	run := &CLI{Logger: logger, configPath: c.configPath}
	logger.Info("starting generation", "plugins", len(coords), "workers", cfg.Workers)

	counters := observability.NewCounters()
	observability.SetCacheHooks(counters)
	observability.SetResolverHooks(counters)
	observability.SetHTTPHooks(counters)
	defer observability.Reset()

	store, err := run.newCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	pages, err := run.newWiki(ctx, cfg, store, opts.noWiki)
	if err != nil {
		return err
	}
	repo := run.newMaven(cfg, store)
	agg := plugin.NewAggregator(pages, logger,
		plugin.WithLabelPrefix(cfg.Wiki.LabelPrefix),
		plugin.WithDescriptors(repo),
	)
	gen := generator.New(repo, agg, generator.Options{Workers: cfg.Workers, Logger: logger})

	records, stats, err := gen.Run(ctx, coords)
	if err != nil {
		return err
	}

	out, err := outputFile(opts.output)
	if err != nil {
		return err
	}
	if err := generator.NewCatalog(records).Write(out, opts.format); err != nil {
		out.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write catalog")
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write catalog")
	}

	printSummary(runID, stats, counters)
	if opts.output != "" && opts.output != "-" {
		printFile(opts.output)
	}
	if stats.Failed > 0 {
		printWarning("%d of %d plugins could not be built, see the log", stats.Failed, stats.Total)
	}
	return nil
}
