// Package cli implements the updatecenter command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/updatecenter/internal/config"
	"github.com/matzehuels/updatecenter/pkg/buildinfo"
	"github.com/matzehuels/updatecenter/pkg/cache"
	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/integrations"
	"github.com/matzehuels/updatecenter/pkg/integrations/confluence"
	"github.com/matzehuels/updatecenter/pkg/integrations/maven"
	"github.com/matzehuels/updatecenter/pkg/wiki"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "updatecenter"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "updatecenter builds the plugin catalog of an update center",
		Long:          `updatecenter reads plugin releases from a Maven repository, finds each plugin's wiki page and writes the combined metadata catalog.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (default "+config.DefaultFile+" if present)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Component Factories
// =============================================================================

func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("configuration loaded", "path", c.configPath, "backend", cfg.Cache.Backend, "wiki", cfg.Wiki.Enabled)
	return cfg, nil
}

// newCache opens the configured cache backend. noCache overrides it.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNull(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNull(), nil
	case config.BackendRedis:
		return cache.NewRedis(ctx, cache.RedisConfig{
			Addr:   cfg.Cache.RedisAddr,
			DB:     cfg.Cache.RedisDB,
			Prefix: appName + ":",
		}, c.Logger)
	default:
		return cache.Open(cfg.Cache.Dir, c.Logger)
	}
}

func (c *CLI) newMaven(cfg *config.Config, store cache.Cache) *maven.Client {
	return maven.NewClient(store, cfg.Maven.Repository, integrations.Options{
		Timeout: time.Duration(cfg.HTTP.Timeout),
	}, c.Logger)
}

// newWiki builds the page resolver. A disabled wiki resolves nothing.
// Building the title index talks to the wiki; failure aborts the run.
func (c *CLI) newWiki(ctx context.Context, cfg *config.Config, store cache.Cache, noWiki bool) (*wiki.Resolver, error) {
	if noWiki || !cfg.Wiki.Enabled {
		c.Logger.Info("wiki lookups disabled")
		return wiki.NewResolver(wiki.Disabled{}, nil, c.Logger), nil
	}

	overrides, err := wiki.LoadOverrides(cfg.Wiki.Overrides)
	if err != nil {
		return nil, err
	}

	svc := confluence.NewClient(confluence.Config{
		BaseURL:  cfg.Wiki.URL,
		Space:    cfg.Wiki.Space,
		User:     cfg.Wiki.User,
		Password: cfg.Wiki.Password,
		Timeout:  time.Duration(cfg.HTTP.Timeout),
	})
	live := wiki.NewLive(svc, store, wiki.LiveConfig{
		BaseURL:  cfg.Wiki.URL,
		Parent:   cfg.Wiki.Parent,
		User:     cfg.Wiki.User,
		Password: cfg.Wiki.Password,
	}, c.Logger)

	prog := newProgress(c.Logger)
	spin := startSpinner(ctx, "Indexing wiki pages under "+cfg.Wiki.Parent+"...")
	if err := live.Initialize(ctx); err != nil {
		spin.fail("Wiki index unavailable")
		return nil, err
	}
	spin.succeed("Indexed %d wiki titles under %q", live.Titles(), cfg.Wiki.Parent)
	prog.done("Wiki title index ready")

	norm := wiki.NewNormalizer(cfg.Wiki.URL, cfg.Wiki.Space, live, c.Logger)
	return wiki.NewResolver(live, wiki.DefaultStrategies(overrides, norm, live), c.Logger), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/updatecenter/).
func cacheDir(cfg *config.Config) (string, error) {
	if cfg != nil && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfiguration, err, "locate cache directory")
	}
	return dir, nil
}

// outputFile opens path for writing, or returns stdout for "" and "-".
func outputFile(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "create output file")
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
