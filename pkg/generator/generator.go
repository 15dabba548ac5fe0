// Package generator builds the catalog for a batch of plugins.
//
// Plugins are processed in parallel by a bounded worker pool. A plugin that
// fails (unknown coordinate, no resolvable version, even a panic) is logged
// and counted; it never affects the other plugins or the run's outcome.
package generator

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/updatecenter/pkg/artifact"
	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/observability"
	"github.com/matzehuels/updatecenter/pkg/plugin"
)

// DefaultWorkers is the default number of plugins processed concurrently.
const DefaultWorkers = 8

// Builder turns a plugin's version set into its record.
type Builder interface {
	Build(ctx context.Context, set *artifact.VersionSet) *plugin.Record
}

// Options configures a [Generator].
type Options struct {
	Workers int
	Logger  *log.Logger
}

// Generator drives the aggregation of many plugins.
type Generator struct {
	source  artifact.Source
	builder Builder
	workers int
	logger  *log.Logger
}

// Stats summarizes a run.
type Stats struct {
	Total      int
	Built      int
	Failed     int
	WithWiki   int
	Deprecated int
	Duration   time.Duration
}

// New returns a generator reading versions from source.
func New(source artifact.Source, builder Builder, opts Options) *Generator {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Generator{source: source, builder: builder, workers: opts.Workers, logger: opts.Logger}
}

// Run builds a record for every "groupId:artifactId" coordinate. Records are
// returned sorted by artifactId. The only error is the context's, when the
// run was cancelled; records finished before cancellation are still returned.
func (g *Generator) Run(ctx context.Context, coordinates []string) ([]*plugin.Record, Stats, error) {
	start := time.Now()
	coordinates = dedupe(coordinates)

	var (
		mu      sync.Mutex
		records []*plugin.Record
		stats   = Stats{Total: len(coordinates)}
	)

	var eg errgroup.Group
	eg.SetLimit(g.workers)

	for _, coord := range coordinates {
		if ctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			rec, err := g.one(ctx, coord)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				stats.Failed++
				return nil
			}
			records = append(records, rec)
			stats.Built++
			if rec.Page != nil {
				stats.WithWiki++
			}
			if rec.Deprecated {
				stats.Deprecated++
			}
			return nil
		})
	}
	_ = eg.Wait()

	sort.Slice(records, func(i, j int) bool { return records[i].ArtifactID < records[j].ArtifactID })
	stats.Duration = time.Since(start)
	return records, stats, ctx.Err()
}

// one processes a single plugin. Every failure, including a panic, is
// logged here and reported as an error.
func (g *Generator) one(ctx context.Context, coord string) (rec *plugin.Record, err error) {
	hooks := observability.Generator()
	start := time.Now()
	hooks.OnPluginStart(ctx, coord)

	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrCodeInternal, "panic: %v", r)
		}
		if err != nil {
			g.logger.Error("plugin failed", "plugin", coord, "err", err)
		}
		hooks.OnPluginComplete(ctx, coord, time.Since(start), err)
	}()

	groupID, artifactID, err := errors.ValidateCoordinate(coord)
	if err != nil {
		return nil, err
	}
	candidates, err := g.source.Versions(ctx, groupID, artifactID)
	if err != nil {
		return nil, err
	}
	set, err := artifact.NewVersionSet(ctx, artifactID, candidates, g.logger)
	if err != nil {
		return nil, err
	}

	rec = g.builder.Build(ctx, set)
	if rec == nil {
		return nil, fmt.Errorf("no record built for %s", coord)
	}
	g.logger.Info("built", "plugin", artifactID, "version", set.Latest().Version, "wiki", rec.Page != nil)
	return rec, nil
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
