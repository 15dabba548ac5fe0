package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// resolveCommand creates the "resolve" command, which runs the wiki
// resolution tiers for a single plugin.
func (c *CLI) resolveCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "resolve <artifactId> [url]",
		Short: "Find the wiki page of one plugin",
		Long: `Find the wiki page of one plugin the way generate does: the override table
first, then the declared project URL, then the closest page title.`,
		Example: `  updatecenter resolve git
  updatecenter resolve ant http://wiki.hudson-ci.org/display/HUDSON/Ant+Plugin`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := c.newCache(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			pages, err := c.newWiki(ctx, cfg, store, false)
			if err != nil {
				return err
			}

			artifactID := args[0]
			var declared string
			if len(args) > 1 {
				declared = args[1]
			}
			page, tier := pages.ResolveTier(ctx, artifactID, declared)
			if page == nil {
				printWarning("No wiki page for %s", artifactID)
				return nil
			}

			printSuccess("Resolved %s", StyleTitle.Render(artifactID))
			printKeyValue("tier", tier)
			printKeyValue("id", page.ID)
			printKeyValue("title", page.Title)
			printKeyValue("url", page.URL)
			if len(page.Labels) > 0 {
				printKeyValue("labels", strings.Join(page.Labels, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
