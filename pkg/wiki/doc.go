// Package wiki locates the documentation page of a plugin.
//
// A [Resolver] runs an ordered list of [Strategy] tiers, each of which may
// produce a [PageRef]:
//
//  1. override: a curated artifactId → URL table ([Overrides])
//  2. declared-url: the url declared in the plugin's project descriptor
//  3. nearest-title: the closest child title of the configured parent page
//
// The first tier whose reference can be fetched through the [Catalog] wins.
// A failing tier is logged and skipped; resolution as a whole never fails.
//
// [Live] is the catalog backed by a remote [Service] and the shared cache;
// [Disabled] is used when the wiki is switched off.
package wiki
