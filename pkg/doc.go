// Package pkg holds the libraries behind the updatecenter command.
//
// # Overview
//
// A run turns a list of plugin coordinates into one catalog entry per
// plugin. The packages split along that flow:
//
//  1. [integrations] - remote clients: the Maven repository and the wiki
//  2. [artifact] - released versions, manifests and version ordering
//  3. [wiki] - page cache, URL normalization and the three-tier page resolver
//  4. [plugin] - per-plugin aggregation of versions, descriptor and page
//  5. [generator] - the bounded worker pool and catalog writer
//
// Supporting packages: [cache] (file and redis backends), [pom] (project
// descriptors), [errors] (coded errors), [httputil] (retries),
// [observability] (hooks) and [buildinfo].
//
// # Data Flow
//
//	maven-metadata.xml ─→ artifact.VersionSet ─┐
//	                                           ├─→ plugin.Record ─→ catalog
//	pom url / overrides / titles ─→ wiki.Page ─┘
//
// [integrations]: github.com/matzehuels/updatecenter/pkg/integrations
// [artifact]: github.com/matzehuels/updatecenter/pkg/artifact
// [wiki]: github.com/matzehuels/updatecenter/pkg/wiki
// [plugin]: github.com/matzehuels/updatecenter/pkg/plugin
// [generator]: github.com/matzehuels/updatecenter/pkg/generator
// [cache]: github.com/matzehuels/updatecenter/pkg/cache
// [pom]: github.com/matzehuels/updatecenter/pkg/pom
// [errors]: github.com/matzehuels/updatecenter/pkg/errors
// [httputil]: github.com/matzehuels/updatecenter/pkg/httputil
// [observability]: github.com/matzehuels/updatecenter/pkg/observability
// [buildinfo]: github.com/matzehuels/updatecenter/pkg/buildinfo
package pkg
