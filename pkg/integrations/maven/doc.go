// Package maven reads plugin releases from a Maven repository.
//
// # Layout
//
// For a plugin org.example:foo the client reads
//
//	org/example/foo/maven-metadata.xml          version listing
//	org/example/foo/1.2/foo-1.2.hpi             manifest, Last-Modified
//	org/example/foo/1.2/foo-1.2.pom             project descriptor
//
// # Usage
//
//	client := maven.NewClient(store, "", integrations.Options{}, logger)
//	versions, err := client.Versions(ctx, "org.example", "foo")
//
// [Client.Versions] implements [artifact.Source] and returns one lazily
// resolved entry per listed version. Resolving reads only the archive.
// [Client.Descriptor] implements [pom.Resolver]; the aggregator asks it for
// the latest release's descriptor and that descriptor's parent.
//
// # Caching
//
// Listings are cached under [cache.KindVersions] and expire after an hour.
// Resolved releases and descriptors never change once published and are
// cached without expiry. A missing descriptor is not cached.
//
// # Retries
//
// Network failures, 5xx and 429 responses are retried with exponential
// backoff, three attempts by default.
//
// [artifact.Source]: github.com/matzehuels/updatecenter/pkg/artifact.Source
// [pom.Resolver]: github.com/matzehuels/updatecenter/pkg/pom.Resolver
// [cache.KindVersions]: github.com/matzehuels/updatecenter/pkg/cache.KindVersions
package maven
