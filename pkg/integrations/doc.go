// Package integrations provides the HTTP clients for the remote systems the
// generator talks to.
//
//   - [maven]: the artifact repository (version listings, plugin archives,
//     project descriptors)
//   - [confluence]: the wiki holding plugin documentation pages
//
// Both build on [Client], which adds default headers, response caching
// through [cache.Cache], optional retries and HTTP observability hooks.
//
// [maven]: github.com/matzehuels/updatecenter/pkg/integrations/maven
// [confluence]: github.com/matzehuels/updatecenter/pkg/integrations/confluence
// [cache.Cache]: github.com/matzehuels/updatecenter/pkg/cache.Cache
package integrations
