// Package artifact models the released versions of one plugin.
//
// A [Source] yields, per plugin, a mapping from version string to a
// [Resolvable] artifact. [NewVersionSet] resolves each candidate, drops the
// ones whose manifest cannot be read, and orders the remainder with
// [Compare], a numeric-segment-aware total order:
//
//	1.9 < 1.10 < 2.0-alpha-1 < 2.0-beta < 2.0-rc1 < 2.0 < 2.0.1
//
// The highest version is [VersionSet.Latest]; version order always wins over
// release dates. [VersionSet.CheckHistory] only reports when the newest
// release by timestamp disagrees.
//
// Plugin manifests are read from the archive's META-INF/MANIFEST.MF with
// [ReadManifest].
package artifact
