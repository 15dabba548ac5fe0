// Package plugin assembles the catalog record of one plugin from its release
// history, its project descriptor and its wiki page.
//
// [Aggregator.Build] never fails: every field that cannot be determined is
// logged with the plugin's artifactId and left empty.
package plugin
