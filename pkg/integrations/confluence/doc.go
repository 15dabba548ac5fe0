// Package confluence implements [wiki.Service] on top of the Confluence
// REST API.
//
//	GET rest/api/content/{id}?expand=body.storage
//	GET rest/api/content?spaceKey=S&title=T&expand=body.storage
//	GET rest/api/content/{id}/label
//	GET rest/api/content/{id}/child/page?limit=N&start=M
//
// Sessions are established by requesting the wiki root, with basic
// authentication when credentials are configured, and short links are
// expanded by reading the Location header of the unfollowed redirect.
//
// [wiki.Service]: github.com/matzehuels/updatecenter/pkg/wiki.Service
package confluence
