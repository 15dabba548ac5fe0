package plugin

import "regexp"

var (
	// scm:git:[user@]host[:/]... where the rest is not itself a URL
	scmGitHost = regexp.MustCompile(`scm:git:(?:\w*@)?([\w.-]+)[/:]`)
	// ...://[user@]host[:/]...
	scmURLHost = regexp.MustCompile(`://(?:\w*@)?([\w.-]+)[/:]`)
	hasScheme  = regexp.MustCompile(`^\w+://`)
)

const scmGitPrefix = "scm:git:"

// SCMHost extracts the host name from an SCM connection string such as
// "scm:git:git://github.com/jenkinsci/git-plugin.git" or
// "scm:git:git@github.com:jenkinsci/git-plugin.git". The leftmost match wins.
func SCMHost(connection string) (string, bool) {
	start, host := -1, ""
	if m := scmGitHost.FindStringSubmatchIndex(connection); m != nil && !hasScheme.MatchString(connection[m[0]+len(scmGitPrefix):]) {
		start, host = m[0], connection[m[2]:m[3]]
	}
	if m := scmURLHost.FindStringSubmatchIndex(connection); m != nil && (start < 0 || m[0] < start) {
		start, host = m[0], connection[m[2]:m[3]]
	}
	return host, start >= 0
}
