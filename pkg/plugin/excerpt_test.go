package plugin

import "testing"

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		preRelease bool
		want       string
		wantOK     bool
	}{
		{"newlines", "{excerpt}Hello\nWorld{excerpt}", false, "Hello World", true},
		{"crlf", "{excerpt}Hello\r\nWorld{excerpt}", false, "Hello World", true},
		{"hidden marker", "intro {excerpt:hidden=true}  Hidden text{excerpt} rest", false, "Hidden text", true},
		{"hidden short", "{excerpt:hidden}Short{excerpt}", false, "Short", true},
		{"link", "{excerpt}See [the docs|https://example.com/docs] now{excerpt}", false, "See <a href='https://example.com/docs'>the docs</a> now", true},
		{"link with tip", "{excerpt}[Docs|https://example.com|tooltip]{excerpt}", false, "<a href='https://example.com'>Docs</a>", true},
		{"first excerpt only", "{excerpt}one{excerpt} and {excerpt}two{excerpt}", false, "one", true},
		{"pre-release", "{excerpt}Beta stuff{excerpt}", true, ExperimentalDisclaimer + "Beta stuff", true},
		{"no marker", "plain page", false, "", false},
		{"unrendered markup", "{excerpt}{info}boxed{info}{excerpt}", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Excerpt(tt.content, tt.preRelease)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Excerpt(%q) = %q, %v; want %q, %v", tt.content, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDescriptionHTML(t *testing.T) {
	if got := DescriptionHTML("a < b & c > d"); got != "a &lt; b &amp; c > d" {
		t.Errorf("DescriptionHTML() = %q", got)
	}
}

func TestSCMHost(t *testing.T) {
	tests := []struct {
		connection string
		want       string
		wantOK     bool
	}{
		{"scm:git:git://github.com/foo/bar.git", "github.com", true},
		{"scm:git:git@github.com:jenkinsci/git-plugin.git", "github.com", true},
		{"scm:git:ssh://git@github.com/jenkinsci/git-plugin.git", "github.com", true},
		{"scm:git:https://github.com/jenkinsci/git-plugin", "github.com", true},
		{"scm:svn:https://svn.jenkins-ci.org/trunk/hudson/plugins/foo", "svn.jenkins-ci.org", true},
		{"scm:svn:http://user@svn.dev.java.net/svn/hudson", "svn.dev.java.net", true},
		{"scm:git:gitlab.example.org:group/repo.git", "gitlab.example.org", true},
		{"not a connection", "", false},
	}
	for _, tt := range tests {
		got, ok := SCMHost(tt.connection)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("SCMHost(%q) = %q, %v; want %q, %v", tt.connection, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFilterLabels(t *testing.T) {
	labels, deprecated := FilterLabels([]string{"plugin-deprecated", "plugin-scm", "misc", "plugin-"}, DefaultLabelPrefix)
	if !deprecated {
		t.Error("deprecated = false, want true")
	}
	if len(labels) != 2 || labels[0] != "deprecated" || labels[1] != "scm" {
		t.Errorf("labels = %v, want [deprecated scm]", labels)
	}

	labels, deprecated = FilterLabels([]string{"deprecated", "plugin-misc"}, DefaultLabelPrefix)
	if deprecated {
		t.Error("an unprefixed 'deprecated' label must not count")
	}
	if len(labels) != 1 || labels[0] != "misc" {
		t.Errorf("labels = %v, want [misc]", labels)
	}
}
