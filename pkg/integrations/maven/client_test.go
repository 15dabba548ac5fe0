package maven

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/updatecenter/pkg/artifact"
	"github.com/matzehuels/updatecenter/pkg/cache"
	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/integrations"
	"github.com/matzehuels/updatecenter/pkg/pom"
)

const metadata = `<?xml version="1.0" encoding="UTF-8"?>
<metadata>
  <groupId>org.example</groupId>
  <artifactId>foo</artifactId>
  <versioning>
    <latest>1.10</latest>
    <versions>
      <version>1.2</version>
      <version>1.10</version>
      <version>2.0-beta-1</version>
    </versions>
  </versioning>
</metadata>`

const descriptor = `<project>
  <groupId>org.example</groupId>
  <artifactId>foo</artifactId>
  <version>1.10</version>
  <name>Foo Plugin</name>
</project>`

func hpi(t *testing.T, manifest string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("META-INF/MANIFEST.MF")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(manifest)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

type repo struct {
	server   *httptest.Server
	requests map[string]*atomic.Int32
}

func newRepo(t *testing.T, files map[string][]byte, lastModified string) *repo {
	t.Helper()
	r := &repo{requests: make(map[string]*atomic.Int32)}
	for path := range files {
		r.requests[path] = new(atomic.Int32)
	}
	r.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		data, ok := files[req.URL.Path]
		if !ok {
			http.NotFound(w, req)
			return
		}
		r.requests[req.URL.Path].Add(1)
		if lastModified != "" {
			w.Header().Set("Last-Modified", lastModified)
		}
		w.Write(data)
	}))
	t.Cleanup(r.server.Close)
	return r
}

func newClient(t *testing.T, r *repo) *Client {
	t.Helper()
	store, err := cache.Open(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewClient(store, r.server.URL+"/releases", integrations.Options{RetryDelay: time.Millisecond}, log.New(&bytes.Buffer{}))
}

func TestParseMetadata(t *testing.T) {
	versions, err := parseMetadata([]byte(metadata))
	if err != nil {
		t.Fatalf("parseMetadata() error: %v", err)
	}
	want := []string{"1.2", "1.10", "2.0-beta-1"}
	if len(versions) != len(want) {
		t.Fatalf("versions = %v, want %v", versions, want)
	}
	for i := range want {
		if versions[i] != want[i] {
			t.Errorf("versions[%d] = %q, want %q", i, versions[i], want[i])
		}
	}

	if _, err := parseMetadata([]byte("<metadata>")); !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("malformed metadata error = %v, want PARSE_ERROR", err)
	}
	if _, err := parseMetadata([]byte("<project/>")); !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("wrong root error = %v, want PARSE_ERROR", err)
	}
}

func TestVersions(t *testing.T) {
	r := newRepo(t, map[string][]byte{
		"/releases/org/example/foo/maven-metadata.xml": []byte(metadata),
		"/releases/org/example/foo/1.10/foo-1.10.hpi":  hpi(t, "Manifest-Version: 1.0\r\nJenkins-Version: 2.361\r\nBuilt-By: alice\r\n\r\n"),
		"/releases/org/example/foo/1.10/foo-1.10.pom":  []byte(descriptor),
	}, "Mon, 02 Jan 2006 15:04:05 GMT")
	client := newClient(t, r)
	ctx := context.Background()

	versions, err := client.Versions(ctx, "org.example", "foo")
	if err != nil {
		t.Fatalf("Versions() error: %v", err)
	}
	if len(versions) != 3 {
		t.Fatalf("len(versions) = %d, want 3", len(versions))
	}

	v, err := versions["1.10"].Resolve(ctx)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if v.GAV() != "org.example:foo:1.10" {
		t.Errorf("GAV = %q", v.GAV())
	}
	if v.Manifest.RequiredCore != "2.361" || v.Manifest.BuiltBy != "alice" {
		t.Errorf("Manifest = %+v", v.Manifest)
	}
	if want := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC); !v.Released.Equal(want) {
		t.Errorf("Released = %v, want %v", v.Released, want)
	}
	if v.PreRelease {
		t.Error("1.10 should not be a pre-release")
	}
	if v.Descriptor != nil {
		t.Errorf("Descriptor = %q, want nil until requested", v.Descriptor)
	}

	if _, err := versions["1.2"].Resolve(ctx); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing archive error = %v, want NOT_FOUND", err)
	}
}

func TestResolveDoesNotFetchDescriptors(t *testing.T) {
	const pomPath = "/releases/org/example/foo/1.10/foo-1.10.pom"
	r := newRepo(t, map[string][]byte{
		"/releases/org/example/foo/maven-metadata.xml":            []byte(metadata),
		"/releases/org/example/foo/1.2/foo-1.2.hpi":               hpi(t, "Manifest-Version: 1.0\r\n\r\n"),
		"/releases/org/example/foo/1.10/foo-1.10.hpi":             hpi(t, "Manifest-Version: 1.0\r\n\r\n"),
		"/releases/org/example/foo/2.0-beta-1/foo-2.0-beta-1.hpi": hpi(t, "Manifest-Version: 1.0\r\n\r\n"),
		pomPath: []byte(descriptor),
	}, "")
	client := newClient(t, r)
	ctx := context.Background()

	versions, err := client.Versions(ctx, "org.example", "foo")
	if err != nil {
		t.Fatal(err)
	}
	for version, res := range versions {
		if _, err := res.Resolve(ctx); err != nil {
			t.Fatalf("Resolve(%s) error: %v", version, err)
		}
	}
	if n := r.requests[pomPath].Load(); n != 0 {
		t.Fatalf("descriptor requests after resolving = %d, want 0", n)
	}

	for range 2 {
		desc, err := client.Descriptor(ctx, pom.Coordinate{GroupID: "org.example", ArtifactID: "foo", Version: "1.10"})
		if err != nil {
			t.Fatalf("Descriptor() error: %v", err)
		}
		if desc.Name() != "Foo Plugin" {
			t.Errorf("Name() = %q", desc.Name())
		}
	}
	if n := r.requests[pomPath].Load(); n != 1 {
		t.Errorf("descriptor requests = %d, want 1 (cached)", n)
	}
}

func TestVersionsCached(t *testing.T) {
	const path = "/releases/org/example/foo/maven-metadata.xml"
	r := newRepo(t, map[string][]byte{path: []byte(metadata)}, "")
	client := newClient(t, r)
	ctx := context.Background()

	for range 2 {
		if _, err := client.Versions(ctx, "org.example", "foo"); err != nil {
			t.Fatalf("Versions() error: %v", err)
		}
	}
	if n := r.requests[path].Load(); n != 1 {
		t.Errorf("metadata requests = %d, want 1", n)
	}
}

func TestVersionsNotFound(t *testing.T) {
	r := newRepo(t, nil, "")
	client := newClient(t, r)

	_, err := client.Versions(context.Background(), "org.example", "missing")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Versions() error = %v, want NOT_FOUND", err)
	}
}

func TestResolvePreReleaseWithoutLastModified(t *testing.T) {
	r := newRepo(t, map[string][]byte{
		"/releases/org/example/foo/maven-metadata.xml":            []byte(metadata),
		"/releases/org/example/foo/2.0-beta-1/foo-2.0-beta-1.hpi": hpi(t, "Manifest-Version: 1.0\r\n\r\n"),
	}, "")
	client := newClient(t, r)
	ctx := context.Background()

	versions, err := client.Versions(ctx, "org.example", "foo")
	if err != nil {
		t.Fatal(err)
	}
	v, err := versions["2.0-beta-1"].Resolve(ctx)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if !v.PreRelease {
		t.Error("2.0-beta-1 should be a pre-release")
	}
	if !v.Released.IsZero() {
		t.Errorf("Released = %v, want zero without Last-Modified", v.Released)
	}
}

func TestDescriptor(t *testing.T) {
	r := newRepo(t, map[string][]byte{
		"/releases/org/example/parent/3/parent-3.pom": []byte(`<project><scm><connection>scm:git:https://github.com/example/foo.git</connection></scm></project>`),
	}, "")
	client := newClient(t, r)
	ctx := context.Background()

	desc, err := client.Descriptor(ctx, pom.Coordinate{GroupID: "org.example", ArtifactID: "parent", Version: "3"})
	if err != nil {
		t.Fatalf("Descriptor() error: %v", err)
	}
	if got := desc.SCMConnection(); got != "scm:git:https://github.com/example/foo.git" {
		t.Errorf("SCMConnection() = %q", got)
	}

	_, err = client.Descriptor(ctx, pom.Coordinate{GroupID: "org.example", ArtifactID: "parent", Version: "4"})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing descriptor error = %v, want NOT_FOUND", err)
	}
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(metadata))
	}))
	defer server.Close()

	client := NewClient(cache.NewNull(), server.URL, integrations.Options{RetryDelay: time.Millisecond}, log.New(&bytes.Buffer{}))
	versions, err := client.Versions(context.Background(), "org.example", "foo")
	if err != nil {
		t.Fatalf("Versions() error: %v", err)
	}
	if len(versions) != 3 || calls.Load() != 3 {
		t.Errorf("versions = %d, calls = %d; want 3, 3", len(versions), calls.Load())
	}
}

var (
	_ artifact.Source = (*Client)(nil)
	_ pom.Resolver    = (*Client)(nil)
)
