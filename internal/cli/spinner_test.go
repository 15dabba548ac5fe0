package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/updatecenter/pkg/errors"
)

func captureUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := uiOut
	uiOut = &buf
	t.Cleanup(func() { uiOut = prev })
	return &buf
}

func TestSpinnerSucceed(t *testing.T) {
	ui := captureUI(t)

	s := startSpinner(context.Background(), "Indexing wiki pages")
	time.Sleep(200 * time.Millisecond)
	s.succeed("Indexed %d wiki titles", 3)

	assert.Contains(t, ui.String(), "Indexing wiki pages", "frames are drawn while running")
	assert.Contains(t, ui.String(), "Indexed 3 wiki titles")
}

func TestSpinnerFail(t *testing.T) {
	ui := captureUI(t)

	s := startSpinner(context.Background(), "Indexing wiki pages")
	s.fail("Wiki index unavailable")
	assert.Contains(t, ui.String(), "Wiki index unavailable")
}

func TestSpinnerStopsWithContext(t *testing.T) {
	captureUI(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := startSpinner(ctx, "Indexing wiki pages")
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after cancellation")
	}
	s.stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	captureUI(t)
	s := startSpinner(context.Background(), "Indexing wiki pages")
	s.stop()
	s.stop()
	s.succeed("done")
}

func TestNewWikiReportsIndex(t *testing.T) {
	srv := fakeUpdateCenter(t)
	cfg := serverConfig(t, srv)

	ui, err := execute(t, "resolve", "--config", cfg, "foo")
	require.NoError(t, err)
	assert.Contains(t, ui, `Indexed 1 wiki titles under "Plugins"`)
}

func TestNewWikiIndexUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	cfg := writeConfig(t, fmt.Sprintf("[wiki]\nurl = %q\n\n[cache]\nbackend = \"none\"\n", srv.URL))

	ui, err := execute(t, "resolve", "--config", cfg, "foo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeRemoteService), "got %v", err)
	assert.Equal(t, ExitAborted, ExitCode(err))
	assert.Contains(t, ui, "Wiki index unavailable")
}
