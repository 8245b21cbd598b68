package app

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"frame-go/internal/config"
	"frame-go/internal/frame"
	"frame-go/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, cfg *config.Config, random *testutil.StubRandom) (*FrameApp, *bytes.Buffer) {
	t.Helper()
	now := testutil.FixedClock().Now()
	m := testutil.NewMockFilesystemManager()
	m.AddDirectory("/pics")
	m.AddFile("/pics/a.jpg", now)
	m.AddFile("/pics/b.PNG", now)
	m.AddFile("/pics/notes.txt", now)
	m.AddDirectory("/pics/2019")
	m.AddFile("/pics/2019/c.jpeg", now.Add(-5*frame.SecondsPerYear*time.Second))

	var buf bytes.Buffer
	clock := testutil.FixedClock()
	logger := slog.New(newLineHandler(&buf, "op-test", nil))
	scanner := frame.NewScanner(m, logger.With("component", "scanner"), clock, random)
	op := NewOperation("Test", testutil.NewStubIDGenerator(), clock)
	return newFrameApp(cfg, scanner, op, logger, clock), &buf
}

func TestFrameApp_GetFileList(t *testing.T) {
	a, buf := newTestApp(t, config.NewConfig("/data", "/pics"), testutil.NewStubRandom())

	got, err := a.GetFileList("/pics", frame.DefaultImagePattern, false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"/pics/a.jpg", "/pics/b.PNG"}, got)

	got, err = a.GetFileList("/pics", frame.DefaultImagePattern, true, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"/pics/a.jpg", "/pics/b.PNG", "/pics/2019/c.jpeg"}, got)

	assert.Contains(t, buf.String(), "\top-test\tscan complete\tcomponent=scanner\t")
}

func TestFrameApp_GetFileList_Errors(t *testing.T) {
	tests := []struct {
		name    string
		folder  string
		filter  string
		wantErr error
		wantMsg string
	}{
		{name: "invalid regex", folder: "/pics", filter: "[", wantErr: frame.ErrInvalidPattern, wantMsg: "invalid regex pattern: "},
		{name: "unreadable folder", folder: "/nowhere", filter: ".*", wantErr: frame.ErrDirectoryUnreadable, wantMsg: "error reading directory /nowhere: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, buf := newTestApp(t, config.NewConfig("/data", "/pics"), testutil.NewStubRandom())

			got, err := a.GetFileList(tt.folder, tt.filter, false, false)
			require.Error(t, err)
			assert.Nil(t, got, "no partial results")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, strings.HasPrefix(err.Error(), tt.wantMsg), "error %q does not start with %q", err.Error(), tt.wantMsg)
			assert.True(t, a.op.Failed(), "operation not marked failed")
			assert.Contains(t, buf.String(), "file list failed")
		})
	}
}

func TestFrameApp_Playlist(t *testing.T) {
	cfg := config.NewConfig("/data", "/pics")
	cfg.TimeFilter = true
	// 0.5 keeps files up to a year old and drops the five-year-old one.
	a, _ := newTestApp(t, cfg, testutil.NewStubRandom(0.5).WithInts(0))

	got, err := a.Playlist()
	require.NoError(t, err)
	assert.Equal(t, []string{"/pics/b.PNG", "/pics/a.jpg"}, got)
}

func TestFrameApp_ListFolders(t *testing.T) {
	a, _ := newTestApp(t, config.NewConfig("/data", "/pics"), testutil.NewStubRandom())

	assert.Equal(t, []string{"/pics", "/pics/2019"}, a.ListFolders("/pics", true))
}

func TestNewFrameApp(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewConfig(dir, dir)
	cfg.LogLevel = "error"

	a, err := NewFrameApp(cfg, "GetFileList")
	require.NoError(t, err)
	assert.NotEmpty(t, a.op.ID)
	assert.Same(t, cfg, a.Config())
	assert.NoError(t, a.Close())

	cfg.LogLevel = "chatty"
	_, err = NewFrameApp(cfg, "GetFileList")
	assert.Error(t, err, "invalid log level")
}
