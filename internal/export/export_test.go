package export_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resonate/internal/canonical"
	"resonate/internal/export"
	"resonate/internal/logging"
	"resonate/internal/match"
	"resonate/internal/remote"
)

func result(t *testing.T, title string, position int, resolvedPath string, durationMS int64) match.Result {
	t.Helper()
	key, err := canonical.Default().Key("Artist", title)
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	return match.Result{
		Row: remote.Row{
			TrackTitleRaw:    title,
			PrimaryArtistRaw: "Artist",
			DurationMS:       durationMS,
			PlaylistName:     "Road Trip",
			Position:         position,
			Key:              key,
		},
		ResolvedPath: resolvedPath,
	}
}

func TestWritePlaylistOrderingAndSkips(t *testing.T) {
	dir := t.TempDir()
	exporter := export.NewExporter(dir, "Music", logging.NewNop())

	results := []match.Result{
		result(t, "No Position B", 0, "Artist/A/No Position B.mp3", 180000),
		result(t, "Second", 2, "Artist/A/Second.mp3", 200000),
		result(t, "Missing", 1, "", 150000),
		result(t, "First", 1, "Artist/A/First.mp3", 210000),
		result(t, "No Position A", 0, "Artist/A/No Position A.mp3", 190000),
	}

	exported, err := exporter.WritePlaylist("Road Trip", results)
	if err != nil {
		t.Fatalf("WritePlaylist: %v", err)
	}
	if exported.Written != 4 || exported.Skipped != 1 {
		t.Fatalf("written=%d skipped=%d", exported.Written, exported.Skipped)
	}

	data, err := os.ReadFile(exported.Path)
	if err != nil {
		t.Fatalf("read playlist: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "#EXTM3U" {
		t.Fatalf("missing header, got %q", lines[0])
	}

	var paths []string
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "#") {
			paths = append(paths, line)
		}
	}
	want := []string{
		"../Music/Artist/A/First.mp3",
		"../Music/Artist/A/Second.mp3",
		"../Music/Artist/A/No Position B.mp3",
		"../Music/Artist/A/No Position A.mp3",
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("path[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestWritePlaylistExtinfLine(t *testing.T) {
	dir := t.TempDir()
	exporter := export.NewExporter(dir, "Music", logging.NewNop())

	exported, err := exporter.WritePlaylist("Mini", []match.Result{
		result(t, "Song", 1, "Artist/Album/Song.mp3", 218499),
	})
	if err != nil {
		t.Fatalf("WritePlaylist: %v", err)
	}
	data, err := os.ReadFile(exported.Path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "#EXTINF:218,Artist - Song") {
		t.Fatalf("unexpected content:\n%s", data)
	}
}

func TestWriteAllSafeFileNames(t *testing.T) {
	dir := t.TempDir()
	exporter := export.NewExporter(dir, "Music", logging.NewNop())

	res := result(t, "Song", 1, "Artist/Album/Song.mp3", 100000)
	res.Row.PlaylistName = "Mix: A/B?"

	exports, err := exporter.WriteAll([]match.Result{res})
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	if len(exports) != 1 {
		t.Fatalf("exports = %d", len(exports))
	}
	base := filepath.Base(exports[0].Path)
	if strings.ContainsAny(base, ":?/") {
		t.Fatalf("unsafe file name %q", base)
	}
}
