package remote_test

import (
	"os"
	"path/filepath"
	"testing"

	"resonate/internal/canonical"
	"resonate/internal/logging"
	"resonate/internal/pipeline"
	"resonate/internal/remote"
)

func writeExport(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func newLoader() *remote.Loader {
	return remote.NewLoader(canonical.Default(), remote.DefaultArtistPolicy(), logging.NewNop())
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "Road_Trip.csv",
		"Track Name,Artist Name(s),Album Name,Duration (ms),Position\n"+
			"Go Your Own Way,\"Fleetwood Mac, Someone Else\",Rumours,218000,2\n"+
			"Dreams,Fleetwood Mac,Rumours,257000,1\n")
	writeExport(t, dir, "Liked_Songs.csv",
		"Track Name,Artist Name(s),Album Name,Duration (ms)\n"+
			"Dreams,Fleetwood Mac,Rumours,257000\n")

	rows, err := newLoader().LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}

	// Files load in name order: Liked_Songs first.
	liked := rows[0]
	if liked.PlaylistName != "Liked Songs" || !liked.IsLiked {
		t.Fatalf("liked row mishandled: %+v", liked)
	}
	if liked.HasPosition() {
		t.Fatal("position should be unknown when column absent")
	}

	trip := rows[1]
	if trip.PlaylistName != "Road Trip" || trip.IsLiked {
		t.Fatalf("playlist name: %+v", trip)
	}
	if trip.PrimaryArtistRaw != "Fleetwood Mac" {
		t.Fatalf("primary artist = %q", trip.PrimaryArtistRaw)
	}
	if trip.Position != 2 {
		t.Fatalf("position = %d", trip.Position)
	}
	if trip.Key.Title != "go your own way" {
		t.Fatalf("key = %+v", trip.Key)
	}
}

func TestLoadFileMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "Broken.csv", "Track Name,Album Name\nSong,Album\n")

	_, err := newLoader().LoadDir(dir)
	if err == nil {
		t.Fatal("expected structural error")
	}
	if !pipeline.IsStructural(err) {
		t.Fatalf("expected structural classification, got %v", err)
	}
}

func TestLoadFileEmptyTitle(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "Odd.csv",
		"Track Name,Artist Name(s),Album Name,Duration (ms)\n"+
			"!!!,Artist,Album,1000\n")

	_, err := newLoader().LoadDir(dir)
	if !pipeline.IsStructural(err) {
		t.Fatalf("expected structural error for empty key, got %v", err)
	}
}

func TestTopSongsDetection(t *testing.T) {
	cases := []struct {
		file string
		top  bool
	}{
		{"Your_Top_Songs_2023.csv", true},
		{"Top_Songs_2021.csv", true},
		{"Road_Trip.csv", false},
	}
	for _, tc := range cases {
		name := remote.PlaylistNameFromFile(tc.file)
		if got := remote.IsTopSongsExport(name); got != tc.top {
			t.Fatalf("IsTopSongsExport(%q) = %v", name, got)
		}
	}
}

func TestArtistPolicySeparators(t *testing.T) {
	policy := remote.DefaultArtistPolicy()
	cases := []struct{ in, want string }{
		{"A, B, C", "A"},
		{"A; B", "A"},
		{"Solo", "Solo"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := policy.Primary(tc.in); got != tc.want {
			t.Fatalf("Primary(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
