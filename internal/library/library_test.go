package library_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"resonate/internal/canonical"
	"resonate/internal/library"
	"resonate/internal/logging"
	"resonate/internal/tags"
	"resonate/internal/testsupport"
)

func TestNewRecordTagPriority(t *testing.T) {
	canon := canonical.Default()
	rec, err := library.NewRecord(canon, "Queen/A Night at the Opera/01 - Bohemian Rhapsody.mp3", tags.Reading{
		Artist:     "Queen",
		Title:      "Bohemian Rhapsody",
		Album:      "A Night at the Opera",
		DurationMS: 354000,
	})
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	if rec.Key.Artist != "queen" || rec.Key.Title != "bohemian rhapsody" {
		t.Fatalf("unexpected key %+v", rec.Key)
	}
	if !rec.HasDuration() {
		t.Fatal("duration lost")
	}
}

func TestNewRecordPathFallback(t *testing.T) {
	canon := canonical.Default()
	rec, err := library.NewRecord(canon, "Queen/A Night at the Opera/01 - Bohemian Rhapsody.mp3", tags.Reading{})
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	if rec.ArtistRaw != "Queen" {
		t.Fatalf("artist fallback = %q", rec.ArtistRaw)
	}
	if rec.AlbumRaw != "A Night at the Opera" {
		t.Fatalf("album fallback = %q", rec.AlbumRaw)
	}
	if rec.TitleRaw != "Bohemian Rhapsody" {
		t.Fatalf("title fallback = %q, want track prefix stripped", rec.TitleRaw)
	}
}

func TestTitleFromStem(t *testing.T) {
	cases := []struct{ in, want string }{
		{"01 - Song Title.mp3", "Song Title"},
		{"1_Song Title.flac", "Song Title"},
		{"12.Another One.ogg", "Another One"},
		{"Song Without Prefix.mp3", "Song Without Prefix"},
		{"99.mp3", "99"},
	}
	for _, tc := range cases {
		if got := library.TitleFromStem(tc.in); got != tc.want {
			t.Fatalf("TitleFromStem(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIndexPreservesDuplicates(t *testing.T) {
	canon := canonical.Default()
	a, err := library.NewRecord(canon, "X/Album A/Song.mp3", tags.Reading{Artist: "X", Title: "Song"})
	if err != nil {
		t.Fatalf("record a: %v", err)
	}
	b, err := library.NewRecord(canon, "X/Album B/Song.flac", tags.Reading{Artist: "X", Title: "Song"})
	if err != nil {
		t.Fatalf("record b: %v", err)
	}

	idx := library.NewIndex([]library.Record{b, a})
	got := idx.Lookup(a.Key)
	if len(got) != 2 {
		t.Fatalf("expected both duplicates, got %d", len(got))
	}
	if got[0].RelPath != "X/Album A/Song.mp3" {
		t.Fatalf("candidates not ordered by path: %q first", got[0].RelPath)
	}
	if idx.Len() != 2 {
		t.Fatalf("Len = %d", idx.Len())
	}
}

func TestScannerWalk(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "Queen", "Greatest Hits", "01 - Bohemian Rhapsody.mp3"), 64)
	testsupport.WriteFile(t, filepath.Join(root, "Queen", "Greatest Hits", "cover.jpg"), 64)
	testsupport.WriteFile(t, filepath.Join(root, "loose.flac"), 64)

	reader := tags.StubReader{
		filepath.Join(root, "loose.flac"): {Artist: "Solo", Title: "Loose Track", DurationMS: 120000},
	}

	scanner := library.NewScanner(root, reader, canonical.Default(), logging.NewNop())
	idx, report, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if report.FilesSeen != 2 {
		t.Fatalf("FilesSeen = %d, want 2 (jpg excluded)", report.FilesSeen)
	}
	if idx.Len() != 2 {
		t.Fatalf("indexed %d records", idx.Len())
	}

	key, err := canonical.Default().Key("Queen", "Bohemian Rhapsody")
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	if got := idx.Lookup(key); len(got) != 1 {
		t.Fatalf("fallback record not found, lookup returned %d", len(got))
	}
}

func TestScannerMissingRoot(t *testing.T) {
	scanner := library.NewScanner(filepath.Join(t.TempDir(), "absent"), tags.StubReader{}, canonical.Default(), logging.NewNop())
	if _, _, err := scanner.Scan(context.Background()); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestWriteSnapshot(t *testing.T) {
	canon := canonical.Default()
	rec, err := library.NewRecord(canon, "A/B/C.mp3", tags.Reading{Artist: "A", Title: "C", Album: "B", DurationMS: 1000})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	idx := library.NewIndex([]library.Record{rec})

	path := filepath.Join(t.TempDir(), "library_index.csv")
	if err := library.WriteSnapshot(idx, path); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[1][0] != "A/B/C.mp3" || rows[1][4] != "a" || rows[1][6] != "1000" {
		t.Fatalf("unexpected row %v", rows[1])
	}
}
