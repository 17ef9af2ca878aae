package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resonate/internal/testsupport"
)

func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	base := t.TempDir()
	cfgPath := filepath.Join(base, "config.toml")
	content := `[paths]
music_dir = "` + filepath.Join(base, "music") + `"
playlists_dir = "` + filepath.Join(base, "playlists") + `"
staging_dir = "` + filepath.Join(base, "staging") + `"
reports_dir = "` + filepath.Join(base, "reports") + `"
export_dir = "` + filepath.Join(base, "exports") + `"
log_dir = "` + filepath.Join(base, "logs") + `"

[logging]
format = "json"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath, base
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("resonate %s: %v\noutput:\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "config.toml")

	out := runCommand(t, "config", "init", "--path", target)
	if !strings.Contains(out, target) {
		t.Fatalf("init output missing target path: %s", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	cmd := newRootCommand()
	cmd.SetArgs([]string{"config", "init", "--path", target})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("second init without --overwrite succeeded")
	}
}

func TestConfigShowPrintsEffectiveConfig(t *testing.T) {
	cfgPath, base := writeTestConfig(t)
	out := runCommand(t, "--config", cfgPath, "config", "show")
	if !strings.Contains(out, filepath.Join(base, "music")) {
		t.Fatalf("show output missing music dir: %s", out)
	}
}

func TestPipelineCommandsEndToEnd(t *testing.T) {
	cfgPath, base := writeTestConfig(t)

	// Untagged fixtures rely on the Artist/Album/Title path fallback.
	music := filepath.Join(base, "music")
	testsupport.WriteFile(t, filepath.Join(music, "Queen", "Greatest Hits", "Bohemian Rhapsody.mp3"), 64)
	testsupport.WriteFile(t, filepath.Join(music, "Queen", "Greatest Hits", "Under Pressure.mp3"), 64)

	testsupport.WriteCSV(t, filepath.Join(base, "playlists", "Road_Trip.csv"),
		`Track Name,Artist Name(s),Album Name,Duration (ms),Position`,
		`Bohemian Rhapsody,Queen,Greatest Hits,354000,1`,
		`Missing Song,Nobody,Nowhere,200000,2`,
	)

	runCommand(t, "--config", cfgPath, "scan")
	if _, err := os.Stat(filepath.Join(base, "reports", "library_index.csv")); err != nil {
		t.Fatalf("scan snapshot missing: %v", err)
	}

	out := runCommand(t, "--config", cfgPath, "report")
	if !strings.Contains(out, "Road Trip") {
		t.Fatalf("report output missing playlist: %s", out)
	}
	if !strings.Contains(out, "Missing tracks: 1") {
		t.Fatalf("report output missing count: %s", out)
	}

	runCommand(t, "--config", cfgPath, "export")
	data, err := os.ReadFile(filepath.Join(base, "exports", "Road Trip.m3u8"))
	if err != nil {
		t.Fatalf("exported playlist missing: %v", err)
	}
	if !strings.Contains(string(data), "../music/Queen/Greatest Hits/Bohemian Rhapsody.mp3") {
		t.Fatalf("playlist content:\n%s", data)
	}

	history := runCommand(t, "--config", cfgPath, "history")
	for _, kind := range []string{"scan", "report", "export"} {
		if !strings.Contains(history, kind) {
			t.Fatalf("history missing %s run:\n%s", kind, history)
		}
	}
}

func TestIngestCommandMovesStagedFiles(t *testing.T) {
	cfgPath, base := writeTestConfig(t)

	// Untagged staged files cannot name an artist, so the batch reports
	// them instead of guessing.
	testsupport.WriteFile(t, filepath.Join(base, "staging", "mystery.mp3"), 64)

	out := runCommand(t, "--config", cfgPath, "ingest")
	if !strings.Contains(out, "skipped_unknown_artist") {
		t.Fatalf("ingest output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(base, "staging", "mystery.mp3")); err != nil {
		t.Fatalf("skipped file was moved: %v", err)
	}
}
