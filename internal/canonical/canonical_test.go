package canonical

import (
	"errors"
	"testing"
)

func TestTextNormalization(t *testing.T) {
	c := Default()
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Bohemian Rhapsody", "bohemian rhapsody"},
		{"diacritics", "Beyoncé", "beyonce"},
		{"feat decoration", "Umbrella (feat. Jay-Z)", "umbrella"},
		{"ft decoration", "Umbrella (ft. Jay-Z)", "umbrella"},
		{"bracketed feat", "Umbrella [feat. Jay-Z]", "umbrella"},
		{"remaster suffix", "Come Together - Remastered 2009", "come together"},
		{"live suffix", "Alive - Live", "alive"},
		{"mono suffix", "Rain - Mono", "rain"},
		{"single version", "Heroes - Single Version", "heroes"},
		{"radio edit", "Blue Monday - Radio Edit", "blue monday"},
		{"punctuation collapse", "Don't  Stop -- Me. Now!", "don t stop me now"},
		{"whitespace trim", "  Yellow  ", "yellow"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Text(tc.in); got != tc.want {
				t.Fatalf("Text(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	c := Default()
	inputs := []string{
		"Beyoncé - Halo (feat. Nobody)",
		"Come Together - Remastered 2009",
		"  Mixed CASE with Ünïcödé  ",
		"already canonical text",
		"",
	}
	for _, in := range inputs {
		once := c.Text(in)
		if twice := c.Text(once); twice != once {
			t.Fatalf("Text not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestKey(t *testing.T) {
	c := Default()
	key, err := c.Key("Beyoncé", "Halo (feat. Someone)")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	want := Key{Artist: "beyonce", Title: "halo"}
	if key != want {
		t.Fatalf("key = %+v, want %+v", key, want)
	}
}

func TestKeyEmptyTitle(t *testing.T) {
	c := Default()
	if _, err := c.Key("Artist", "..."); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}

func TestKeyEmptyArtistAllowed(t *testing.T) {
	c := Default()
	key, err := c.Key("", "Intro")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if key.Artist != "" || key.Title != "intro" {
		t.Fatalf("unexpected key %+v", key)
	}
}

func TestCrossSourceSymmetry(t *testing.T) {
	c := Default()
	remote, err := c.Key("Sigur Rós", "Hoppípolla - Live")
	if err != nil {
		t.Fatalf("remote key: %v", err)
	}
	local, err := c.Key("Sigur Ros", "Hoppipolla")
	if err != nil {
		t.Fatalf("local key: %v", err)
	}
	if remote != local {
		t.Fatalf("keys differ: remote %+v local %+v", remote, local)
	}
}

func TestEmptyRulesetKeepsDecorations(t *testing.T) {
	c := New(EmptyRuleset())
	if got := c.Text("Halo (feat. Someone)"); got != "halo feat someone" {
		t.Fatalf("got %q", got)
	}
}

func TestSafePathComponent(t *testing.T) {
	cases := []struct {
		in       string
		fallback string
		want     string
	}{
		{"AC/DC", "Unknown Artist", "AC-DC"},
		{"What's Up?", "Unknown", "What's Up"},
		{"Beyoncé", "Unknown", "Beyonce"},
		{"  trailing dots...  ", "Unknown", "trailing dots"},
		{"<>:\"|?*", "Unknown Album", "Unknown Album"},
		{"", "Unknown Artist", "Unknown Artist"},
	}
	for _, tc := range cases {
		if got := SafePathComponent(tc.in, tc.fallback); got != tc.want {
			t.Fatalf("SafePathComponent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
