package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSourcesDefault(t *testing.T) {
	s, err := LoadSources("")
	if err != nil {
		t.Fatalf("LoadSources default: %v", err)
	}
	if len(s.Feeds) != 13 {
		t.Fatalf("default feeds = %d, want 13", len(s.Feeds))
	}
	if s.Feeds[0].Category != "Politics" || s.Feeds[12].Category != "New" {
		t.Fatalf("unexpected feed order: first=%q last=%q", s.Feeds[0].Category, s.Feeds[12].Category)
	}
	tags := s.TagsFor("Companies")
	if len(tags) != 4 || tags[3] != "Mergers & Acquisitions" {
		t.Fatalf("Companies tags = %v", tags)
	}
	if len(s.TagsFor("Tech & Science")) != 6 {
		t.Fatalf("Tech & Science tags = %v", s.TagsFor("Tech & Science"))
	}
}

func TestTagsForUnknownCategoryIsEmptyNotNil(t *testing.T) {
	s := &Sources{Tags: map[string][]string{"Crypto": {"Crypto"}}}
	tags := s.TagsFor("Nope")
	if tags == nil || len(tags) != 0 {
		t.Fatalf("TagsFor unknown = %#v, want empty non-nil slice", tags)
	}

	// 返回的是副本，修改不影响配置
	got := s.TagsFor("Crypto")
	got[0] = "changed"
	if s.Tags["Crypto"][0] != "Crypto" {
		t.Fatalf("TagsFor must return a copy")
	}
}

func TestParseSourcesValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"no feeds", "tags: {}\nfeeds: []\n"},
		{"empty url", "feeds:\n  - url: ''\n    category: Crypto\n"},
		{"empty category", "feeds:\n  - url: https://example.com/rss\n"},
		{"bad yaml", "feeds: [\n"},
	}
	for _, c := range cases {
		if _, err := ParseSources([]byte(c.yaml)); err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
	}
}

func TestLoadSourcesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	body := "tags:\n  Crypto: [Crypto, Finance]\nfeeds:\n  - url: https://example.com/a.xml\n    category: Crypto\n  - url: https://example.com/b.xml\n    category: Misc\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources: %v", err)
	}
	if len(s.Feeds) != 2 || s.Feeds[1].URL != "https://example.com/b.xml" {
		t.Fatalf("unexpected feeds: %+v", s.Feeds)
	}
	if len(s.TagsFor("Misc")) != 0 {
		t.Fatalf("Misc should have no tags")
	}

	if _, err := LoadSources(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
