// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package registry

import (
	"reflect"
	"testing"
)

func fieldNames(s Schema) []string {
	var names []string
	for _, f := range s.Fields() {
		names = append(names, f.Name)
	}
	return names
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		kind     string
		expected Category
	}{
		{"youtube_video", CategoryYouTubeVideo},
		{"youtube_search", CategoryYouTubeSearch},
		{"youtube_channel", CategoryGeneral},
		{"deepl_translate", CategoryTranslate},
		{"google_translate", CategoryTranslate},
		{"reddit_posts", CategoryRedditListing},
		{"reddit_comments", CategoryRedditListing},
		{"reddit_post_info", CategoryRedditPost},
		{"telegram_group", CategoryTelegramGroup},
		{"perplexity", CategoryGeneral},
		{"nethttp", CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			if got := Categorize(tt.kind); got != tt.expected {
				t.Errorf("Categorize(%q) = %v, want %v", tt.kind, got, tt.expected)
			}
		})
	}
}

func TestDeriveSchema(t *testing.T) {
	base := []string{"query", "timeout", "preset"}

	tests := []struct {
		name     string
		category Category
		extra    []string
	}{
		{"general keeps base only", CategoryGeneral, nil},
		{"youtube video", CategoryYouTubeVideo, []string{"interface_language", "subtitles_language", "comments_pages"}},
		{"youtube search", CategoryYouTubeSearch, []string{"pages_count", "sort"}},
		{"translate", CategoryTranslate, []string{"from_language", "to_language"}},
		{"reddit listing", CategoryRedditListing, []string{"pages_count", "sort"}},
		{"reddit post", CategoryRedditPost, []string{"max_comments_count"}},
		{"telegram group", CategoryTelegramGroup, []string{"max_empty_posts"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := append(append([]string{}, base...), tt.extra...)
			if got := fieldNames(DeriveSchema(tt.category)); !reflect.DeepEqual(got, want) {
				t.Errorf("DeriveSchema(%v) fields = %v, want %v", tt.category, got, want)
			}
		})
	}
}

func TestSchemaDefaultsAndDomains(t *testing.T) {
	yt := DeriveSchema(CategoryYouTubeVideo)
	cp, _ := yt.Field("comments_pages")
	if cp.Default != 0 || *cp.Minimum != 0 || *cp.Maximum != 20 {
		t.Errorf("comments_pages = default %v range [%d,%d], want 0 [0,20]", cp.Default, *cp.Minimum, *cp.Maximum)
	}

	search := DeriveSchema(CategoryYouTubeSearch)
	sort, _ := search.Field("sort")
	if sort.Default != "relevance" {
		t.Errorf("sort default = %v, want relevance", sort.Default)
	}
	if want := []string{"relevance", "date", "viewCount", "rating"}; !reflect.DeepEqual(sort.Enum, want) {
		t.Errorf("sort enum = %v, want %v", sort.Enum, want)
	}

	tr := DeriveSchema(CategoryTranslate)
	from, _ := tr.Field("from_language")
	to, _ := tr.Field("to_language")
	if from.Default != "auto" || to.Default != "en" {
		t.Errorf("translate defaults = %v/%v, want auto/en", from.Default, to.Default)
	}

	post := DeriveSchema(CategoryRedditPost)
	mc, _ := post.Field("max_comments_count")
	if mc.Default != 100 || *mc.Maximum != 1000 {
		t.Errorf("max_comments_count = default %v max %d, want 100 max 1000", mc.Default, *mc.Maximum)
	}
}

func TestJSONSchemaShape(t *testing.T) {
	js := DeriveSchema(CategoryYouTubeSearch).JSONSchema()

	if js["type"] != "object" {
		t.Fatalf("type = %v, want object", js["type"])
	}
	if req, _ := js["required"].([]string); !reflect.DeepEqual(req, []string{"query"}) {
		t.Errorf("required = %v, want [query]", js["required"])
	}
	props := js["properties"].(map[string]any)
	timeout := props["timeout"].(map[string]any)
	if timeout["default"] != DefaultTimeoutSeconds || timeout["type"] != TypeInteger {
		t.Errorf("timeout property = %v", timeout)
	}
	sort := props["sort"].(map[string]any)
	if _, ok := sort["enum"]; !ok {
		t.Errorf("sort property has no enum: %v", sort)
	}
	if _, ok := props["preset"].(map[string]any)["default"]; ok {
		t.Errorf("preset must not advertise a default")
	}
}
