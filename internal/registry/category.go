// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package registry

import "strings"

// Category selects the schema extension a parser tool receives.
type Category int

const (
	// CategoryGeneral parsers accept only the base schema.
	CategoryGeneral Category = iota
	CategoryYouTubeVideo
	CategoryYouTubeSearch
	CategoryTranslate
	CategoryRedditListing
	CategoryRedditPost
	CategoryTelegramGroup
	// CategoryMetadata tools query the executor directly, no task is submitted.
	CategoryMetadata
	// CategoryKV tools read or write the executor key-value store.
	CategoryKV
)

var categoryNames = map[Category]string{
	CategoryGeneral:       "general",
	CategoryYouTubeVideo:  "youtube_video",
	CategoryYouTubeSearch: "youtube_search",
	CategoryTranslate:     "translate",
	CategoryRedditListing: "reddit_listing",
	CategoryRedditPost:    "reddit_post",
	CategoryTelegramGroup: "telegram_group",
	CategoryMetadata:      "metadata",
	CategoryKV:            "kv",
}

func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return "unknown"
}

const (
	kindYouTubeVideo   = "youtube_video"
	kindYouTubeSearch  = "youtube_search"
	kindRedditPostInfo = "reddit_post_info"
	kindTelegramGroup  = "telegram_group"
)

var redditListingKinds = map[string]bool{
	"reddit_posts":    true,
	"reddit_comments": true,
}

type categoryRule struct {
	category Category
	match    func(kind string) bool
}

// categoryRules is evaluated top to bottom; the first match wins.
var categoryRules = []categoryRule{
	{CategoryYouTubeVideo, func(k string) bool { return strings.HasPrefix(k, "youtube_") && k == kindYouTubeVideo }},
	{CategoryYouTubeSearch, func(k string) bool { return strings.HasPrefix(k, "youtube_") && k == kindYouTubeSearch }},
	{CategoryTranslate, func(k string) bool { return strings.HasSuffix(k, "_translate") }},
	{CategoryRedditListing, func(k string) bool { return strings.HasPrefix(k, "reddit_") && redditListingKinds[k] }},
	{CategoryRedditPost, func(k string) bool { return k == kindRedditPostInfo }},
	{CategoryTelegramGroup, func(k string) bool { return k == kindTelegramGroup }},
}

// Categorize maps a task kind to its schema category.
func Categorize(taskKind string) Category {
	for _, r := range categoryRules {
		if r.match(taskKind) {
			return r.category
		}
	}
	return CategoryGeneral
}

func (c Category) extension() []Field {
	switch c {
	case CategoryYouTubeVideo:
		return []Field{
			{Name: "interface_language", Type: TypeString, Description: "YouTube interface language", Default: "en"},
			{Name: "subtitles_language", Type: TypeString, Description: "Subtitles language", Default: "en"},
			{Name: "comments_pages", Type: TypeInteger, Description: "Number of comment pages to load", Default: 0, Minimum: intPtr(0), Maximum: intPtr(20)},
		}
	case CategoryYouTubeSearch:
		return []Field{
			{Name: "pages_count", Type: TypeInteger, Description: "Number of result pages", Default: 1, Minimum: intPtr(1)},
			{Name: "sort", Type: TypeString, Description: "Result ordering", Default: "relevance", Enum: []string{"relevance", "date", "viewCount", "rating"}},
		}
	case CategoryTranslate:
		return []Field{
			{Name: "from_language", Type: TypeString, Description: "Source language code or 'auto'", Default: "auto"},
			{Name: "to_language", Type: TypeString, Description: "Target language code", Default: "en"},
		}
	case CategoryRedditListing:
		return []Field{
			{Name: "pages_count", Type: TypeInteger, Description: "Number of result pages", Default: 1, Minimum: intPtr(1)},
			{Name: "sort", Type: TypeString, Description: "Result ordering", Default: "relevance"},
		}
	case CategoryRedditPost:
		return []Field{
			{Name: "max_comments_count", Type: TypeInteger, Description: "Maximum number of comments to collect", Default: 100, Minimum: intPtr(0), Maximum: intPtr(1000)},
		}
	case CategoryTelegramGroup:
		return []Field{
			{Name: "max_empty_posts", Type: TypeInteger, Description: "Stop after this many consecutive empty posts", Default: 100, Minimum: intPtr(0)},
		}
	}
	return nil
}
