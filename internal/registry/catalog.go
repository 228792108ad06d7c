// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package registry

// Tool name prefixes. The exposed name of a parser tool is prefix + task kind.
const (
	PrefixSearch    = "search_"
	PrefixTranslate = "translate_"
	PrefixFetch     = "fetch_"
)

// Entry is one row of the static catalog.
type Entry struct {
	TaskKind    string
	Prefix      string
	Title       string
	Description string
}

// Catalog is the canonical parser table, in listing order.
var Catalog = []Entry{
	// AI assistants
	{TaskKind: "perplexity", Prefix: PrefixSearch, Title: "Perplexity AI", Description: "AI-powered search and research with sources"},
	{TaskKind: "chatgpt", Prefix: PrefixSearch, Title: "ChatGPT", Description: "ChatGPT with web search capabilities"},
	{TaskKind: "claude", Prefix: PrefixSearch, Title: "Claude AI", Description: "Anthropic Claude AI assistant"},
	{TaskKind: "gemini", Prefix: PrefixSearch, Title: "Google Gemini", Description: "Google Gemini AI model"},
	{TaskKind: "copilot", Prefix: PrefixSearch, Title: "Microsoft Copilot", Description: "Microsoft Copilot search"},
	{TaskKind: "grok", Prefix: PrefixSearch, Title: "xAI Grok", Description: "xAI Grok AI assistant"},
	{TaskKind: "deepseek", Prefix: PrefixSearch, Title: "DeepSeek", Description: "DeepSeek AI assistant"},

	// Web search
	{TaskKind: "google", Prefix: PrefixSearch, Title: "Google Search", Description: "Google web search"},
	{TaskKind: "bing", Prefix: PrefixSearch, Title: "Bing Search", Description: "Bing web search"},
	{TaskKind: "duckduckgo", Prefix: PrefixSearch, Title: "DuckDuckGo", Description: "DuckDuckGo search engine"},

	// Video and social
	{TaskKind: "youtube_search", Prefix: PrefixSearch, Title: "YouTube Search", Description: "Search YouTube videos"},
	{TaskKind: "youtube_video", Prefix: PrefixSearch, Title: "YouTube Video Info", Description: "Get YouTube video details, subtitles and comments"},
	{TaskKind: "reddit_posts", Prefix: PrefixSearch, Title: "Reddit Posts", Description: "Search Reddit posts"},
	{TaskKind: "reddit_comments", Prefix: PrefixSearch, Title: "Reddit Comments", Description: "Search Reddit comments"},
	{TaskKind: "reddit_post_info", Prefix: PrefixSearch, Title: "Reddit Post Info", Description: "Get Reddit post details with comments"},
	{TaskKind: "telegram_group", Prefix: PrefixSearch, Title: "Telegram Messages", Description: "Scrape Telegram channel messages"},

	// Translators
	{TaskKind: "bing_translate", Prefix: PrefixTranslate, Title: "Bing Translator", Description: "Translate text with Bing"},
	{TaskKind: "google_translate", Prefix: PrefixTranslate, Title: "Google Translate", Description: "Translate text with Google"},
	{TaskKind: "deepl_translate", Prefix: PrefixTranslate, Title: "DeepL Translator", Description: "Translate text with DeepL"},
	{TaskKind: "yandex_translate", Prefix: PrefixTranslate, Title: "Yandex Translator", Description: "Translate text with Yandex"},

	// Raw fetch
	{TaskKind: "nethttp", Prefix: PrefixFetch, Title: "HTTP Fetcher", Description: "Fetch content from a URL"},
}

// Names of the fixed tools served without a remote task.
const (
	ToolListParsers   = "list_parsers"
	ToolGetParserInfo = "get_parser_info"
	ToolHealthCheck   = "health_check"
	ToolKVGet         = "redis_get"
	ToolKVSet         = "redis_set"
)

// fixedTools returns the metadata and key-value tools, in listing order.
func fixedTools() []Tool {
	str := func(name, desc string, required bool) Field {
		return Field{Name: name, Type: TypeString, Description: desc, Required: required, NonBlank: required}
	}
	return []Tool{
		{
			Descriptor: Descriptor{Name: ToolListParsers, Title: "List Parsers", Description: "List all available parsers with details", Category: CategoryMetadata},
			Schema:     NewSchema(),
		},
		{
			Descriptor: Descriptor{Name: ToolGetParserInfo, Title: "Parser Info", Description: "Get detailed information about a specific parser", Category: CategoryMetadata},
			Schema:     NewSchema(str("parser_id", "Parser identifier (e.g. 'perplexity', 'chatgpt')", true)),
		},
		{
			Descriptor: Descriptor{Name: ToolHealthCheck, Title: "Health Check", Description: "Check API health status", Category: CategoryMetadata},
			Schema:     NewSchema(),
		},
		{
			Descriptor: Descriptor{Name: ToolKVGet, Title: "KV Get", Description: "Get a value from the key-value store by key", Category: CategoryKV},
			Schema:     NewSchema(str("key", "Key to read", true)),
		},
		{
			Descriptor: Descriptor{Name: ToolKVSet, Title: "KV Set", Description: "Set a key-value pair in the key-value store", Category: CategoryKV},
			Schema: NewSchema(
				str("key", "Key to write", true),
				Field{Name: "value", Type: TypeString, Description: "Value to store", Required: true},
				Field{Name: "ttl", Type: TypeInteger, Description: "TTL in seconds (optional)", Minimum: intPtr(1)},
			),
		},
	}
}
