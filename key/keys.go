// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Metadata Provider - these keys locate and authenticate against the TMDB API.
const (
	TMDBAPIKey       = "tmdb.api_key"
	TMDBBaseURL      = "tmdb.base_url"
	TMDBImageBaseURL = "tmdb.image_base_url"
	TMDBLanguage     = "tmdb.language"
)

// Network - these keys tune the shared HTTP client.
const (
	NetworkTimeout   = "network.timeout"
	NetworkRateLimit = "network.rate_limit"
	NetworkRateBurst = "network.rate_burst"
)

// Query Cache - these keys govern retries and garbage collection of cached queries.
const (
	CacheRetryCount        = "cache.retry_count"
	CacheRetryDelayMs      = "cache.retry_delay_ms"
	CacheRetryNotFound     = "cache.retry_not_found"
	CacheRetryClientErrors = "cache.retry_client_errors"
	CacheGCIntervalMinutes = "cache.gc_interval_minutes"
	CacheGCTimeMinutes     = "cache.gc_time_minutes"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment.
const (
	TUIScrollStep       = "tui.scroll_step"
	TUIPlaceholderSlots = "tui.placeholder_slots"
	TUIShowURLs         = "tui.show_urls"
	TUISearchPrompt     = "tui.search_prompt"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchDefaultType          = "search.default_type"
)

// Minimalist (Mini) Mode - these keys configure the prompt-driven browser.
const (
	MiniPageSize = "mini.page_size"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
