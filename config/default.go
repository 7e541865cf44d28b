package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/marquee-cli/marquee/color"
	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a registered configuration key with its default value.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field for `marquee config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env is the environment variable that overrides this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Marquee + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

func (f *Field) MarshalJSON() ([]byte, error) {
	value := viper.Get(f.Key)
	if f.Key == key.TMDBAPIKey && value != "" {
		value = "********"
	}

	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       value,
		Default:     f.Value,
		Description: f.Description,
		Type:        reflect.TypeOf(f.Value).String(),
	})
}

// Default is the registry of every known key.
var Default = make(map[string]Field)

// EnvExposed lists keys bound to environment variables.
var EnvExposed []string

func register(k string, v any, desc string) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}
	Default[k] = Field{Key: k, Value: v, Description: desc}
	EnvExposed = append(EnvExposed, k)
}

func init() {
	register(key.TMDBAPIKey, "", "TMDB API key (v3).\nFalls back to TMDB_API_KEY and then the system keyring.\nType \"marquee key set\" to store it in the keyring")
	register(key.TMDBBaseURL, constant.TMDBBaseURL, "Base URL of the TMDB API")
	register(key.TMDBImageBaseURL, constant.TMDBImageBaseURL, "Base URL used to build poster, backdrop and portrait URLs")
	register(key.TMDBLanguage, "en-US", "Language sent with every request. Empty to let TMDB decide")

	register(key.NetworkTimeout, 30, "HTTP client timeout in seconds")
	register(key.NetworkRateLimit, 40, "Maximum outgoing requests per second. 0 disables the limiter")
	register(key.NetworkRateBurst, 20, "Burst size of the request limiter")

	register(key.CacheRetryCount, 1, "How many times a failed query is retried")
	register(key.CacheRetryDelayMs, 500, "Delay between retries in milliseconds")
	register(key.CacheRetryNotFound, true, "Retry lookups that failed with 404")
	register(key.CacheRetryClientErrors, true, "Retry requests rejected with other 4xx statuses")
	register(key.CacheGCIntervalMinutes, 5, "How often unused cache entries are swept")
	register(key.CacheGCTimeMinutes, 5, "How long an unobserved stale entry is kept")

	register(key.TUIScrollStep, 3, "Cards scrolled per step in a carousel")
	register(key.TUIPlaceholderSlots, 6, "Placeholder cards shown while a carousel loads")
	register(key.TUIShowURLs, false, "Show poster and trailer URLs on detail pages")
	register(key.TUISearchPrompt, "> ", "Search prompt string to use")

	register(key.SearchShowQuerySuggestions, true, "Show query suggestions from this session's searches")
	register(key.SearchDefaultType, "all", "Default result type for searches.\nAvailable options are: movies, tv, all")

	register(key.MiniPageSize, 10, "Items shown per prompt page in mini mode")

	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")

	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")

	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"value":    displayValue,
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))

func displayValue(k string) any {
	v := viper.Get(k)
	if k == key.TMDBAPIKey && v != "" {
		return "********"
	}
	return v
}
