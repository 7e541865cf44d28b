// Package query keeps the search history of the running session and suggests
// earlier queries for partial input.
package query

import (
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/marquee-cli/marquee/key"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank  int
	Query string
	order int
}

var (
	mu      sync.Mutex
	records = make(map[string]*queryRecord)
	counter int
)

// Remember records q or raises its rank by weight. Blank queries are ignored.
func Remember(q string, weight int) {
	q = sanitize(q)
	if q == "" {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	counter++
	if record, ok := records[q]; ok {
		record.Rank += weight
		record.order = counter
		return
	}
	records[q] = &queryRecord{Rank: weight, Query: q, order: counter}
}

// Suggest returns the best earlier query matching q.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns earlier queries fuzzily matching q, highest rank first
// and most recent first among equal ranks.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)
	if q == "" {
		return []string{}
	}

	mu.Lock()
	matched := lo.Filter(lo.Values(records), func(r *queryRecord, _ int) bool {
		return fuzzy.Match(q, r.Query)
	})
	matched = lo.Map(matched, func(r *queryRecord, _ int) *queryRecord {
		c := *r
		return &c
	})
	mu.Unlock()

	slices.SortFunc(matched, func(a, b *queryRecord) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return b.order - a.order
	})

	return lo.Map(matched, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

// Forget clears the history.
func Forget() {
	mu.Lock()
	defer mu.Unlock()
	records = make(map[string]*queryRecord)
	counter = 0
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
