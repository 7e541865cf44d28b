// Package cmd implements the marquee command line.
package cmd

import (
	"context"
	"time"

	"github.com/marquee-cli/marquee/catalog"
	"github.com/marquee-cli/marquee/config"
	"github.com/marquee-cli/marquee/internal/cache"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/network"
	"github.com/spf13/viper"
)

// newClient builds the TMDB client. A missing API key is fatal.
func newClient() *catalog.Client {
	apiKey, err := config.APIKey()
	handleErr(err)

	client, err := catalog.NewClient(
		apiKey,
		catalog.WithBaseURL(viper.GetString(key.TMDBBaseURL)),
		catalog.WithImageBaseURL(viper.GetString(key.TMDBImageBaseURL)),
		catalog.WithLanguage(viper.GetString(key.TMDBLanguage)),
		catalog.WithHTTPClient(network.Client()),
	)
	handleErr(err)
	return client
}

func retryPolicy() cache.RetryPolicy {
	return cache.RetryPolicy{
		Retries: viper.GetInt(key.CacheRetryCount),
		Delay:   time.Duration(viper.GetInt(key.CacheRetryDelayMs)) * time.Millisecond,
		RetryIf: cache.RetryClasses(
			viper.GetBool(key.CacheRetryNotFound),
			viper.GetBool(key.CacheRetryClientErrors),
		),
	}
}

// newQueries builds the cache every front end reads through and starts its
// garbage collector. The returned func stops both.
func newQueries() (*cache.Queries, func()) {
	m := cache.New(
		cache.WithRetryPolicy(retryPolicy()),
		cache.WithGCTime(time.Duration(viper.GetInt(key.CacheGCTimeMinutes))*time.Minute),
	)

	ctx, cancel := context.WithCancel(context.Background())
	m.CollectGarbage(ctx, time.Duration(viper.GetInt(key.CacheGCIntervalMinutes))*time.Minute)

	return cache.NewQueries(m, newClient()), func() {
		cancel()
		m.Close()
	}
}
