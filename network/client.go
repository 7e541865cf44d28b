// Package network builds the HTTP client shared by every TMDB request.
package network

import (
	"net/http"
	"sync"
	"time"

	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/log"
	"github.com/spf13/viper"
	"golang.org/x/net/http2"
	"golang.org/x/time/rate"
)

// Options tunes a client built by New.
type Options struct {
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
}

var (
	defaultClient *http.Client
	defaultOnce   sync.Once
)

// Client returns the process-wide client configured from network.* keys.
func Client() *http.Client {
	defaultOnce.Do(func() {
		defaultClient = New(Options{
			Timeout:   time.Duration(viper.GetInt(key.NetworkTimeout)) * time.Second,
			RateLimit: viper.GetFloat64(key.NetworkRateLimit),
			RateBurst: viper.GetInt(key.NetworkRateBurst),
		})
	})
	return defaultClient
}

// New builds a client with a tuned transport, HTTP/2 health checks and an
// optional outgoing rate limit.
func New(options Options) *http.Client {
	if options.Timeout <= 0 {
		options.Timeout = 30 * time.Second
	}

	var rt http.RoundTripper = newTransport()
	if options.RateLimit > 0 {
		burst := options.RateBurst
		if burst < 1 {
			burst = 1
		}
		rt = &limitedTransport{
			next:    rt,
			limiter: rate.NewLimiter(rate.Limit(options.RateLimit), burst),
		}
	}

	return &http.Client{
		Timeout:   options.Timeout,
		Transport: &userAgentTransport{next: rt},
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 16
	t.IdleConnTimeout = 90 * time.Second
	t.ResponseHeaderTimeout = 20 * time.Second
	t.ExpectContinueTimeout = time.Second

	h2, err := http2.ConfigureTransports(t)
	if err != nil {
		log.Warnf("http2 unavailable, using http/1.1: %v", err)
		return t
	}
	h2.ReadIdleTimeout = 30 * time.Second
	h2.PingTimeout = 10 * time.Second
	return t
}

// limitedTransport waits on a token bucket before every request.
type limitedTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

func (l *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := l.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return l.next.RoundTrip(req)
}

type userAgentTransport struct {
	next http.RoundTripper
}

func (u *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", constant.UserAgent)
	return u.next.RoundTrip(req)
}
