package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/log"
	"github.com/marquee-cli/marquee/network"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Client issues exactly one TMDB request per call. It keeps no state besides its settings.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	http         *http.Client
}

// Option configures a Client in NewClient.
type Option func(*Client)

// WithBaseURL points the client at another API root, such as a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithImageBaseURL(u string) Option {
	return func(c *Client) { c.imageBaseURL = strings.TrimRight(u, "/") }
}

// WithLanguage sets the language parameter sent with every request.
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient returns a client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:       apiKey,
		baseURL:      constant.TMDBBaseURL,
		imageBaseURL: constant.TMDBImageBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = network.Client()
	}
	return c, nil
}

// Image builds a full image URL for path using the configured image base.
func (c *Client) Image(size ImageSize, path string) string {
	return ImageURL(c.imageBaseURL, size, path).OrEmpty()
}

type statusMessage struct {
	StatusMessage string `json:"status_message"`
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}

	requestID := uuid.NewString()
	logger := log.WithFields(logrus.Fields{
		"op":         op,
		"path":       path,
		"page":       params.Get("page"),
		"request_id": requestID,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return &RemoteFetchError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	logger.Debug("sending request to TMDB")
	resp, err := c.http.Do(req)
	if err != nil {
		logger.WithError(err).Warn("request failed")
		return &RemoteFetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg statusMessage
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		if msg.StatusMessage == "" {
			msg.StatusMessage = strings.ToLower(http.StatusText(resp.StatusCode))
		}
		logger.WithField("status", resp.StatusCode).Warn(msg.StatusMessage)
		return &RemoteFetchError{Op: op, Status: resp.StatusCode, Err: errors.New(msg.StatusMessage)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.WithError(err).Warn("could not decode response")
		return &RemoteFetchError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}

	logger.Debug("got response from TMDB")
	return nil
}

// notFound converts a 404 from an id lookup into a NotFoundError.
func notFound(err error, kind Kind, id int) error {
	var remote *RemoteFetchError
	if errors.As(err, &remote) && remote.Status == http.StatusNotFound {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return err
}

// fetchPage rejects a payload that is not the page it asked for, "{}" included.
func fetchPage[T MediaItem](ctx context.Context, c *Client, op, path string, params url.Values, page int) (*Page[MediaItem], error) {
	var raw Page[T]
	if err := c.get(ctx, op, path, params, &raw); err != nil {
		return nil, err
	}
	if raw.Page != page {
		return nil, &RemoteFetchError{Op: op, Status: http.StatusOK, Err: fmt.Errorf("decode: got page %d, want %d", raw.Page, page)}
	}

	results := lo.FilterMap(raw.Results, func(item T, _ int) (MediaItem, bool) {
		if lo.IsNil(item) || item.ItemID() == 0 {
			return nil, false
		}
		return item, true
	})

	return &Page[MediaItem]{
		Page:         raw.Page,
		Results:      results,
		TotalPages:   raw.TotalPages,
		TotalResults: raw.TotalResults,
	}, nil
}

// FetchPage fetches one page of a listing. Invalid arguments fail before any request.
func (c *Client) FetchPage(ctx context.Context, resource Resource, page int, filters Filters) (*Page[MediaItem], error) {
	path, params, err := resource.request(page, filters)
	if err != nil {
		return nil, err
	}

	op := string(resource) + " page " + strconv.Itoa(page)
	if resource.Kind() == Series {
		return fetchPage[*TVShow](ctx, c, op, path, params, page)
	}
	return fetchPage[*Movie](ctx, c, op, path, params, page)
}

// FetchDetails fetches one movie or series with its credits.
func (c *Client) FetchDetails(ctx context.Context, kind Kind, id int) (MediaItem, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	params := url.Values{}
	params.Set("append_to_response", "credits")
	path := fmt.Sprintf("/%s/%d", kind, id)
	op := fmt.Sprintf("%s %d details", kind.Noun(), id)

	var item MediaItem
	switch kind {
	case Movies:
		item = &Movie{}
	case Series:
		item = &TVShow{}
	default:
		return nil, fmt.Errorf("unknown media kind %q", kind)
	}

	if err := c.get(ctx, op, path, params, item); err != nil {
		return nil, notFound(err, kind, id)
	}
	return item, nil
}

type videosResponse struct {
	Results []Video `json:"results"`
}

// FetchVideos lists the videos of a movie or series in provider order.
func (c *Client) FetchVideos(ctx context.Context, kind Kind, id int) ([]Video, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	var resp videosResponse
	path := fmt.Sprintf("/%s/%d/videos", kind, id)
	if err := c.get(ctx, fmt.Sprintf("%s %d videos", kind.Noun(), id), path, nil, &resp); err != nil {
		return nil, notFound(err, kind, id)
	}
	return resp.Results, nil
}

// FetchPersonImage fetches the profile images of a person.
func (c *Client) FetchPersonImage(ctx context.Context, personID int) (PersonImage, error) {
	if personID <= 0 {
		return PersonImage{}, ErrInvalidID
	}

	var img PersonImage
	path := fmt.Sprintf("/person/%d/images", personID)
	if err := c.get(ctx, fmt.Sprintf("person %d images", personID), path, nil, &img); err != nil {
		return PersonImage{}, err
	}
	return img, nil
}

type genresResponse struct {
	Genres []Genre `json:"genres"`
}

// FetchGenres lists the genres TMDB knows for kind.
func (c *Client) FetchGenres(ctx context.Context, kind Kind) ([]Genre, error) {
	var resp genresResponse
	if err := c.get(ctx, kind.Noun()+" genres", fmt.Sprintf("/genre/%s/list", kind), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// FeaturedResource is the listing whose first item is featured for kind.
func FeaturedResource(kind Kind) Resource {
	if kind == Series {
		return PopularTV
	}
	return NowPlaying
}

// FetchFeatured returns the first item of the featured listing.
func (c *Client) FetchFeatured(ctx context.Context, kind Kind) (MediaItem, error) {
	page, err := c.FetchPage(ctx, FeaturedResource(kind), 1, Filters{})
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, &NotFoundError{Kind: kind}
	}
	return page.Results[0], nil
}
