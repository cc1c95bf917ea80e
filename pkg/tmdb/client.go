// package tmdb is a client for the TMDB HTTP API used as the catalog
// source: discovery, search, details, credits, reviews, similar titles and
// genre lists.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a Client authenticating with the given API read access token.
// The base URL and HTTP client default to the production API and
// [http.DefaultClient].
func New(baseURL, token string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
		// TMDB allows ~50 req/s per IP; stay well under it
		limiter: rate.NewLimiter(rate.Limit(20), 20),
	}
}

// mediaPath maps a media kind to its API path segment.
func mediaPath(kind string) (string, error) {
	switch kind {
	case "movie", "tv":
		return kind, nil
	default:
		return "", fmt.Errorf("unsupported media kind %q", kind)
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("tmdb %s returned status %d: %s", path, resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// Discover lists titles of the given kind filtered by the query parameters
// (with_genres, sort_by, page, ...).
func (c *Client) Discover(ctx context.Context, kind string, query url.Values) (*Page, error) {
	path, err := mediaPath(kind)
	if err != nil {
		return nil, err
	}

	var page Page
	if err := c.get(ctx, "/discover/"+path, query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Search(ctx context.Context, kind, query string, pageNum int) (*Page, error) {
	path, err := mediaPath(kind)
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("query", query)
	values.Set("include_adult", "false")
	if pageNum > 0 {
		values.Set("page", strconv.Itoa(pageNum))
	}

	var page Page
	if err := c.get(ctx, "/search/"+path, values, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Details(ctx context.Context, kind, id string) (*TitleDetails, error) {
	path, err := mediaPath(kind)
	if err != nil {
		return nil, err
	}

	var details TitleDetails
	if err := c.get(ctx, "/"+path+"/"+id, nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *Client) Credits(ctx context.Context, kind, id string) (*Credits, error) {
	path, err := mediaPath(kind)
	if err != nil {
		return nil, err
	}

	var credits Credits
	if err := c.get(ctx, "/"+path+"/"+id+"/credits", nil, &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}

func (c *Client) Reviews(ctx context.Context, kind, id string, pageNum int) (*ReviewPage, error) {
	path, err := mediaPath(kind)
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	if pageNum > 0 {
		values.Set("page", strconv.Itoa(pageNum))
	}

	var page ReviewPage
	if err := c.get(ctx, "/"+path+"/"+id+"/reviews", values, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Similar(ctx context.Context, kind, id string, pageNum int) (*Page, error) {
	path, err := mediaPath(kind)
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	if pageNum > 0 {
		values.Set("page", strconv.Itoa(pageNum))
	}

	var page Page
	if err := c.get(ctx, "/"+path+"/"+id+"/similar", values, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Genres(ctx context.Context, kind string) ([]Genre, error) {
	path, err := mediaPath(kind)
	if err != nil {
		return nil, err
	}

	var list genreList
	if err := c.get(ctx, "/genre/"+path+"/list", nil, &list); err != nil {
		return nil, err
	}
	return list.Genres, nil
}
