// Package content is a read-only client for the headless content store
// (Sanity). The site's portfolio, blog and services pages are driven by it;
// no write path exists.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"contact-service/internal/config"
)

// PortfolioItem is one case study record
type PortfolioItem struct {
	ID            string          `json:"_id"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Client        string          `json:"client"`
	Description   string          `json:"description"`
	ProjectURL    string          `json:"projectUrl"`
	CompletedDate string          `json:"completedDate"`
	Images        json.RawMessage `json:"images"`
	Tags          []string        `json:"tags"`
	Featured      bool            `json:"featured"`
}

// BlogPost is one blog post record
type BlogPost struct {
	ID            string          `json:"_id"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Author        string          `json:"author"`
	PublishedDate string          `json:"publishedDate"`
	Excerpt       string          `json:"excerpt"`
	FeaturedImage json.RawMessage `json:"featuredImage"`
	Content       json.RawMessage `json:"content"`
	Category      string          `json:"category"`
	Tags          []string        `json:"tags"`
}

// Service is one offered-service record
type Service struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
}

// queryResponse wraps every Sanity query result
type queryResponse struct {
	Result json.RawMessage `json:"result"`
	MS     float64         `json:"ms"`
}

type cacheEntry struct {
	raw      json.RawMessage
	cachedAt time.Time
}

// Client queries the Sanity data API with a small TTL cache
type Client struct {
	baseURL    string
	dataset    string
	cacheTTL   time.Duration
	cache      map[string]*cacheEntry
	mu         sync.RWMutex
	httpClient *http.Client
}

// NewClient creates a content client from configuration
func NewClient(cfg *config.ContentConfig) *Client {
	host := "api.sanity.io"
	if cfg.SanityUseCDN {
		host = "apicdn.sanity.io"
	}
	baseURL := fmt.Sprintf("https://%s.%s/v%s", cfg.SanityProjectID, host, cfg.SanityAPIVersion)
	return newClient(baseURL, cfg.SanityDataset, cfg.CacheTTL)
}

// NewClientWithBaseURL creates a content client against an explicit endpoint
// (used by tests and local emulators)
func NewClientWithBaseURL(baseURL, dataset string, cacheTTL time.Duration) *Client {
	return newClient(baseURL, dataset, cacheTTL)
}

func newClient(baseURL, dataset string, cacheTTL time.Duration) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		baseURL:  baseURL,
		dataset:  dataset,
		cacheTTL: cacheTTL,
		cache:    make(map[string]*cacheEntry),
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

// query runs a GROQ query against the data API, serving from cache when the
// entry is still fresh
func (c *Client) query(ctx context.Context, groq string, params map[string]string, out interface{}) error {
	cacheKey := groq
	for k, v := range params {
		cacheKey += "|" + k + "=" + v
	}

	c.mu.RLock()
	if entry, ok := c.cache[cacheKey]; ok && time.Since(entry.cachedAt) < c.cacheTTL {
		raw := entry.raw
		c.mu.RUnlock()
		return json.Unmarshal(raw, out)
	}
	c.mu.RUnlock()

	values := url.Values{}
	values.Set("query", groq)
	for k, v := range params {
		// Sanity expects GROQ params as $name with JSON-encoded values
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode param %s: %w", k, err)
		}
		values.Set("$"+k, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/data/query/%s?%s", c.baseURL, c.dataset, values.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("content store request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("content store returned %d: %s", resp.StatusCode, string(body))
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	c.mu.Lock()
	c.cache[cacheKey] = &cacheEntry{raw: qr.Result, cachedAt: time.Now()}
	c.mu.Unlock()

	return json.Unmarshal(qr.Result, out)
}

// PortfolioItems fetches all portfolio items, newest first
func (c *Client) PortfolioItems(ctx context.Context) ([]PortfolioItem, error) {
	groq := `*[_type == "portfolioItem"] | order(completedDate desc) {
  _id, title, "slug": slug.current, client, description,
  projectUrl, completedDate, images, tags, featured
}`
	var items []PortfolioItem
	if err := c.query(ctx, groq, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// PortfolioItem fetches a single portfolio item by slug; returns nil when
// no item matches
func (c *Client) PortfolioItem(ctx context.Context, slug string) (*PortfolioItem, error) {
	groq := `*[_type == "portfolioItem" && slug.current == $slug][0] {
  _id, title, "slug": slug.current, client, description,
  projectUrl, completedDate, images, tags, featured
}`
	var item *PortfolioItem
	if err := c.query(ctx, groq, map[string]string{"slug": slug}, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// BlogPosts fetches all blog posts, newest first
func (c *Client) BlogPosts(ctx context.Context) ([]BlogPost, error) {
	groq := `*[_type == "blogPost"] | order(publishedDate desc) {
  _id, title, "slug": slug.current, author, publishedDate,
  excerpt, featuredImage, category, tags
}`
	var posts []BlogPost
	if err := c.query(ctx, groq, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// BlogPost fetches a single blog post by slug; returns nil when no post
// matches
func (c *Client) BlogPost(ctx context.Context, slug string) (*BlogPost, error) {
	groq := `*[_type == "blogPost" && slug.current == $slug][0] {
  _id, title, "slug": slug.current, author, publishedDate,
  excerpt, featuredImage, content, category, tags
}`
	var post *BlogPost
	if err := c.query(ctx, groq, map[string]string{"slug": slug}, &post); err != nil {
		return nil, err
	}
	return post, nil
}

// Services fetches the offered services in display order
func (c *Client) Services(ctx context.Context) ([]Service, error) {
	groq := `*[_type == "service"] | order(order asc) {
  _id, title, description, icon, order
}`
	var services []Service
	if err := c.query(ctx, groq, nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}
