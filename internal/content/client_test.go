package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentStub(t *testing.T, hits *int64, result string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		assert.Equal(t, "/data/query/production", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":` + result + `,"ms":3}`))
	}))
}

func TestPortfolioItems(t *testing.T) {
	var hits int64
	server := newContentStub(t, &hits, `[
		{"_id":"p1","title":"Shop Rebuild","slug":"shop-rebuild","client":"Acme Bakery","tags":["web"],"featured":true},
		{"_id":"p2","title":"Brand Site","slug":"brand-site","client":"Tide Co"}
	]`)
	defer server.Close()

	client := NewClientWithBaseURL(server.URL, "production", time.Minute)

	items, err := client.PortfolioItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Shop Rebuild", items[0].Title)
	assert.Equal(t, "shop-rebuild", items[0].Slug)
	assert.True(t, items[0].Featured)
	assert.Equal(t, "Tide Co", items[1].Client)
}

func TestPortfolioItemNotFound(t *testing.T) {
	var hits int64
	// Sanity returns a null result for [0] on an empty match set
	server := newContentStub(t, &hits, `null`)
	defer server.Close()

	client := NewClientWithBaseURL(server.URL, "production", time.Minute)

	item, err := client.PortfolioItem(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestQueryCachesWithinTTL(t *testing.T) {
	var hits int64
	server := newContentStub(t, &hits, `[{"_id":"s1","title":"SEO","order":1}]`)
	defer server.Close()

	client := NewClientWithBaseURL(server.URL, "production", time.Minute)

	for i := 0; i < 3; i++ {
		services, err := client.Services(context.Background())
		require.NoError(t, err)
		require.Len(t, services, 1)
		assert.Equal(t, "SEO", services[0].Title)
	}
	assert.EqualValues(t, 1, atomic.LoadInt64(&hits), "repeat queries within the TTL must be served from cache")
}

func TestQueryCacheExpires(t *testing.T) {
	var hits int64
	server := newContentStub(t, &hits, `[]`)
	defer server.Close()

	client := NewClientWithBaseURL(server.URL, "production", 10*time.Millisecond)

	_, err := client.BlogPosts(context.Background())
	require.NoError(t, err)
	time.Sleep(25 * time.Millisecond)
	_, err = client.BlogPosts(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt64(&hits))
}

func TestQuerySlugParamEncoding(t *testing.T) {
	var gotQuery, gotSlug string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotSlug = r.URL.Query().Get("$slug")
		_, _ = w.Write([]byte(`{"result":{"_id":"b1","title":"Hello","slug":"hello-coast"}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL, "production", time.Minute)

	post, err := client.BlogPost(context.Background(), "hello-coast")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "Hello", post.Title)

	assert.Contains(t, gotQuery, `_type == "blogPost"`)
	assert.Equal(t, `"hello-coast"`, gotSlug, "GROQ params must be JSON-encoded")
}

func TestQueryUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"query timed out"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL, "production", time.Minute)

	_, err := client.PortfolioItems(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestBlogPostContentPassthrough(t *testing.T) {
	blocks := `[{"_type":"block","children":[{"text":"hi"}]}]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"_id":"b1","title":"Post","content":` + blocks + `}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL, "production", time.Minute)

	post, err := client.BlogPost(context.Background(), "post")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.JSONEq(t, blocks, string(post.Content))
	assert.True(t, json.Valid(post.Content))
}
