package httpclient

import (
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// CachedResponse is one entry stored by ResponseCache: a captured HTTP
// response body plus the metadata a WebScraper node needs to replay it
// without re-issuing the request.
type CachedResponse struct {
	StatusCode int
	Body       []byte
	Header     map[string][]string
	Expiration time.Time
}

// ResponseCache is a TTL-based, in-memory cache of HTTP responses keyed by
// normalized URL. It exists so a fan-out workflow layer that scrapes the
// same URL from two branches in the same run doesn't double the HTTP call
// budget. Entries expire on read; there is no background sweeper.
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[string]CachedResponse
}

// NewResponseCache creates an empty ResponseCache.
func NewResponseCache() *ResponseCache {
	return &ResponseCache{entries: make(map[string]CachedResponse)}
}

// Get returns the cached response for rawURL, if present and unexpired.
func (c *ResponseCache) Get(rawURL string) (CachedResponse, bool) {
	key := NormalizeURL(rawURL)
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return CachedResponse{}, false
	}
	if time.Now().After(entry.Expiration) {
		return CachedResponse{}, false
	}
	return entry, true
}

// Set stores resp under rawURL's normalized key with the given TTL.
func (c *ResponseCache) Set(rawURL string, resp CachedResponse, ttl time.Duration) {
	resp.Expiration = time.Now().Add(ttl)
	key := NormalizeURL(rawURL)
	c.mu.Lock()
	c.entries[key] = resp
	c.mu.Unlock()
}

// Purge removes every expired entry. Callers may run this periodically;
// nothing in this package schedules it automatically.
func (c *ResponseCache) Purge() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if now.After(entry.Expiration) {
			delete(c.entries, key)
		}
	}
}

// NormalizeURL canonicalizes rawURL so equivalent requests (differing only
// in query-parameter order, default ports, or host case) share one cache
// entry. Malformed URLs are returned unchanged.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Host = strings.ToLower(u.Host)
	u.Scheme = strings.ToLower(u.Scheme)
	if (u.Scheme == "http" && u.Port() == "80") || (u.Scheme == "https" && u.Port() == "443") {
		u.Host = strings.TrimSuffix(u.Host, ":"+u.Port())
	}
	if u.Path == "" {
		u.Path = "/"
	}
	if q := u.Query(); len(q) > 0 {
		keys := make([]string, 0, len(q))
		for k := range q {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		normalized := url.Values{}
		for _, k := range keys {
			vals := q[k]
			sort.Strings(vals)
			for _, v := range vals {
				normalized.Add(k, v)
			}
		}
		u.RawQuery = normalized.Encode()
	}
	u.Fragment = ""
	return u.String()
}
