package config

import (
	"time"
)

// Config centralizes the runtime's execution limits, network policy and LLM
// defaults. Construct via one of the presets and adjust fields as needed;
// the struct is copied freely, so presets never share state.
type Config struct {
	// MaxExecutionTime bounds one whole workspace execution. The host
	// process applies it as a context deadline around Execute.
	MaxExecutionTime time.Duration

	// Defaults for HTTP clients built without explicit settings, including
	// the WebScraper node's "default" client.
	HTTPTimeout      time.Duration
	MaxHTTPRedirects int
	MaxResponseSize  int64

	// Zero-trust network access control: all internal address ranges are
	// denied unless explicitly allowed.
	AllowHTTP          bool     // permit plain http:// targets (https-only otherwise)
	AllowedDomains     []string // allowlist of hostnames (empty = any public host)
	AllowPrivateIPs    bool
	AllowLocalhost     bool
	AllowLinkLocal     bool
	AllowCloudMetadata bool

	// DefaultCacheTTL is how long a WebScraper response stays replayable
	// from the per-execution response cache.
	DefaultCacheTTL time.Duration

	// LLM defaults and loop bounds.
	DefaultLLMProvider   string // fallback vendor when a task/agent names none or an unknown one
	DefaultLLMModel      string
	DefaultMaxIterations int           // agent refine-loop bound (default 5)
	MaxToolIterations    int           // tool-call loop bound (default 10)
	ToolCallTimeout      time.Duration // per tool-call bound (default 30s)

	// HTTPClients lists named, pre-configured HTTP clients (auth headers,
	// timeouts, SSRF overrides) the WebScraper node may resolve by name
	// instead of building an ad hoc client per request.
	HTTPClients []HTTPClientConfig
}

// HTTPClientConfig declares one named HTTP client entry, convertible to
// httpclient.ClientConfig via httpclient.FromConfigHTTPClient.
type HTTPClientConfig struct {
	Name                string
	Description         string
	AuthType            string
	Username            string
	Password            string
	Token               string
	Timeout             time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int
	IdleConnTimeout     time.Duration
	TLSHandshakeTimeout time.Duration
	DisableKeepAlives   bool
	MaxRedirects        int
	MaxResponseSize     int64
	FollowRedirects     bool
	DefaultHeaders      map[string]string
	DefaultQueryParams  map[string]string
	BaseURL             string
}

// Default returns a Config with secure, production-ready values: network
// access denied by default, conservative limits.
func Default() *Config {
	return &Config{
		MaxExecutionTime: 5 * time.Minute,

		HTTPTimeout:      30 * time.Second,
		MaxHTTPRedirects: 10,
		MaxResponseSize:  5 * 1024 * 1024,

		AllowHTTP:          false,
		AllowedDomains:     nil,
		AllowPrivateIPs:    false,
		AllowLocalhost:     false,
		AllowLinkLocal:     false,
		AllowCloudMetadata: false,

		DefaultCacheTTL: 5 * time.Minute,

		DefaultLLMProvider:   "openai",
		DefaultLLMModel:      "gpt-4o-mini",
		DefaultMaxIterations: 5,
		MaxToolIterations:    10,
		ToolCallTimeout:      30 * time.Second,
	}
}

// Development relaxes the network policy for local workflows and test
// servers. Cloud metadata stays blocked.
func Development() *Config {
	cfg := Default()
	cfg.AllowHTTP = true
	cfg.AllowPrivateIPs = true
	cfg.AllowLocalhost = true
	cfg.MaxExecutionTime = 10 * time.Minute
	return cfg
}

// Production is Default under an explicit name, for callers that want the
// intent visible at the call site.
func Production() *Config {
	return Default()
}

// Testing opens localhost so httptest servers are reachable and shortens
// the timeouts so a hung dependency fails the test quickly.
func Testing() *Config {
	cfg := Development()
	cfg.MaxExecutionTime = 1 * time.Minute
	cfg.HTTPTimeout = 5 * time.Second
	return cfg
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.MaxExecutionTime < 0 {
		return ErrInvalidExecutionTime
	}
	if c.HTTPTimeout < 0 {
		return ErrInvalidHTTPTimeout
	}
	if c.MaxHTTPRedirects < 0 {
		return ErrInvalidMaxRedirects
	}
	if c.MaxResponseSize < 0 {
		return ErrInvalidMaxResponseSize
	}
	if c.DefaultCacheTTL < 0 {
		return ErrInvalidCacheTTL
	}
	if c.DefaultMaxIterations < 0 || c.MaxToolIterations < 0 {
		return ErrInvalidMaxIterations
	}
	if c.ToolCallTimeout < 0 {
		return ErrInvalidToolTimeout
	}
	return nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.AllowedDomains != nil {
		clone.AllowedDomains = make([]string, len(c.AllowedDomains))
		copy(clone.AllowedDomains, c.AllowedDomains)
	}
	if c.HTTPClients != nil {
		clone.HTTPClients = make([]HTTPClientConfig, len(c.HTTPClients))
		copy(clone.HTTPClients, c.HTTPClients)
	}
	return &clone
}
