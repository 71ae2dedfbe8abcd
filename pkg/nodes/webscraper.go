package nodes

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/yesoreyeram/agentweave/pkg/httpclient"
	"github.com/yesoreyeram/agentweave/pkg/textnorm"
	"github.com/yesoreyeram/agentweave/pkg/types"
	"github.com/yesoreyeram/agentweave/pkg/workflow"
)

// fetchTimeout and maxResponseBytes are the SSRF-guard defaults applied
// when a WebScraper node's configured named client (httpclient.Registry)
// doesn't itself carry tighter settings.
const (
	fetchTimeout     = 30 * time.Second
	maxResponseBytes = 5 * 1024 * 1024

	responseCacheTTL = 5 * time.Minute

	// maxExtractedTextRunes bounds the plain-text extraction mode so a
	// single scrape can't blow out a downstream LLM prompt's context
	// budget; the extracted text is also NFC-normalized so later
	// string comparisons against it are stable.
	maxExtractedTextRunes = 20000
)

// webScraperNode fetches a URL through a named, SSRF-protected HTTP client
// and extracts content per its configured mode.
type webScraperNode struct {
	baseNode
	deps *Deps
	in   types.SocketID
}

func newWebScraperNode(deps *Deps) workflow.Factory {
	return func(declared types.Node) (workflow.Node, error) {
		in, err := soleInputSocket(declared)
		if err != nil {
			// WebScraper may also take its URL purely from config, with no
			// wired input socket.
			in = SocketURL
		}
		return &webScraperNode{baseNode: baseNode{declared: declared}, deps: deps, in: in}, nil
	}
}

// Process fetches n's target URL and returns the extracted content as its
// primary output, or an "Error: ..." string on failure.
func (n *webScraperNode) Process(ctx context.Context, in workflow.Inputs) (workflow.Outputs, error) {
	target, ok := firstString(in, n.in)
	if !ok || target == "" {
		target = n.configString("url", "")
	}
	if target == "" {
		return nil, types.ErrMissingRequiredField("url")
	}

	mode := n.configString("mode", "text")
	clientName := n.configString("httpClient", "default")

	body, fetchErr := n.fetch(ctx, target, clientName)
	if fetchErr != nil {
		return fmt.Sprintf("Error: %v", fetchErr), nil
	}

	switch mode {
	case "html":
		return body, nil
	case "links":
		return extractLinks(body), nil
	case "text":
		return textnorm.Truncate(stripHTML(body), maxExtractedTextRunes), nil
	default:
		return fmt.Sprintf("Error: unsupported mode %q (use text, html or links)", mode), nil
	}
}

func (n *webScraperNode) fetch(ctx context.Context, target, clientName string) (string, error) {
	if n.deps.ResponseCache != nil {
		if cached, ok := n.deps.ResponseCache.Get(target); ok {
			return string(cached.Body), nil
		}
	}

	var (
		httpClient *http.Client
		maxBytes   int64 = maxResponseBytes
	)
	if n.deps.HTTPClients != nil {
		if c, size, err := n.deps.HTTPClients.GetHTTPClient(clientName); err == nil {
			httpClient = c
			if size > 0 && size < maxBytes {
				maxBytes = size
			}
		}
	}
	if httpClient == nil {
		return "", fmt.Errorf("web-scraper: no registered http client named %q", clientName)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("web-scraper: building request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("web-scraper: fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("web-scraper: %s returned status %d", target, resp.StatusCode)
	}

	// Read one byte past the cap so an oversized body is detected rather
	// than silently truncated.
	limited := io.LimitReader(resp.Body, maxBytes+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return "", fmt.Errorf("web-scraper: reading response body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("web-scraper: %s response exceeds %d byte limit", target, maxBytes)
	}

	if n.deps.ResponseCache != nil {
		ttl := responseCacheTTL
		if n.deps.Config != nil && n.deps.Config.DefaultCacheTTL > 0 {
			ttl = n.deps.Config.DefaultCacheTTL
		}
		n.deps.ResponseCache.Set(target, httpclient.CachedResponse{
			StatusCode: resp.StatusCode,
			Body:       data,
		}, ttl)
	}

	return string(data), nil
}

var (
	tagPattern   = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	anyTagRegexp = regexp.MustCompile(`(?s)<[^>]+>`)
	anchorRegexp = regexp.MustCompile(`(?is)<a\s[^>]*href\s*=\s*["']([^"']+)["'][^>]*>`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// stripHTML removes script/style blocks and tags, unescapes entities and
// collapses whitespace, giving a best-effort plain-text extraction.
func stripHTML(body string) string {
	stripped := tagPattern.ReplaceAllString(body, "")
	stripped = anyTagRegexp.ReplaceAllString(stripped, " ")
	stripped = html.UnescapeString(stripped)
	stripped = whitespaceRE.ReplaceAllString(stripped, " ")
	return strings.TrimSpace(stripped)
}

// extractLinks returns the newline-joined list of href targets found in
// body's anchor tags.
func extractLinks(body string) string {
	matches := anchorRegexp.FindAllStringSubmatch(body, -1)
	links := make([]string, 0, len(matches))
	for _, m := range matches {
		links = append(links, html.UnescapeString(m[1]))
	}
	return strings.Join(links, "\n")
}
