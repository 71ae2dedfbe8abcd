// Package httpclient builds named, reusable HTTP clients for nodes that
// make outbound requests (WebScraper, vendor media endpoints).
//
// A Registry holds ClientConfig entries (auth type, timeouts, connection
// pool sizing, default headers/query params) keyed by name; the WebScraper
// node's optional httpClient configuration parameter resolves one of
// these instead of building an ad hoc client per request. Every built
// Client still goes through the security package's SSRF guard before a
// request is dispatched. ResponseCache memoizes WebScraper fetches per
// workflow execution so a fan-out layer scraping the same URL from two
// branches only pays for one HTTP call.
package httpclient
