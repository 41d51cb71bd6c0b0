package ratelimit

import "strings"

// MatchEndpoint returns the config for path and method, or nil. Exact paths
// win over prefixes; among prefixes the longest wins.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if !strings.EqualFold(c.Method, method) {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			if best == nil || len(c.Path) > len(best.Path) {
				best = c
			}
		}
	}
	return best
}

// bucketRoute collapses prefix-matched paths so /roadmaps/a and /roadmaps/b
// draw from one bucket.
func bucketRoute(path string, matched *EndpointConfig) string {
	if matched != nil && strings.HasSuffix(matched.Path, "/") {
		return matched.Path
	}
	return path
}
