// Package main provides the entry point for the robotsmeta CLI.
//
// robotsmeta renders the head tags that tell web crawlers how to treat a
// page: the canonical link, robots advices, alternate links, description,
// keywords and disabled Google features.
//
// Usage:
//
//	robotsmeta render /about
//	robotsmeta render --advice noindex --canonical https://example.com/
//	robotsmeta serve --addr :8080
//
// See --help for all available options.
package main

// main is the entry point for robotsmeta.
func main() {
	Execute()
}
