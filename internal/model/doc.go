// Package model defines the value types that describe what a page tells web
// crawlers through its HTML head.
//
// This package contains the following main types:
//   - Advice: a single robots directive such as "noindex"
//   - Alternate: a <link rel="alternate"> target
//   - GoogleFeature: a Google-specific capability that can be disabled
//   - WebCrawlerInfo: the immutable aggregate that is rendered into tags
//
// Every type here is a value type. WebCrawlerInfo is never modified after
// construction; each With* method returns a new value and leaves the receiver
// untouched, so values can be shared between goroutines without locking.
//
// Lists exposed by WebCrawlerInfo are returned as List values, which have no
// mutating methods. Callers that need a slice get a fresh copy from
// List.Slice.
//
// The package also contains the implicit advice resolver (ImplicitAdvicesAnd),
// which derives the directives a crawler assumes when nothing cancels them.
package model
