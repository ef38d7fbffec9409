// Package pipeline processes pages through a sequence of steps.
//
// A Pipeline runs its steps in order over a single Page: deriving implicit
// advices, rendering the tags and storing the info in the catalog. A
// BatchProcessor runs one pipeline per page concurrently with errgroup,
// bounded by a concurrency limit, and returns the pages in input order.
package pipeline
