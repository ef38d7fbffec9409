// Package report writes rendered pages in the output formats of the CLI.
//
//   - HTMLWriter: the bare tags, ready to paste into a <head>
//   - JSONWriter: an array of {path, info, tags} objects for tooling
//   - MarkdownWriter: a summary with a page table and the tags per page
//
// All writers implement Writer, so the CLI picks one with NewWriter and
// hands it the results.
package report
