// Package log builds the slog loggers used by robotsmeta.
//
// Every logger returned here wraps a RedactingHandler. Canonical and
// alternate URLs often come straight from production pages and may carry
// session ids or signed tokens in their query string, so the handler masks:
//   - attributes whose key names a secret (token, password, session, ...)
//   - values that look like credentials (JWTs, bearer and basic auth)
//   - sensitive query parameters inside URL-valued strings
//
// Usage:
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("rendered page", "path", "/", "canonical", canonical)
package log
