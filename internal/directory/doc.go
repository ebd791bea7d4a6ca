// Package directory talks to the public server directory.
//
// It offers three reads: a single-server lookup by join code (FetchOne), a
// free-text search (SearchMany) and the full listing (ListAll). Every upstream
// payload is normalized into server.Snapshot values with documented defaults
// for absent fields, so callers never see partial data.
//
// Failures are reported as structured errors with one of the fetch codes from
// internal/errors: NOT_FOUND, RATE_LIMITED, TIMEOUT, NO_RESULTS or NETWORK.
// Outbound requests share a token-bucket limiter so a watch session and an
// interactive search cannot flood the directory together.
package directory
