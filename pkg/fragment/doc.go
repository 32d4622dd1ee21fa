// Package fragment defines the contracts for loading markup fragments: where
// a fragment lives (Source), how it is fetched (Loader, LoaderOptions) and how
// a missing fragment is told apart from a failed fetch (StatusError,
// ErrUnavailable).
package fragment
