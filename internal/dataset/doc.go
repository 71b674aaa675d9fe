// Package dataset loads the world population CSV into an immutable snapshot.
//
// The dataset is fetched once per process from a fixed URL and parsed into
// typed [Record] values. Everything downstream works from a [*Snapshot],
// which is never mutated after [Parse] returns it, so it can be handed to
// any number of concurrent readers without locking.
//
// # Loading
//
// [Loader] performs a single HTTP GET with no retry. The body is streamed
// through a BOM-skipping, size-limited reader and parsed with encoding/csv:
//
//	loader := dataset.NewLoader(dataset.LoaderConfig{URL: dataset.DefaultURL})
//	snap, err := loader.Load(ctx)
//
// [Source] wraps a loader so that the first caller triggers the fetch and
// every later caller receives the same snapshot (or the same error).
//
// # Errors
//
// Transport failures and non-2xx responses are reported as [*FetchError]
// (matching [ErrFetch]). Structural problems with the CSV are reported as
// [*ParseError] (matching [ErrParse]). Both are fatal: no partial snapshot
// is ever returned.
package dataset
