// Package cache implements the read-through layer on top of a pluggable
// backing store. A miss invokes the configured Loader, stores the result, and
// returns it; a hit never touches the loader. Entries are never invalidated
// here: per key the lifecycle goes from empty to populated, and back to empty
// only after Clear/FlushAll. Concurrent misses on one key are collapsed with
// singleflight so the loader runs at most once per key at a time. The cache is
// a plain value wired in by the caller; there is no package-level instance.
package cache
