// Package store defines the backing-store abstraction for cached entries and
// its two implementations: an in-process map whose lifetime is the process
// lifetime, and a Redis-backed store that survives restarts and namespaces
// every key under a fixed prefix so it can share an instance with unrelated
// data. Both honor the same contract, so the read-through layer on top never
// needs to know where state lives. Store errors are surfaced unchanged; there
// is no retry and no fallback from one backend to the other once selected.
package store
