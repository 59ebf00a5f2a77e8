// Package store implements the in-memory item collection backing the
// mock API. It is the only mutable domain state in the process: a
// thread-safe keyed store with monotonic integer ID assignment, full and
// partial updates, and validation that runs before any mutation.
package store
