// Package store persists the user's recent searches and favorites.
//
// A Store is a small key-value surface; FileStore keeps each key as a JSON
// file under the XDG state directory and replaces it atomically on write.
// List[T] layers an ordered JSON array on one key. Recent and Favorites are
// the two bounded lists built on it:
//
//	Recent     unique codes, newest first, capacity 5
//	Favorites  snapshots unique by ID, newest first, capacity 10, tail evicted
//
// Persistence failures never reach the user. Unreadable or corrupt content
// loads as an empty list, and failed writes are logged while the in-memory
// list keeps working.
package store
