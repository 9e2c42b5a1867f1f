// Package cache the shortened URL cache.
package cache

// Options the cache store options.
type Options struct {
	// Path the directory holding the cache file
	Path string `yaml:"path"`
}

// Store maps an original URL to its shortened form.
// Entries are never evicted, a Put for an existing URL overwrites it.
type Store interface {
	// Get returns the shortened URL stored for url and true,
	// or false on a cache miss.
	Get(url string) (string, bool)
	// Put stores or replaces the shortened URL for url.
	Put(url, shortened string) error
	// Close releases the underlying file.
	Close() error
}

// NopStore is a Store that stores nothing. It is used when the cache
// file cannot be opened, every lookup misses and the client degrades
// to network-only operation.
type NopStore struct{}

// Get always returns a cache miss.
func (NopStore) Get(string) (string, bool) { return "", false }

// Put discards the entry.
func (NopStore) Put(string, string) error { return nil }

// Close does nothing.
func (NopStore) Close() error { return nil }
