package cache

// EvictCallback is called when an entry is evicted from the cache.
// Not all providers support eviction callbacks (Redis relies on key expiry).
type EvictCallback func(key string, value []byte)

// Logger receives error reports from cache backends that cannot return them
// through the Cache interface.
type Logger interface {
	Error(msg string, err error)
}

// Cache is the key-value store behind session containers. Every Set replaces
// the whole value stored under key.
type Cache interface {
	// Get retrieves a value by key. Returns the value and true if found, or nil and false if not.
	Get(key string) ([]byte, bool)

	// Set stores a value with the given key. If the key already exists, it is overwritten.
	Set(key string, value []byte)

	// Delete removes key. Deleting a missing key is a no-op.
	Delete(key string)

	// Len returns the number of entries currently stored.
	Len() int

	// Close releases any resources held by the cache (e.g., network connections).
	Close() error
}
