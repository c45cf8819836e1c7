package cache

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"
)

// RedisConfig locates the Redis or Valkey server of the redis backend.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// ProviderConfig is handed to a Provider by New.
type ProviderConfig struct {
	// Size bounds the number of entries of the memory backend. Zero means 10000.
	Size int
	// TTL expires entries after their last write. Zero keeps them forever.
	TTL time.Duration
	// KeyPrefix namespaces keys in shared backends. Empty means "showfinder:".
	KeyPrefix string

	Redis RedisConfig

	// OnEvict fires when the memory backend drops an entry.
	OnEvict EvictCallback
	// Logger receives backend failures the Cache interface cannot return.
	Logger Logger

	// Group, when set, wraps the store with Prometheus counters labelled
	// cache=<Group> and exports its size at scrape time.
	Group string
}

const defaultSize = 10000

func (cfg ProviderConfig) withDefaults() ProviderConfig {
	if cfg.Size <= 0 {
		cfg.Size = defaultSize
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	return cfg
}

// Provider builds a Cache from its configuration.
type Provider func(cfg ProviderConfig) (Cache, error)

var registry = struct {
	sync.RWMutex
	providers map[string]Provider
}{providers: map[string]Provider{}}

// Register makes a backend available to New under name. Registering a nil
// provider or the same name twice panics.
func Register(name string, p Provider) {
	if p == nil {
		panic("cache: Register provider is nil")
	}

	registry.Lock()
	defer registry.Unlock()
	if _, dup := registry.providers[name]; dup {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	registry.providers[name] = p
}

// RegisteredProviders lists the registered backend names in order.
func RegisteredProviders() []string {
	registry.RLock()
	defer registry.RUnlock()
	return slices.Sorted(maps.Keys(registry.providers))
}

// New opens the backend registered as name.
func New(name string, cfg ProviderConfig) (Cache, error) {
	registry.RLock()
	p, ok := registry.providers[name]
	registry.RUnlock()
	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}

	cfg = cfg.withDefaults()
	if cfg.Group == "" {
		return p(cfg)
	}

	group, onEvict := cfg.Group, cfg.OnEvict
	cfg.OnEvict = func(key string, value []byte) {
		EvictionsTotal.WithLabelValues(group).Inc()
		if onEvict != nil {
			onEvict(key, value)
		}
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, err
	}
	registerEntriesCollector(group, inner.Len)
	return &instrumented{Cache: inner, group: group}, nil
}

// instrumented counts hits and misses of the wrapped Cache.
type instrumented struct {
	Cache
	group string
}

func (c *instrumented) Get(key string) ([]byte, bool) {
	value, ok := c.Cache.Get(key)
	outcome := MissesTotal
	if ok {
		outcome = HitsTotal
	}
	outcome.WithLabelValues(c.group).Inc()
	return value, ok
}

// Close stops exporting the size of the group before closing the backend.
func (c *instrumented) Close() error {
	unregisterEntriesCollector(c.group)
	return c.Cache.Close()
}
