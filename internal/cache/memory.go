package cache

import (
	"github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", openMemory)
}

// memory keeps entries in process. It is bounded by Size, and entries
// expire TTL after their last write.
type memory struct {
	*expirable.LRU[string, []byte]
}

func openMemory(cfg ProviderConfig) (Cache, error) {
	var evicted expirable.EvictCallback[string, []byte]
	if cfg.OnEvict != nil {
		evicted = expirable.EvictCallback[string, []byte](cfg.OnEvict)
	}
	return memory{expirable.NewLRU(cfg.Size, evicted, cfg.TTL)}, nil
}

func (m memory) Set(key string, value []byte) { m.Add(key, value) }

func (m memory) Delete(key string) { m.Remove(key) }

// Close is a no-op. Purging would fire OnEvict for entries nobody evicted.
func (memory) Close() error { return nil }
