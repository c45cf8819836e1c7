package cache

import (
	"slices"
	"testing"
	"time"
)

func newTestMemory(t *testing.T, cfg ProviderConfig) Cache {
	t.Helper()
	c, err := New("memory", cfg)
	if err != nil {
		t.Fatalf("New memory: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemory_Operations(t *testing.T) {
	tests := []struct {
		name    string
		run     func(c Cache)
		key     string
		want    string
		wantOK  bool
		wantLen int
	}{
		{
			name:   "miss",
			run:    func(Cache) {},
			key:    "sid:shows",
			wantOK: false,
		},
		{
			name:    "set then get",
			run:     func(c Cache) { c.Set("sid:shows", []byte("cards")) },
			key:     "sid:shows",
			want:    "cards",
			wantOK:  true,
			wantLen: 1,
		},
		{
			name: "second set replaces the first",
			run: func(c Cache) {
				c.Set("sid:shows", []byte("old"))
				c.Set("sid:shows", []byte("new"))
			},
			key:     "sid:shows",
			want:    "new",
			wantOK:  true,
			wantLen: 1,
		},
		{
			name: "delete",
			run: func(c Cache) {
				c.Set("sid:status", []byte("oops"))
				c.Delete("sid:status")
				c.Delete("sid:absent")
			},
			key:    "sid:status",
			wantOK: false,
		},
		{
			name: "keys are independent",
			run: func(c Cache) {
				c.Set("sid:shows", []byte("cards"))
				c.Set("sid:episodes", []byte("rows"))
			},
			key:     "sid:episodes",
			want:    "rows",
			wantOK:  true,
			wantLen: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestMemory(t, ProviderConfig{Size: 10, TTL: time.Hour})
			tt.run(c)

			got, ok := c.Get(tt.key)
			if ok != tt.wantOK || string(got) != tt.want {
				t.Errorf("Get(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.wantOK)
			}
			if !ok && got != nil {
				t.Errorf("Expected nil value on miss, got %q", got)
			}
			if c.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", c.Len(), tt.wantLen)
			}
		})
	}
}

func TestMemory_EvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	c := newTestMemory(t, ProviderConfig{
		Size:    2,
		TTL:     time.Hour,
		OnEvict: func(key string, _ []byte) { evicted = append(evicted, key) },
	})

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	_, _ = c.Get("a")
	c.Set("c", []byte("3"))

	if !slices.Equal(evicted, []string{"b"}) {
		t.Fatalf("evicted = %v, want [b]", evicted)
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("Recently read entry should survive")
	}
}

func TestMemory_Expires(t *testing.T) {
	c := newTestMemory(t, ProviderConfig{Size: 10, TTL: 50 * time.Millisecond})

	c.Set("k", []byte("v"))
	time.Sleep(150 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("Expected entry to expire after TTL")
	}
}

func TestMemory_CloseKeepsEvictionsQuiet(t *testing.T) {
	evictions := 0
	c, err := New("memory", ProviderConfig{Size: 10, TTL: time.Hour, OnEvict: func(string, []byte) { evictions++ }})
	if err != nil {
		t.Fatalf("New memory: %v", err)
	}
	c.Set("k", []byte("v"))

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if evictions != 0 {
		t.Errorf("Close fired %d evictions", evictions)
	}
}
