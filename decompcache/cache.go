package decompcache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"

	"github.com/katalvlaran/compomer/alphabet"
	"github.com/katalvlaran/compomer/decomp"
)

// ErrBadSize indicates a non-positive cache capacity.
var ErrBadSize = errors.New("decompcache: size must be positive")

// Stats counts cache lookups.
type Stats struct {
	Hits       uint64
	Misses     uint64
	Collisions uint64
	Len        int
}

type entry[T comparable] struct {
	alphabet alphabet.Alphabet[T]
	d        *decomp.Decomposer[T]
}

// Cache maps alphabets to initialized decomposers built with one option set.
type Cache[T comparable] struct {
	mu     sync.Mutex
	items  *lru.Cache[uint64, *entry[T]]
	opts   []decomp.Option
	logger *slog.Logger
	stats  Stats
}

// New creates a cache holding at most size decomposers, each built with opts.
// The logger among opts (if any) also receives the cache's debug records.
func New[T comparable](size int, opts ...decomp.Option) (*Cache[T], error) {
	if size <= 0 {
		return nil, ErrBadSize
	}

	o := decomp.DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Cache[T]{opts: opts, logger: logger}
	items, err := lru.NewWithEvict[uint64, *entry[T]](size, c.onEvict)
	if err != nil {
		return nil, fmt.Errorf("decompcache: %w", err)
	}
	c.items = items

	return c, nil
}

// Get returns the decomposer for a, building and initializing it on a miss.
// Construction errors are returned and nothing is cached.
func (c *Cache[T]) Get(a alphabet.Alphabet[T]) (*decomp.Decomposer[T], error) {
	if a == nil || a.Size() == 0 {
		return nil, decomp.ErrEmptyAlphabet
	}
	key := Fingerprint(a)

	c.mu.Lock()
	if e, ok := c.items.Get(key); ok {
		if alphabet.Equal(e.alphabet, a) {
			c.stats.Hits++
			c.mu.Unlock()
			return e.d, nil
		}
		// Same fingerprint, different alphabet: serve it uncached.
		c.stats.Collisions++
		c.mu.Unlock()
		c.logger.Warn("decompcache: fingerprint collision", slog.Uint64("fingerprint", key))
		return c.build(a)
	}
	c.stats.Misses++
	c.mu.Unlock()

	d, err := c.build(a)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have built the same alphabet meanwhile.
	if e, ok := c.items.Peek(key); ok && alphabet.Equal(e.alphabet, a) {
		return e.d, nil
	}
	c.items.Add(key, &entry[T]{alphabet: a, d: d})
	c.logger.Debug("decompcache: decomposer cached",
		slog.Uint64("fingerprint", key),
		slog.Int("characters", a.Size()),
		slog.Int("len", c.items.Len()),
	)

	return d, nil
}

// Stats returns a snapshot of the lookup counters.
func (c *Cache[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Len = c.items.Len()

	return s
}

// Purge drops every cached decomposer.
func (c *Cache[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Purge()
}

func (c *Cache[T]) build(a alphabet.Alphabet[T]) (*decomp.Decomposer[T], error) {
	d, err := decomp.New[T](a, c.opts...)
	if err != nil {
		return nil, err
	}
	if err = d.Init(); err != nil {
		return nil, err
	}

	return d, nil
}

func (c *Cache[T]) onEvict(key uint64, _ *entry[T]) {
	c.logger.Debug("decompcache: decomposer evicted", slog.Uint64("fingerprint", key))
}

// Fingerprint hashes the characters (in fmt's %v form) and the exact weight
// bits of a, in alphabet order.
func Fingerprint[T comparable](a alphabet.Alphabet[T]) uint64 {
	h := xxh3.New()
	var buf [8]byte
	for i := 0; i < a.Size(); i++ {
		fmt.Fprint(h, a.Get(i))
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(a.WeightOf(i)))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write(buf[:])
	}

	return h.Sum64()
}
