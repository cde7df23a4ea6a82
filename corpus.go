package strloin

import (
	"context"
	"errors"
	"fmt"
	"strloin/singleflight"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	corporaMu sync.RWMutex
	corpora   = make(map[string]*Corpus)
)

// ErrKeyRequired is returned for an empty document key.
var ErrKeyRequired = errors.New("key is required")

// ErrCorpusClosed is returned by every operation on a closed corpus.
var ErrCorpusClosed = errors.New("corpus closed")

// ErrCorpusNotFound is returned when no corpus is registered under a name.
var ErrCorpusNotFound = errors.New("corpus not found")

// Loader fetches the text of a document missing from every cache.
type Loader interface {
	Load(ctx context.Context, key string) (string, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, key string) (string, error)

func (f LoaderFunc) Load(ctx context.Context, key string) (string, error) { return f(ctx, key) }

type fromPeerKey struct{}

// WithFromPeer marks ctx as carrying a request replicated from another peer,
// so writes under it are not propagated again.
func WithFromPeer(ctx context.Context) context.Context {
	return context.WithValue(ctx, fromPeerKey{}, true)
}

func isFromPeer(ctx context.Context) bool {
	v, _ := ctx.Value(fromPeerKey{}).(bool)
	return v
}

// peerSyncTimeout bounds the background replication of a write.
const peerSyncTimeout = 3 * time.Second

// Corpus is a named namespace of backing documents. Documents are loaded
// once, cached, and sliced by range on request.
type Corpus struct {
	name       string
	loader     Loader
	mainCache  *Cache
	peers      PeerPicker
	loads      singleflight.Group[Document]
	expiration time.Duration // 0 means cached documents never expire
	sliceOpts  []Option
	closed     int32
	stats      corpusStats
}

type corpusStats struct {
	loads        int64
	localHits    int64
	localMisses  int64
	peerHits     int64
	peerMisses   int64
	loaderHits   int64
	loaderErrors int64
	loadDuration int64 // nanoseconds
	borrowed     int64
	owned        int64
	rejected     int64
}

// CorpusOption configures a Corpus.
type CorpusOption func(*Corpus)

// WithExpiration sets how long loaded documents stay cached.
func WithExpiration(expiration time.Duration) CorpusOption {
	return func(c *Corpus) {
		c.expiration = expiration
	}
}

// WithPeers distributes document ownership over peers.
func WithPeers(peers PeerPicker) CorpusOption {
	return func(c *Corpus) {
		c.peers = peers
	}
}

// WithCacheOptions replaces the default cache settings.
func WithCacheOptions(opts CacheOptions) CorpusOption {
	return func(c *Corpus) {
		c.mainCache = NewCache(opts)
	}
}

// WithSliceOptions sets the Strloin options applied to every Slice.
func WithSliceOptions(opts ...Option) CorpusOption {
	return func(c *Corpus) {
		c.sliceOpts = opts
	}
}

// NewCorpus creates and registers a corpus. It panics on a nil loader or a
// duplicate name.
func NewCorpus(name string, cacheBytes int64, loader Loader, opts ...CorpusOption) *Corpus {
	if loader == nil {
		panic("nil Loader")
	}
	cacheOpts := DefaultCacheOptions()
	cacheOpts.MaxBytes = cacheBytes
	c := &Corpus{
		name:      name,
		loader:    loader,
		mainCache: NewCache(cacheOpts),
	}
	for _, opt := range opts {
		opt(c)
	}

	corporaMu.Lock()
	defer corporaMu.Unlock()
	if _, dup := corpora[name]; dup {
		panic("duplicate registration of corpus " + name)
	}
	corpora[name] = c
	logrus.Infof("corpus %s created with cacheBytes=%d, expiration=%s", name, cacheBytes, c.expiration)
	return c
}

// GetCorpus returns the corpus registered under name, or nil.
func GetCorpus(name string) *Corpus {
	corporaMu.RLock()
	defer corporaMu.RUnlock()
	return corpora[name]
}

// Name returns the corpus name.
func (c *Corpus) Name() string { return c.name }

// Get returns the document stored under key, loading it on a miss.
func (c *Corpus) Get(ctx context.Context, key string) (Document, error) {
	if atomic.LoadInt32(&c.closed) == 1 {
		return Document{}, ErrCorpusClosed
	}
	if key == "" {
		return Document{}, ErrKeyRequired
	}
	if doc, ok := c.mainCache.Get(key); ok {
		atomic.AddInt64(&c.stats.localHits, 1)
		return doc, nil
	}
	atomic.AddInt64(&c.stats.localMisses, 1)
	return c.load(ctx, key)
}

// Slice resolves ranges against the document under key. Contiguous ranges
// borrow from the cached document; anything else is copied.
func (c *Corpus) Slice(ctx context.Context, key string, ranges []Range) (Cow, error) {
	doc, err := c.Get(ctx, key)
	if err != nil {
		return Cow{}, err
	}
	cow, err := doc.Strloin(c.sliceOpts...).FromRanges(ranges)
	if err != nil {
		atomic.AddInt64(&c.stats.rejected, 1)
		return Cow{}, fmt.Errorf("slice %s/%s: %w", c.name, key, err)
	}
	if cow.IsBorrowed() {
		atomic.AddInt64(&c.stats.borrowed, 1)
	} else {
		atomic.AddInt64(&c.stats.owned, 1)
	}
	return cow, nil
}

// Put stores text under key and replicates it to the owning peer.
func (c *Corpus) Put(ctx context.Context, key, text string) error {
	if atomic.LoadInt32(&c.closed) == 1 {
		return ErrCorpusClosed
	}
	if key == "" {
		return ErrKeyRequired
	}
	c.mainCache.AddWithExpiration(key, NewDocument(text), c.expiration)
	if !isFromPeer(ctx) && c.peers != nil {
		go c.syncToPeers(ctx, "put", key, text)
	}
	return nil
}

// Delete drops key locally and on the owning peer.
func (c *Corpus) Delete(ctx context.Context, key string) error {
	if atomic.LoadInt32(&c.closed) == 1 {
		return ErrCorpusClosed
	}
	if key == "" {
		return ErrKeyRequired
	}
	c.mainCache.Delete(key)
	if !isFromPeer(ctx) && c.peers != nil {
		go c.syncToPeers(ctx, "delete", key, "")
	}
	return nil
}

// syncToPeers replicates a write to the peer owning key.
func (c *Corpus) syncToPeers(ctx context.Context, op, key, text string) {
	peer, ok, isSelf := c.peers.PickPeer(key)
	if !ok || isSelf {
		return
	}
	syncCtx, cancel := context.WithTimeout(WithFromPeer(context.WithoutCancel(ctx)), peerSyncTimeout)
	defer cancel()

	var err error
	switch op {
	case "put":
		err = peer.Put(syncCtx, c.name, key, text)
	case "delete":
		_, err = peer.Delete(syncCtx, c.name, key)
	}
	if err != nil {
		logrus.Errorf("sync %s %s/%s to peer failed: %v", op, c.name, key, err)
	}
}

// load fetches key once per concurrent burst. The document is cached before
// waiting callers are released.
func (c *Corpus) load(ctx context.Context, key string) (Document, error) {
	start := time.Now()
	doc, err, shared := c.loads.Do(key, func() (Document, error) {
		doc, err := c.loadData(ctx, key)
		if err == nil {
			c.mainCache.AddWithExpiration(key, doc, c.expiration)
		}
		return doc, err
	})
	if !shared {
		atomic.AddInt64(&c.stats.loadDuration, time.Since(start).Nanoseconds())
		atomic.AddInt64(&c.stats.loads, 1)
	}
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// loadData tries the owning peer first, then the loader. Reads that arrived
// from a peer go straight to the loader so they are never forwarded again.
func (c *Corpus) loadData(ctx context.Context, key string) (Document, error) {
	if c.peers != nil && !isFromPeer(ctx) {
		if peer, ok, isSelf := c.peers.PickPeer(key); ok && !isSelf {
			text, err := peer.Get(WithFromPeer(ctx), c.name, key)
			if err == nil {
				atomic.AddInt64(&c.stats.peerHits, 1)
				return NewDocument(text), nil
			}
			atomic.AddInt64(&c.stats.peerMisses, 1)
			logrus.Warnf("failed to get %s/%s from peer: %v", c.name, key, err)
		}
	}

	text, err := c.loader.Load(ctx, key)
	if err != nil {
		atomic.AddInt64(&c.stats.loaderErrors, 1)
		return Document{}, fmt.Errorf("load %s/%s: %w", c.name, key, err)
	}
	atomic.AddInt64(&c.stats.loaderHits, 1)
	return NewDocument(text), nil
}

// RegisterPeers sets the PeerPicker. It panics when called twice.
func (c *Corpus) RegisterPeers(peers PeerPicker) {
	if c.peers != nil {
		panic("RegisterPeers called more than once")
	}
	c.peers = peers
	logrus.Infof("corpus %s registered peers", c.name)
}

// Clear drops every cached document.
func (c *Corpus) Clear() {
	if atomic.LoadInt32(&c.closed) == 1 {
		return
	}
	c.mainCache.Clear()
	logrus.Infof("corpus %s cleared", c.name)
}

// Close closes the cache and unregisters the corpus.
func (c *Corpus) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	c.mainCache.Close()

	corporaMu.Lock()
	if corpora[c.name] == c {
		delete(corpora, c.name)
	}
	corporaMu.Unlock()
	logrus.Infof("corpus %s closed", c.name)
	return nil
}

// Stats returns corpus counters merged with the cache's, prefixed "cache_".
func (c *Corpus) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"name":          c.name,
		"closed":        atomic.LoadInt32(&c.closed) == 1,
		"expiration":    c.expiration,
		"loads":         atomic.LoadInt64(&c.stats.loads),
		"local_hits":    atomic.LoadInt64(&c.stats.localHits),
		"local_misses":  atomic.LoadInt64(&c.stats.localMisses),
		"peer_hits":     atomic.LoadInt64(&c.stats.peerHits),
		"peer_misses":   atomic.LoadInt64(&c.stats.peerMisses),
		"loader_hits":   atomic.LoadInt64(&c.stats.loaderHits),
		"loader_errors": atomic.LoadInt64(&c.stats.loaderErrors),
		"borrowed":      atomic.LoadInt64(&c.stats.borrowed),
		"owned":         atomic.LoadInt64(&c.stats.owned),
		"rejected":      atomic.LoadInt64(&c.stats.rejected),
	}
	if loads := atomic.LoadInt64(&c.stats.loads); loads > 0 {
		stats["avg_load_time_ms"] = float64(atomic.LoadInt64(&c.stats.loadDuration)) / float64(loads) / 1e6
	}
	if slices := atomic.LoadInt64(&c.stats.borrowed) + atomic.LoadInt64(&c.stats.owned); slices > 0 {
		stats["borrow_rate"] = float64(atomic.LoadInt64(&c.stats.borrowed)) / float64(slices)
	}
	for k, v := range c.mainCache.Stats() {
		stats["cache_"+k] = v
	}
	return stats
}

// ListCorpora returns the names of all registered corpora.
func ListCorpora() []string {
	corporaMu.RLock()
	defer corporaMu.RUnlock()
	names := make([]string, 0, len(corpora))
	for name := range corpora {
		names = append(names, name)
	}
	return names
}

// DestroyCorpus closes and unregisters the named corpus.
func DestroyCorpus(name string) bool {
	c := GetCorpus(name)
	if c == nil {
		return false
	}
	c.Close()
	logrus.Infof("corpus %s destroyed", name)
	return true
}

// DestroyAllCorpora closes every registered corpus.
func DestroyAllCorpora() {
	for _, name := range ListCorpora() {
		DestroyCorpus(name)
	}
}
