package store

import (
	"container/list"
	"sync"
	"time"
)

// lruStore evicts the least recently used documents once the byte budget is
// exceeded and drops expired ones lazily on access and periodically.
type lruStore struct {
	mu        sync.Mutex
	ll        *list.List
	items     map[string]*list.Element
	maxBytes  int64
	usedBytes int64
	onEvicted func(key string, value Value)

	ticker  *time.Ticker
	closeCh chan struct{}
	once    sync.Once
}

type lruEntry struct {
	key     string
	value   Value
	expires time.Time // zero when the entry never expires
}

func (e *lruEntry) size() int64 {
	return int64(len(e.key) + e.value.Len())
}

func (e *lruEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

func newLRUStore(options Options) *lruStore {
	interval := options.CleanupInterval
	if interval <= 0 {
		interval = time.Minute
	}
	s := &lruStore{
		ll:        list.New(),
		items:     make(map[string]*list.Element),
		maxBytes:  options.MaxBytes,
		onEvicted: options.OnEvicted,
		ticker:    time.NewTicker(interval),
		closeCh:   make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Get returns the value for key and marks it most recently used.
func (s *lruStore) Get(key string) (Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[key]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*lruEntry)
	if entry.expired(time.Now()) {
		s.removeElement(elem)
		return nil, false
	}
	s.ll.MoveToBack(elem)
	return entry.value, true
}

func (s *lruStore) Set(key string, value Value) error {
	return s.SetWithExpiration(key, value, 0)
}

// SetWithExpiration stores value under key. A nil value deletes the key.
func (s *lruStore) SetWithExpiration(key string, value Value, expiration time.Duration) error {
	if value == nil {
		s.Delete(key)
		return nil
	}
	var expires time.Time
	if expiration > 0 {
		expires = time.Now().Add(expiration)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[key]; ok {
		entry := elem.Value.(*lruEntry)
		s.usedBytes -= entry.size()
		entry.value = value
		entry.expires = expires
		s.usedBytes += entry.size()
		s.ll.MoveToBack(elem)
	} else {
		entry := &lruEntry{key: key, value: value, expires: expires}
		s.items[key] = s.ll.PushBack(entry)
		s.usedBytes += entry.size()
	}
	s.evict()
	return nil
}

func (s *lruStore) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if elem, ok := s.items[key]; ok {
		s.removeElement(elem)
		return true
	}
	return false
}

func (s *lruStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.onEvicted != nil {
		for _, elem := range s.items {
			entry := elem.Value.(*lruEntry)
			s.onEvicted(entry.key, entry.value)
		}
	}
	s.ll.Init()
	s.items = make(map[string]*list.Element)
	s.usedBytes = 0
}

func (s *lruStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ll.Len()
}

func (s *lruStore) UsedBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usedBytes
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (s *lruStore) Close() {
	s.once.Do(func() {
		s.ticker.Stop()
		close(s.closeCh)
	})
}

func (s *lruStore) cleanupLoop() {
	for {
		select {
		case <-s.ticker.C:
			s.mu.Lock()
			s.evict()
			s.mu.Unlock()
		case <-s.closeCh:
			return
		}
	}
}

// evict drops expired entries, then the oldest ones until the byte budget
// holds. Callers hold s.mu.
func (s *lruStore) evict() {
	now := time.Now()
	for elem := s.ll.Front(); elem != nil; {
		next := elem.Next()
		if elem.Value.(*lruEntry).expired(now) {
			s.removeElement(elem)
		}
		elem = next
	}
	if s.maxBytes <= 0 {
		return
	}
	for s.usedBytes > s.maxBytes {
		front := s.ll.Front()
		if front == nil {
			return
		}
		s.removeElement(front)
	}
}

func (s *lruStore) removeElement(elem *list.Element) {
	entry := elem.Value.(*lruEntry)
	s.ll.Remove(elem)
	delete(s.items, entry.key)
	s.usedBytes -= entry.size()
	if s.onEvicted != nil {
		s.onEvicted(entry.key, entry.value)
	}
}
