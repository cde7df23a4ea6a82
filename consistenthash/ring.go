// Package consistenthash maps document keys onto peer nodes.
package consistenthash

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// ErrNoNodes is returned by Add when called without nodes.
var ErrNoNodes = errors.New("consistenthash: no nodes")

// Map is a hash ring with virtual replicas. It is safe for concurrent use.
type Map struct {
	mu     sync.RWMutex
	config *Config
	keys   []uint32
	owners map[uint32]string
	nodes  map[string]struct{}
}

type Option func(*Map)

// WithConfig replaces DefaultConfig. Zero fields fall back to the defaults.
func WithConfig(config *Config) Option {
	return func(m *Map) {
		c := *config
		if c.Replicas <= 0 {
			c.Replicas = DefaultConfig.Replicas
		}
		if c.HashFunc == nil {
			c.HashFunc = DefaultConfig.HashFunc
		}
		m.config = &c
	}
}

// New builds an empty ring.
func New(opts ...Option) *Map {
	m := &Map{
		config: DefaultConfig,
		owners: make(map[uint32]string),
		nodes:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add inserts nodes with their virtual replicas. Empty and already present
// nodes are ignored.
func (m *Map) Add(nodes ...string) error {
	if len(nodes) == 0 {
		return ErrNoNodes
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, node := range nodes {
		if node == "" {
			continue
		}
		if _, ok := m.nodes[node]; ok {
			continue
		}
		m.nodes[node] = struct{}{}
		for i := 0; i < m.config.Replicas; i++ {
			h := m.hash(node, i)
			m.owners[h] = node
			m.keys = append(m.keys, h)
		}
	}
	sort.Slice(m.keys, func(i, j int) bool { return m.keys[i] < m.keys[j] })
	return nil
}

// Remove drops node and its replicas from the ring.
func (m *Map) Remove(node string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.nodes[node]; !ok {
		return fmt.Errorf("consistenthash: node %q not found", node)
	}
	delete(m.nodes, node)
	for i := 0; i < m.config.Replicas; i++ {
		h := m.hash(node, i)
		if m.owners[h] == node {
			delete(m.owners, h)
		}
	}
	kept := m.keys[:0]
	for _, h := range m.keys {
		if _, ok := m.owners[h]; ok {
			kept = append(kept, h)
		}
	}
	m.keys = kept
	return nil
}

// Get returns the node owning key, or "" for an empty ring or key.
func (m *Map) Get(key string) string {
	if key == "" {
		return ""
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.keys) == 0 {
		return ""
	}
	h := m.config.HashFunc([]byte(key))
	idx := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= h })
	if idx == len(m.keys) {
		idx = 0
	}
	return m.owners[m.keys[idx]]
}

// Nodes returns the ring members in no particular order.
func (m *Map) Nodes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	nodes := make([]string, 0, len(m.nodes))
	for node := range m.nodes {
		nodes = append(nodes, node)
	}
	return nodes
}

func (m *Map) hash(node string, replica int) uint32 {
	return m.config.HashFunc([]byte(node + "-" + strconv.Itoa(replica)))
}
