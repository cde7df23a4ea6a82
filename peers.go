package strloin

import (
	"context"
	"sort"
	"strloin/consistenthash"
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultSvcName = "Strloin"

// PeerPicker locates the peer that owns a document key.
type PeerPicker interface {
	PickPeer(key string) (peer Peer, ok bool, self bool)
	Close() error
}

// Peer is a remote node serving documents of named corpora.
type Peer interface {
	Get(ctx context.Context, corpus string, key string) (string, error)
	Put(ctx context.Context, corpus string, key string, text string) error
	Delete(ctx context.Context, corpus string, key string) (bool, error)
	Close() error
}

// ClientPicker maintains a consistent-hash ring of peer clients.
type ClientPicker struct {
	self  string
	mu    sync.RWMutex
	hash  *consistenthash.Map
	peers map[string]Peer
}

// LocalPeer serves corpora of this process; used for single-process setups
// and tests.
type LocalPeer struct{}

func (p *LocalPeer) Get(ctx context.Context, corpus string, key string) (string, error) {
	c := GetCorpus(corpus)
	if c == nil {
		return "", ErrCorpusNotFound
	}
	doc, err := c.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return doc.String(), nil
}

func (p *LocalPeer) Put(ctx context.Context, corpus string, key string, text string) error {
	c := GetCorpus(corpus)
	if c == nil {
		return ErrCorpusNotFound
	}
	return c.Put(ctx, key, text)
}

func (p *LocalPeer) Delete(ctx context.Context, corpus string, key string) (bool, error) {
	c := GetCorpus(corpus)
	if c == nil {
		return false, ErrCorpusNotFound
	}
	return true, c.Delete(ctx, key)
}

func (p *LocalPeer) Close() error { return nil }

// NewClientPicker returns a picker whose ring always contains self.
func NewClientPicker(self string) *ClientPicker {
	p := &ClientPicker{self: self}
	p.rebuild(nil)
	return p
}

// rebuild resets the ring to self plus nodes. Callers hold p.mu or own p.
func (p *ClientPicker) rebuild(nodes []string) {
	p.hash = consistenthash.New()
	if p.self != "" {
		nodes = append(nodes, p.self)
	}
	if len(nodes) > 0 {
		_ = p.hash.Add(nodes...)
	}
}

// SetPeers replaces peers and rebuilds the ring. An entry for self is
// ignored; self is always served locally.
func (p *ClientPicker) SetPeers(peers map[string]Peer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.peers = make(map[string]Peer, len(peers))
	nodes := make([]string, 0, len(peers))
	for node, peer := range peers {
		if node == "" || node == p.self || peer == nil {
			continue
		}
		p.peers[node] = peer
		nodes = append(nodes, node)
	}
	p.rebuild(nodes)
}

// UpdatePeers syncs the peer set to addrs, reusing clients that are still
// listed, dialing new ones through newPeer and closing the rest.
func (p *ClientPicker) UpdatePeers(addrs []string, newPeer func(addr string) (Peer, error)) {
	if newPeer == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	next := make(map[string]Peer, len(addrs))
	nodes := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		if addr == "" || addr == p.self {
			continue
		}
		if _, dup := next[addr]; dup {
			continue
		}
		if existing, ok := p.peers[addr]; ok {
			next[addr] = existing
			nodes = append(nodes, addr)
			continue
		}
		peer, err := newPeer(addr)
		if err != nil || peer == nil {
			logrus.Warnf("skipping peer %s: %v", addr, err)
			continue
		}
		next[addr] = peer
		nodes = append(nodes, addr)
	}

	for addr, peer := range p.peers {
		if _, ok := next[addr]; !ok {
			_ = peer.Close()
		}
	}
	p.peers = next
	p.rebuild(nodes)
	logrus.Infof("peer set updated: %d remote peers", len(next))
}

// PickPeer returns the peer responsible for key, plus whether it's self.
func (p *ClientPicker) PickPeer(key string) (peer Peer, ok bool, self bool) {
	if key == "" {
		return nil, false, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.hash == nil {
		return nil, false, false
	}
	node := p.hash.Get(key)
	switch {
	case node == "":
		return nil, false, false
	case node == p.self:
		return nil, true, true
	}
	peer, ok = p.peers[node]
	return peer, ok, false
}

// Peers returns the remote peer addresses, sorted.
func (p *ClientPicker) Peers() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	addrs := make([]string, 0, len(p.peers))
	for addr := range p.peers {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs
}

// Close closes every peer client and empties the ring.
func (p *ClientPicker) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, peer := range p.peers {
		_ = peer.Close()
	}
	p.peers = nil
	p.hash = nil
	return nil
}
