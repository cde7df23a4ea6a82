package consistenthash

import (
	"strconv"
	"testing"
)

func TestAddGetRemove(t *testing.T) {
	m := New()

	if err := m.Add("node1", "node2"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(m.keys) != m.config.Replicas*2 {
		t.Fatalf("unexpected virtual node count: %d", len(m.keys))
	}

	if node := m.Get("doc1"); node == "" {
		t.Fatal("Get returned empty node")
	}

	if err := m.Remove("node1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if node := m.Get("doc1"); node != "node2" {
		t.Fatalf("expected node2 after remove, got %s", node)
	}
	if len(m.keys) != m.config.Replicas {
		t.Fatalf("Remove left %d virtual nodes", len(m.keys))
	}
}

func TestRemoveMissingNode(t *testing.T) {
	m := New()
	if err := m.Remove("missing"); err == nil {
		t.Fatal("expected error removing missing node")
	}
}

func TestAddNoNodes(t *testing.T) {
	if err := New().Add(); err != ErrNoNodes {
		t.Fatalf("Add() = %v, want ErrNoNodes", err)
	}
}

func TestGetIsStable(t *testing.T) {
	// Hash keys to their numeric value so ownership is predictable.
	m := New(WithConfig(&Config{
		Replicas: 1,
		HashFunc: func(data []byte) uint32 {
			s := string(data)
			if i := len(s) - 2; i > 0 && s[i] == '-' {
				s = s[:i]
			}
			n, _ := strconv.Atoi(s)
			return uint32(n)
		},
	}))
	m.Add("10", "20", "30")

	cases := map[string]string{"5": "10", "10": "10", "11": "20", "25": "30", "31": "10"}
	for key, want := range cases {
		if got := m.Get(key); got != want {
			t.Errorf("Get(%s) = %s, want %s", key, got, want)
		}
	}

	m.Add("10")
	if n := len(m.Nodes()); n != 3 {
		t.Fatalf("duplicate Add changed the ring: %d nodes", n)
	}
}

func TestGetEmpty(t *testing.T) {
	m := New()
	if node := m.Get("k"); node != "" {
		t.Fatalf("empty ring returned %q", node)
	}
}
