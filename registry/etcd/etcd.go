// Package etcd registers strloin nodes in etcd under leased keys.
package etcd

import (
	"context"
	"errors"
	"path"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	clientv3 "go.etcd.io/etcd/client/v3"
)

const basePath = "/strloin"

// ErrNilClient is returned when the registrar has no etcd client.
var ErrNilClient = errors.New("etcd client is nil")

// Registrar keeps one leased key per registered address alive until
// Deregister revokes it.
type Registrar struct {
	client *clientv3.Client
	ttl    time.Duration

	mu     sync.Mutex
	leases map[string]clientv3.LeaseID
}

// NewRegistrar returns a registrar using leases of ttl (10s when <= 0).
func NewRegistrar(client *clientv3.Client, ttl time.Duration) *Registrar {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Registrar{client: client, ttl: ttl, leases: make(map[string]clientv3.LeaseID)}
}

// TTL returns the lease TTL.
func (r *Registrar) TTL() time.Duration { return r.ttl }

func (r *Registrar) Register(ctx context.Context, service string, addr string) error {
	if r.client == nil {
		return ErrNilClient
	}
	key := ServiceKey(service, addr)
	lease, err := r.client.Grant(ctx, int64(r.ttl.Seconds()))
	if err != nil {
		return err
	}
	if _, err := r.client.Put(ctx, key, addr, clientv3.WithLease(lease.ID)); err != nil {
		return err
	}
	ka, err := r.client.KeepAlive(context.Background(), lease.ID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.leases[key] = lease.ID
	r.mu.Unlock()

	go func() {
		for range ka {
		}
		logrus.Warnf("etcd keepalive for %s stopped", key)
	}()
	logrus.Infof("registered %s in etcd (ttl %s)", key, r.ttl)
	return nil
}

func (r *Registrar) Deregister(ctx context.Context, service string, addr string) error {
	if r.client == nil {
		return ErrNilClient
	}
	key := ServiceKey(service, addr)

	r.mu.Lock()
	id, ok := r.leases[key]
	delete(r.leases, key)
	r.mu.Unlock()

	if ok {
		// Revoking also deletes the key and ends the keepalive stream.
		_, err := r.client.Revoke(ctx, id)
		return err
	}
	_, err := r.client.Delete(ctx, key)
	return err
}

// ServiceKey is the etcd key under which addr is registered for service.
func ServiceKey(service string, addr string) string {
	return path.Join(basePath, service, addr)
}

// ServicePrefix is the key prefix shared by every node of service.
func ServicePrefix(service string) string {
	return path.Join(basePath, service) + "/"
}
