package strloin

import (
	"context"
	"sort"
	"strings"

	etcdreg "strloin/registry/etcd"

	"github.com/sirupsen/logrus"
	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"
	"google.golang.org/grpc"
)

// WatchEtcd keeps picker's peer set in sync with the nodes registered for
// service in etcd, until ctx is done.
func WatchEtcd(ctx context.Context, client *clientv3.Client, service string, picker *ClientPicker, dialOpts ...grpc.DialOption) error {
	if client == nil || picker == nil {
		return nil
	}
	prefix := etcdreg.ServicePrefix(service)
	dial := func(addr string) (Peer, error) {
		return NewGRPCPeer(addr, dialOpts...)
	}

	resp, err := client.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return err
	}
	members := make(map[string]struct{}, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		if addr := strings.TrimPrefix(string(kv.Key), prefix); addr != "" {
			members[addr] = struct{}{}
		}
	}
	picker.UpdatePeers(memberList(members), dial)

	watchCh := client.Watch(ctx, prefix, clientv3.WithPrefix(), clientv3.WithRev(resp.Header.Revision+1))
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case wresp, ok := <-watchCh:
				if !ok {
					return
				}
				if err := wresp.Err(); err != nil {
					logrus.Warnf("etcd watch on %s: %v", prefix, err)
					continue
				}
				if applyEvents(members, prefix, wresp.Events) {
					picker.UpdatePeers(memberList(members), dial)
				}
			}
		}
	}()
	return nil
}

// applyEvents folds watch events into members and reports whether the set
// changed.
func applyEvents(members map[string]struct{}, prefix string, events []*clientv3.Event) bool {
	changed := false
	for _, ev := range events {
		if ev.Kv == nil {
			continue
		}
		addr := strings.TrimPrefix(string(ev.Kv.Key), prefix)
		if addr == "" {
			continue
		}
		_, present := members[addr]
		switch ev.Type {
		case mvccpb.PUT:
			if !present {
				members[addr] = struct{}{}
				changed = true
			}
		case mvccpb.DELETE:
			if present {
				delete(members, addr)
				changed = true
			}
		}
	}
	return changed
}

func memberList(members map[string]struct{}) []string {
	addrs := make([]string, 0, len(members))
	for addr := range members {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs
}
