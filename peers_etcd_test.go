package strloin

import (
	"reflect"
	"testing"

	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"
)

func event(typ mvccpb.Event_EventType, key string) *clientv3.Event {
	return &clientv3.Event{Type: typ, Kv: &mvccpb.KeyValue{Key: []byte(key)}}
}

func TestApplyEvents(t *testing.T) {
	const prefix = "/strloin/Strloin/"
	members := map[string]struct{}{"10.0.0.1:9000": {}}

	changed := applyEvents(members, prefix, []*clientv3.Event{
		event(mvccpb.PUT, prefix+"10.0.0.2:9000"),
		event(mvccpb.PUT, prefix+"10.0.0.1:9000"),
		event(mvccpb.DELETE, prefix+"10.0.0.1:9000"),
		event(mvccpb.PUT, prefix),
		{Type: mvccpb.PUT},
	})
	if !changed {
		t.Fatal("expected membership change")
	}
	if got := memberList(members); !reflect.DeepEqual(got, []string{"10.0.0.2:9000"}) {
		t.Fatalf("members = %v", got)
	}

	if applyEvents(members, prefix, []*clientv3.Event{event(mvccpb.DELETE, prefix+"10.0.0.9:9000")}) {
		t.Fatal("deleting an unknown member reported a change")
	}
}
